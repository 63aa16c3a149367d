package controller

import (
	"support-chatbot-be/internal/pkg/serverutils"
	"support-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router, adminGuard fiber.Handler)
	GetSession(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router, adminGuard fiber.Handler) {
	r.Get("/session/:session_id", c.GetSession)
	r.Get("/sessions", adminGuard, c.GetAllSessions)
}

func (c *sessionController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.sessionService.GetSession(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *sessionController) GetAllSessions(ctx *fiber.Ctx) error {
	res, err := c.sessionService.GetAllSessions(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}
