package controller

import (
	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/pkg/serverutils"
	"support-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router, adminGuard fiber.Handler)
	SaveFeedback(ctx *fiber.Ctx) error
	GetAllFeedback(ctx *fiber.Ctx) error
}

type feedbackController struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackController(feedbackService service.IFeedbackService) IFeedbackController {
	return &feedbackController{
		feedbackService: feedbackService,
	}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router, adminGuard fiber.Handler) {
	r.Post("/feedback", c.SaveFeedback)
	r.Get("/feedback", adminGuard, c.GetAllFeedback)
}

func (c *feedbackController) SaveFeedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.SaveFeedback(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feedback saved successfully", res))
}

func (c *feedbackController) GetAllFeedback(ctx *fiber.Ctx) error {
	res, err := c.feedbackService.GetAllFeedback(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get feedback", res))
}
