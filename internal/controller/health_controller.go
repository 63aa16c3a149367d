package controller

import (
	"time"

	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	now func() time.Time
}

func NewHealthController() IHealthController {
	return &healthController{now: time.Now}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", dto.HealthResponse{
		Status:    "healthy",
		Timestamp: c.now().UTC(),
	}))
}
