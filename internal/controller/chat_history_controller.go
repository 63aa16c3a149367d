package controller

import (
	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/pkg/serverutils"
	"support-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatHistoryController interface {
	RegisterRoutes(r fiber.Router, adminGuard fiber.Handler)
	SaveChatHistory(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
}

type chatHistoryController struct {
	chatHistoryService service.IChatHistoryService
}

func NewChatHistoryController(chatHistoryService service.IChatHistoryService) IChatHistoryController {
	return &chatHistoryController{
		chatHistoryService: chatHistoryService,
	}
}

func (c *chatHistoryController) RegisterRoutes(r fiber.Router, adminGuard fiber.Handler) {
	r.Post("/chat-history", c.SaveChatHistory)
	r.Get("/chat-history", adminGuard, c.GetChatHistory)
}

func (c *chatHistoryController) SaveChatHistory(ctx *fiber.Ctx) error {
	var req dto.ChatHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatHistoryService.SaveChatHistory(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat history saved successfully", res))
}

func (c *chatHistoryController) GetChatHistory(ctx *fiber.Ctx) error {
	res, err := c.chatHistoryService.GetChatHistory(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
