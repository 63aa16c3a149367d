package controller

import (
	"context"
	"encoding/json"

	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/pkg/serverutils"
	"support-chatbot-be/internal/service"
	chatstream "support-chatbot-be/internal/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Stream(conn *websocket.Conn)
}

type chatController struct {
	chatbotService service.IChatbotService
	logger         logger.ILogger
}

func NewChatController(chatbotService service.IChatbotService, log logger.ILogger) IChatController {
	return &chatController{
		chatbotService: chatbotService,
		logger:         log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Get("/chat/ws", requireUpgrade, websocket.New(c.Stream))
}

func requireUpgrade(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.SendChat(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

// Stream answers every ChatRequest frame with one ChatResponse frame.
func (c *chatController) Stream(conn *websocket.Conn) {
	chatstream.Serve(conn, c.handleFrame, c.logger)
}

func (c *chatController) handleFrame(ctx context.Context, frame []byte) interface{} {
	var req dto.ChatRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return dto.ChatStreamError{Error: "Invalid request body"}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return dto.ChatStreamError{Error: serverutils.ValidationMessage(errs)}
		}
		return dto.ChatStreamError{Error: err.Error()}
	}

	res, err := c.chatbotService.SendChat(ctx, &req)
	if err != nil {
		c.logger.Error("HTTP", "Chat stream request failed", map[string]interface{}{"error": err.Error()})
		return dto.ChatStreamError{Error: "Internal server error"}
	}
	return res
}
