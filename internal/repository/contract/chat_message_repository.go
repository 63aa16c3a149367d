package contract

import (
	"context"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountBySession(ctx context.Context) (map[string]int64, error)
}
