package contract

import (
	"context"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/repository/specification"
)

type UserFeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.UserFeedback) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserFeedback, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountBySession(ctx context.Context) (map[string]int64, error)
}
