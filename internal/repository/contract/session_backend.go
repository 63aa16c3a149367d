package contract

import (
	"context"
	"time"

	"support-chatbot-be/internal/entity"
)

// SessionBackend is one durable home for sessions, messages and feedback. Records
// arrive with their ids and timestamps already assigned so every backend stores
// the same values.
type SessionBackend interface {
	Name() string
	AppendMessage(ctx context.Context, message *entity.ChatMessage, history []entity.ConversationTurn) error
	AppendFeedback(ctx context.Context, feedback *entity.UserFeedback) error
	ReplaceHistory(ctx context.Context, sessionId string, history []entity.ConversationTurn, at time.Time) error
	// GetSession returns nil, nil when the backend has no such session.
	GetSession(ctx context.Context, sessionId string) (*entity.ChatSession, error)
	ListSessions(ctx context.Context) ([]*entity.SessionSummary, error)
	ListMessages(ctx context.Context) ([]*entity.ChatMessage, error)
	ListFeedback(ctx context.Context) ([]*entity.UserFeedback, error)
}
