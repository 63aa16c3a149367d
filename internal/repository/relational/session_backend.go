// Package relational stores sessions, messages and feedback in the SQL database
// through the unit of work.
package relational

import (
	"context"
	"fmt"
	"sort"
	"time"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/repository/contract"
	"support-chatbot-be/internal/repository/specification"
	"support-chatbot-be/internal/repository/unitofwork"
)

const BackendName = "database"

type SessionBackend struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ contract.SessionBackend = (*SessionBackend)(nil)

func NewSessionBackend(uowFactory unitofwork.RepositoryFactory) *SessionBackend {
	return &SessionBackend{uowFactory: uowFactory}
}

func (b *SessionBackend) Name() string {
	return BackendName
}

func (b *SessionBackend) AppendMessage(ctx context.Context, message *entity.ChatMessage, history []entity.ConversationTurn) error {
	return b.inTx(ctx, func(uow unitofwork.UnitOfWork) error {
		if err := touchSession(ctx, uow, message.SessionId, message.Timestamp, history, true); err != nil {
			return err
		}
		row := *message
		if err := uow.ChatMessageRepository().Create(ctx, &row); err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		return nil
	})
}

func (b *SessionBackend) AppendFeedback(ctx context.Context, feedback *entity.UserFeedback) error {
	return b.inTx(ctx, func(uow unitofwork.UnitOfWork) error {
		if err := touchSession(ctx, uow, feedback.SessionId, feedback.Timestamp, nil, false); err != nil {
			return err
		}
		row := *feedback
		if err := uow.UserFeedbackRepository().Create(ctx, &row); err != nil {
			return fmt.Errorf("create feedback: %w", err)
		}
		return nil
	})
}

func (b *SessionBackend) ReplaceHistory(ctx context.Context, sessionId string, history []entity.ConversationTurn, at time.Time) error {
	return b.inTx(ctx, func(uow unitofwork.UnitOfWork) error {
		return touchSession(ctx, uow, sessionId, at, history, true)
	})
}

func (b *SessionBackend) GetSession(ctx context.Context, sessionId string) (*entity.ChatSession, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	session.Messages, err = uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.Chronological{},
	)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}

	session.Feedbacks, err = uow.UserFeedbackRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.Chronological{},
	)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}

	return session, nil
}

func (b *SessionBackend) ListSessions(ctx context.Context) ([]*entity.SessionSummary, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specification.OrderBy{Field: "last_updated", Desc: true})
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	messageCounts, err := uow.ChatMessageRepository().CountBySession(ctx)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	feedbackCounts, err := uow.UserFeedbackRepository().CountBySession(ctx)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}

	summaries := make([]*entity.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, &entity.SessionSummary{
			SessionId:     s.SessionId,
			CreatedAt:     s.CreatedAt,
			LastUpdated:   s.LastUpdated,
			MessageCount:  int(messageCounts[s.SessionId]),
			FeedbackCount: int(feedbackCounts[s.SessionId]),
			Source:        entity.SourceDatabase,
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastUpdated.After(summaries[j].LastUpdated)
	})
	return summaries, nil
}

func (b *SessionBackend) ListMessages(ctx context.Context) ([]*entity.ChatMessage, error) {
	messages, err := b.uowFactory.NewUnitOfWork(ctx).ChatMessageRepository().FindAll(ctx, specification.Chronological{Desc: true})
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	return messages, nil
}

func (b *SessionBackend) ListFeedback(ctx context.Context) ([]*entity.UserFeedback, error) {
	feedback, err := b.uowFactory.NewUnitOfWork(ctx).UserFeedbackRepository().FindAll(ctx, specification.Chronological{Desc: true})
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return feedback, nil
}

func (b *SessionBackend) inTx(ctx context.Context, fn func(uow unitofwork.UnitOfWork) error) error {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(uow); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// touchSession creates the session on first use and otherwise advances
// last_updated without ever moving it backwards.
func touchSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId string, at time.Time, history []entity.ConversationTurn, setHistory bool) error {
	repo := uow.ChatSessionRepository()

	session, err := repo.FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}

	if session == nil {
		session = &entity.ChatSession{
			SessionId:           sessionId,
			CreatedAt:           at,
			LastUpdated:         at,
			ConversationHistory: history,
		}
		if err := repo.Create(ctx, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	}

	if at.After(session.LastUpdated) {
		session.LastUpdated = at
	}
	if setHistory {
		session.ConversationHistory = history
	}
	if err := repo.Update(ctx, session); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}
