package service

import (
	"context"

	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/pkg/serverutils"
	"support-chatbot-be/internal/repository/replicated"
)

type ISessionService interface {
	GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	GetAllSessions(ctx context.Context) ([]*dto.SessionSummaryResponse, error)
}

type sessionService struct {
	store *replicated.Store
}

func NewSessionService(store *replicated.Store) ISessionService {
	return &sessionService{store: store}
}

func (s *sessionService) GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	session, err := s.store.GetSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("Session not found")
	}

	messages := make([]dto.SessionMessageResponse, 0, len(session.Messages))
	for _, m := range session.Messages {
		messages = append(messages, dto.SessionMessageResponse{
			Id:          m.MessageId,
			Timestamp:   m.Timestamp,
			UserMessage: m.UserMessage,
			BotResponse: m.BotResponse,
		})
	}

	feedbacks := make([]dto.SessionFeedbackResponse, 0, len(session.Feedbacks))
	for _, f := range session.Feedbacks {
		feedbacks = append(feedbacks, dto.SessionFeedbackResponse{
			Id:        f.FeedbackId,
			Timestamp: f.Timestamp,
			Rating:    f.Rating,
			Feedback:  f.FeedbackText,
		})
	}

	return &dto.SessionResponse{
		SessionId:           session.SessionId,
		CreatedAt:           session.CreatedAt,
		LastUpdated:         session.LastUpdated,
		Messages:            messages,
		Feedbacks:           feedbacks,
		ConversationHistory: toTurnDTOs(session.ConversationHistory),
		Source:              session.Source,
	}, nil
}

func (s *sessionService) GetAllSessions(ctx context.Context) ([]*dto.SessionSummaryResponse, error) {
	summaries, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionSummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		res = append(res, &dto.SessionSummaryResponse{
			SessionId:     sum.SessionId,
			CreatedAt:     sum.CreatedAt,
			LastUpdated:   sum.LastUpdated,
			MessageCount:  sum.MessageCount,
			FeedbackCount: sum.FeedbackCount,
			Source:        sum.Source,
		})
	}
	return res, nil
}
