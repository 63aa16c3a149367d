package service

import (
	"context"
	"fmt"

	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/repository/replicated"
	"support-chatbot-be/pkg/events"
)

type IFeedbackService interface {
	SaveFeedback(ctx context.Context, request *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
	GetAllFeedback(ctx context.Context) ([]*dto.FeedbackRecordResponse, error)
}

type feedbackService struct {
	store     *replicated.Store
	publisher IPublisherService
	logger    logger.ILogger
}

func NewFeedbackService(store *replicated.Store, publisher IPublisherService, log logger.ILogger) IFeedbackService {
	return &feedbackService{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

func (s *feedbackService) SaveFeedback(ctx context.Context, request *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	turns := toTurns(request.ConversationHistory)

	feedback, err := s.store.AppendFeedback(ctx, request.SessionId, request.Rating, request.Feedback, turns)
	if err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.logger.Info("FEEDBACK", "Feedback recorded", map[string]interface{}{
		"session_id":  feedback.SessionId,
		"feedback_id": feedback.FeedbackId,
		"rating":      feedback.Rating,
	})

	if s.publisher != nil {
		s.publisher.Publish(ctx, events.New(events.FeedbackRecorded, map[string]interface{}{
			"session_id":           feedback.SessionId,
			"feedback_id":          feedback.FeedbackId,
			"rating":               feedback.Rating,
			"feedback":             feedback.FeedbackText,
			"conversation_history": turnsPayload(turns),
		}, feedback.Timestamp))
	}

	return &dto.FeedbackResponse{
		FeedbackId: feedback.FeedbackId,
		SessionId:  feedback.SessionId,
		Timestamp:  feedback.Timestamp,
	}, nil
}

// GetAllFeedback lists feedback from every backend, newest first.
func (s *feedbackService) GetAllFeedback(ctx context.Context) ([]*dto.FeedbackRecordResponse, error) {
	feedbacks, err := s.store.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.FeedbackRecordResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		res = append(res, &dto.FeedbackRecordResponse{
			Id:                  f.FeedbackId,
			SessionId:           f.SessionId,
			Rating:              f.Rating,
			Feedback:            f.FeedbackText,
			Timestamp:           f.Timestamp,
			ConversationHistory: toTurnDTOs(f.ConversationHistory),
			Source:              f.Source,
		})
	}
	return res, nil
}
