package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/repository/filestore"
	"support-chatbot-be/internal/repository/replicated"

	"github.com/google/uuid"
)

type IChatHistoryService interface {
	SaveChatHistory(ctx context.Context, request *dto.ChatHistoryRequest) (*dto.ChatHistoryResponse, error)
	GetChatHistory(ctx context.Context) ([]*dto.ChatHistoryRecordResponse, error)
}

type chatHistoryService struct {
	ledger *filestore.Ledger
	store  *replicated.Store
	logger logger.ILogger
}

func NewChatHistoryService(ledger *filestore.Ledger, store *replicated.Store, log logger.ILogger) IChatHistoryService {
	return &chatHistoryService{
		ledger: ledger,
		store:  store,
		logger: log,
	}
}

// SaveChatHistory appends the snapshot to the ledger and, for a known session, stores
// its history. It fails only when every target failed.
func (s *chatHistoryService) SaveChatHistory(ctx context.Context, request *dto.ChatHistoryRequest) (*dto.ChatHistoryResponse, error) {
	turns := toTurns(request.ConversationHistory)
	snapshot := &entity.ChatHistorySnapshot{
		Id:                  uuid.NewString(),
		SessionId:           request.SessionId,
		ClientTimestamp:     request.Timestamp,
		Messages:            request.Messages,
		ConversationHistory: turns,
		CreatedAt:           time.Now().UTC(),
	}

	var errs []error
	targets := 1

	if err := s.ledger.Append(ctx, snapshot); err != nil {
		s.logger.Error("SESSION_STORE", "Failed to append chat history snapshot", map[string]interface{}{
			"path":  s.ledger.Path(),
			"error": err.Error(),
		})
		errs = append(errs, err)
	}

	if request.SessionId != "" {
		targets++
		if err := s.store.ReplaceHistory(ctx, request.SessionId, turns); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == targets {
		return nil, fmt.Errorf("failed to save chat history: %w", errors.Join(errs...))
	}
	return &dto.ChatHistoryResponse{Id: snapshot.Id}, nil
}

// GetChatHistory returns stored exchanges newest first, then ledger snapshots in
// insertion order.
func (s *chatHistoryService) GetChatHistory(ctx context.Context) ([]*dto.ChatHistoryRecordResponse, error) {
	messages, err := s.store.ListMessages(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatHistoryRecordResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, &dto.ChatHistoryRecordResponse{
			Id:          m.MessageId,
			SessionId:   m.SessionId,
			UserMessage: m.UserMessage,
			BotResponse: m.BotResponse,
			Timestamp:   m.Timestamp.Format(time.RFC3339Nano),
			CreatedAt:   m.Timestamp,
			Source:      m.Source,
		})
	}

	snapshots, err := s.ledger.List(ctx)
	if err != nil {
		s.logger.Warn("SESSION_STORE", "Failed to read chat history ledger", map[string]interface{}{
			"path":  s.ledger.Path(),
			"error": err.Error(),
		})
		return res, nil
	}
	for _, snap := range snapshots {
		res = append(res, &dto.ChatHistoryRecordResponse{
			Id:                  snap.Id,
			SessionId:           snap.SessionId,
			Timestamp:           snap.ClientTimestamp,
			Messages:            snap.Messages,
			ConversationHistory: toTurnDTOs(snap.ConversationHistory),
			CreatedAt:           snap.CreatedAt,
			Source:              snap.Source,
		})
	}
	return res, nil
}
