package mapper

import (
	"encoding/json"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		SessionId:           s.SessionId,
		CreatedAt:           s.CreatedAt,
		LastUpdated:         s.LastUpdated,
		ConversationHistory: decodeTurns(s.ConversationHistory),
		Source:              entity.SourceDatabase,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		SessionId:           s.SessionId,
		CreatedAt:           s.CreatedAt,
		LastUpdated:         s.LastUpdated,
		ConversationHistory: encodeTurns(s.ConversationHistory),
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		MessageId:   msg.MessageId,
		SessionId:   msg.SessionId,
		UserMessage: msg.UserMessage,
		BotResponse: msg.BotResponse,
		Timestamp:   msg.Timestamp,
		Source:      entity.SourceDatabase,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		SessionId:   msg.SessionId,
		UserMessage: msg.UserMessage,
		BotResponse: msg.BotResponse,
		Timestamp:   msg.Timestamp,
		MessageId:   msg.MessageId,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}

// Feedback Mappers

func (m *ChatMapper) UserFeedbackToEntity(fb *model.UserFeedback) *entity.UserFeedback {
	if fb == nil {
		return nil
	}

	return &entity.UserFeedback{
		FeedbackId:          fb.FeedbackId,
		SessionId:           fb.SessionId,
		Rating:              fb.Rating,
		FeedbackText:        fb.FeedbackText,
		ConversationHistory: decodeTurns(fb.ConversationHistory),
		Timestamp:           fb.Timestamp,
		Source:              entity.SourceDatabase,
	}
}

func (m *ChatMapper) UserFeedbackToModel(fb *entity.UserFeedback) *model.UserFeedback {
	if fb == nil {
		return nil
	}

	return &model.UserFeedback{
		SessionId:           fb.SessionId,
		Rating:              fb.Rating,
		FeedbackText:        fb.FeedbackText,
		Timestamp:           fb.Timestamp,
		ConversationHistory: encodeTurns(fb.ConversationHistory),
		FeedbackId:          fb.FeedbackId,
	}
}

func (m *ChatMapper) UserFeedbacksToEntities(fbs []*model.UserFeedback) []*entity.UserFeedback {
	entities := make([]*entity.UserFeedback, len(fbs))
	for i, fb := range fbs {
		entities[i] = m.UserFeedbackToEntity(fb)
	}
	return entities
}

// Unreadable history columns map to an empty history.
func decodeTurns(raw datatypes.JSON) []entity.ConversationTurn {
	turns := []entity.ConversationTurn{}
	if len(raw) == 0 {
		return turns
	}
	if err := json.Unmarshal(raw, &turns); err != nil {
		return []entity.ConversationTurn{}
	}
	return turns
}

func encodeTurns(turns []entity.ConversationTurn) datatypes.JSON {
	if turns == nil {
		turns = []entity.ConversationTurn{}
	}
	b, err := json.Marshal(turns)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
