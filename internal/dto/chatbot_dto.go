package dto

import (
	"time"

	"support-chatbot-be/pkg/rag/retrieval"
)

type ConversationTurnDTO struct {
	Role    string `json:"role" validate:"required"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string                `json:"message" validate:"required,max=4000"`
	ConversationHistory []ConversationTurnDTO `json:"conversation_history" validate:"dive"`
	// Older widgets post the history in camelCase.
	ConversationHistoryCamel []ConversationTurnDTO `json:"conversationHistory,omitempty" validate:"dive"`
	SessionId                string                `json:"session_id,omitempty" validate:"max=255"`
}

func (r *ChatRequest) History() []ConversationTurnDTO {
	if len(r.ConversationHistory) > 0 {
		return r.ConversationHistory
	}
	return r.ConversationHistoryCamel
}

type ChatResponse struct {
	Response      string               `json:"response"`
	ProductsFound []retrieval.Document `json:"products_found"`
}

// ChatStreamError is sent over the websocket when a frame cannot be handled.
type ChatStreamError struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
