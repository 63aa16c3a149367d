package dto

import "time"

type ChatHistoryRequest struct {
	Timestamp           string                   `json:"timestamp"`
	Messages            []map[string]interface{} `json:"messages"`
	ConversationHistory []ConversationTurnDTO    `json:"conversationHistory"`
	SessionId           string                   `json:"session_id" validate:"max=255"`
}

type ChatHistoryResponse struct {
	Id string `json:"id"`
}

// ChatHistoryRecordResponse is either a stored exchange (user_message and
// bot_response set) or a ledger snapshot (messages set).
type ChatHistoryRecordResponse struct {
	Id                  string                   `json:"id"`
	SessionId           string                   `json:"session_id,omitempty"`
	UserMessage         string                   `json:"user_message,omitempty"`
	BotResponse         string                   `json:"bot_response,omitempty"`
	Timestamp           string                   `json:"timestamp,omitempty"`
	Messages            []map[string]interface{} `json:"messages,omitempty"`
	ConversationHistory []ConversationTurnDTO    `json:"conversation_history,omitempty"`
	CreatedAt           time.Time                `json:"created_at"`
	Source              string                   `json:"source"`
}
