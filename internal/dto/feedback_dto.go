package dto

import "time"

type FeedbackRequest struct {
	Rating              string                `json:"rating" validate:"required,oneof=like dislike"`
	Feedback            string                `json:"feedback" validate:"max=4000"`
	Timestamp           string                `json:"timestamp"`
	ConversationHistory []ConversationTurnDTO `json:"conversationHistory"`
	SessionId           string                `json:"session_id" validate:"required,max=255"`
}

type FeedbackResponse struct {
	FeedbackId string    `json:"feedback_id"`
	SessionId  string    `json:"session_id"`
	Timestamp  time.Time `json:"timestamp"`
}

type FeedbackRecordResponse struct {
	Id                  string                `json:"id"`
	SessionId           string                `json:"session_id"`
	Rating              string                `json:"rating"`
	Feedback            string                `json:"feedback"`
	Timestamp           time.Time             `json:"timestamp"`
	ConversationHistory []ConversationTurnDTO `json:"conversation_history"`
	Source              string                `json:"source"`
}
