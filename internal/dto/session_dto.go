package dto

import "time"

type SessionMessageResponse struct {
	Id          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
}

type SessionFeedbackResponse struct {
	Id        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Rating    string    `json:"rating"`
	Feedback  string    `json:"feedback"`
}

type SessionResponse struct {
	SessionId           string                    `json:"session_id"`
	CreatedAt           time.Time                 `json:"created_at"`
	LastUpdated         time.Time                 `json:"last_updated"`
	Messages            []SessionMessageResponse  `json:"messages"`
	Feedbacks           []SessionFeedbackResponse `json:"feedbacks"`
	ConversationHistory []ConversationTurnDTO     `json:"conversation_history"`
	Source              string                    `json:"source"`
}

type SessionSummaryResponse struct {
	SessionId     string    `json:"session_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdated   time.Time `json:"last_updated"`
	MessageCount  int       `json:"message_count"`
	FeedbackCount int       `json:"feedback_count"`
	Source        string    `json:"source"`
}
