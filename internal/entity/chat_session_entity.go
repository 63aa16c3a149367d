package entity

import "time"

// Provenance tags carried by records read back from a session backend.
const (
	SourceDatabase = "database"
	SourceJSONFile = "json_file"
)

type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatSession struct {
	SessionId           string
	CreatedAt           time.Time
	LastUpdated         time.Time
	ConversationHistory []ConversationTurn
	Messages            []*ChatMessage
	Feedbacks           []*UserFeedback
	Source              string
}

type SessionSummary struct {
	SessionId     string
	CreatedAt     time.Time
	LastUpdated   time.Time
	MessageCount  int
	FeedbackCount int
	Source        string
}
