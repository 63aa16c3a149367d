package entity

import "time"

// ChatHistorySnapshot is a client-submitted transcript kept in the legacy ledger.
// Messages are stored as the client sent them.
type ChatHistorySnapshot struct {
	Id                  string
	SessionId           string
	ClientTimestamp     string
	Messages            []map[string]interface{}
	ConversationHistory []ConversationTurn
	CreatedAt           time.Time
	Source              string
}
