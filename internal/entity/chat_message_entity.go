package entity

import "time"

type ChatMessage struct {
	MessageId   string
	SessionId   string
	UserMessage string
	BotResponse string
	Timestamp   time.Time
	Source      string
}
