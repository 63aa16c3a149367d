package model

import "time"

type ChatMessage struct {
	Id          uint      `gorm:"primaryKey;autoIncrement"`
	SessionId   string    `gorm:"type:varchar(255);not null;index"`
	UserMessage string    `gorm:"type:text"`
	BotResponse string    `gorm:"type:text"`
	Timestamp   time.Time `gorm:"not null;index"`
	MessageId   string    `gorm:"type:varchar(64);not null;uniqueIndex"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
