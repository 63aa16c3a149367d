package model

import (
	"time"

	"gorm.io/datatypes"
)

type ChatSession struct {
	SessionId           string         `gorm:"type:varchar(255);primaryKey"`
	CreatedAt           time.Time      `gorm:"not null"`
	LastUpdated         time.Time      `gorm:"not null;index"`
	ConversationHistory datatypes.JSON `gorm:"type:json"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
