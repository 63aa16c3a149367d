package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserFeedback struct {
	Id                  uint           `gorm:"primaryKey;autoIncrement"`
	SessionId           string         `gorm:"type:varchar(255);not null;index"`
	Rating              string         `gorm:"type:varchar(16);not null"`
	FeedbackText        string         `gorm:"type:text"`
	Timestamp           time.Time      `gorm:"not null;index"`
	ConversationHistory datatypes.JSON `gorm:"type:json"`
	FeedbackId          string         `gorm:"type:varchar(64);not null;uniqueIndex"`
}

func (UserFeedback) TableName() string {
	return "user_feedback"
}
