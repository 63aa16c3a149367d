package model

import "gorm.io/gorm"

// AutoMigrate creates or updates the chat tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&ChatSession{}, &ChatMessage{}, &UserFeedback{})
}
