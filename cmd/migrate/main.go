package main

import (
	"log"

	"support-chatbot-be/internal/config"
	"support-chatbot-be/internal/model"
	"support-chatbot-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Migrating chat_sessions, chat_messages and user_feedback...")
	if err := model.AutoMigrate(db); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	log.Println("✅ Migration complete")
}
