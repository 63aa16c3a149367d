package main

import (
	"context"
	"fmt"
	"time"

	"support-chatbot-be/internal/bootstrap"
	"support-chatbot-be/pkg/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var sessionsFilesOnly bool

var sessionsCmd = &cobra.Command{
	Use:   "sessions [session_id]",
	Short: "List stored sessions, or show one session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().BoolVar(&sessionsFilesOnly, "files-only", false, "skip the database and read session files only")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var db *gorm.DB
	if !sessionsFilesOnly {
		var err error
		db, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			faint.Printf("database unavailable, reading files only: %v\n", err)
			db = nil
		}
	}
	store := bootstrap.NewSessionStore(db, cfg, cliLogger())

	if len(args) == 1 {
		session, err := store.GetSession(ctx, args[0])
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("session %q not found", args[0])
		}

		heading.Printf("Session %s", session.SessionId)
		faint.Printf("  [%s] created %s, updated %s\n", session.Source,
			session.CreatedAt.Format(time.RFC3339), session.LastUpdated.Format(time.RFC3339))
		for _, m := range session.Messages {
			faint.Printf("%s\n", m.Timestamp.Format(time.RFC3339))
			label.Printf("  user: ")
			fmt.Println(m.UserMessage)
			label.Printf("  bot:  ")
			fmt.Println(m.BotResponse)
		}
		for _, f := range session.Feedbacks {
			label.Printf("feedback %s: ", f.Rating)
			fmt.Println(f.FeedbackText)
		}
		return nil
	}

	summaries, err := store.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		faint.Println("No sessions stored.")
		return nil
	}
	heading.Printf("%-38s %-20s %8s %9s  %s\n", "SESSION", "LAST UPDATED", "MESSAGES", "FEEDBACK", "SOURCE")
	for _, s := range summaries {
		fmt.Printf("%-38s %-20s %8d %9d  %s\n", s.SessionId, s.LastUpdated.Format("2006-01-02 15:04:05"),
			s.MessageCount, s.FeedbackCount, s.Source)
	}
	return nil
}
