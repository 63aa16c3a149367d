package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"support-chatbot-be/pkg/events"
	pktNats "support-chatbot-be/pkg/nats"

	"github.com/spf13/cobra"
)

var eventsDurable string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow chatbot events published to NATS",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsDurable, "durable", "chatctl", "durable consumer name")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	if cfg.App.NatsURL == "" {
		return fmt.Errorf("NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sub.Subscribe(ctx, pktNats.SubjectPrefix+">", eventsDurable, func(_ context.Context, e events.Event) error {
		payload, err := json.Marshal(e.Payload())
		if err != nil {
			return err
		}
		faint.Printf("%s ", e.Timestamp().Format(time.RFC3339))
		label.Printf("%s ", e.EventType())
		fmt.Println(string(payload))
		return nil
	})
	if err != nil {
		return err
	}

	success.Printf("Listening on %s (ctrl+c to stop)\n", cfg.App.NatsURL)
	<-ctx.Done()
	return nil
}
