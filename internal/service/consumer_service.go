package service

import (
	"context"
	"fmt"
	"sync"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/pkg/mailer"
	"support-chatbot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	transcript  logger.ILogger
	mailer      mailer.IEmailService
	alertTarget string
	logger      logger.ILogger

	// uuids of messages whose alert already failed once
	retried sync.Map
}

// NewConsumerService drains the event topic into the transcript log. Dislike
// feedback is mailed to alertTarget when both emailService and alertTarget are set.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	transcript logger.ILogger,
	emailService mailer.IEmailService,
	alertTarget string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		transcript:  transcript,
		mailer:      emailService,
		alertTarget: alertTarget,
		logger:      log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	event, err := events.UnmarshalWithType(msg.Payload, msg.Metadata.Get("type"))
	if err != nil {
		cs.logger.Warn("EVENTS", "Dropping undecodable event", map[string]interface{}{
			"uuid":  msg.UUID,
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	if _, seen := cs.retried.Load(msg.UUID); !seen {
		cs.writeTranscript(event)
	}

	if err := cs.alert(event); err != nil {
		if _, loaded := cs.retried.LoadOrStore(msg.UUID, struct{}{}); !loaded {
			cs.logger.Warn("EVENTS", "Feedback alert failed, retrying once", map[string]interface{}{
				"uuid":  msg.UUID,
				"error": err.Error(),
			})
			msg.Nack()
			return
		}
		cs.logger.Error("EVENTS", "Feedback alert failed", map[string]interface{}{
			"uuid":  msg.UUID,
			"error": err.Error(),
		})
	}

	cs.retried.Delete(msg.UUID)
	msg.Ack()
}

func (cs *consumerService) writeTranscript(event events.BaseEvent) {
	details := map[string]interface{}{"occurred_at": event.OccurredAt}
	for k, v := range event.Data {
		details[k] = v
	}
	cs.transcript.Info("TRANSCRIPT", event.Type, details)
}

func (cs *consumerService) alert(event events.BaseEvent) error {
	if event.Type != events.FeedbackRecorded || cs.mailer == nil || cs.alertTarget == "" {
		return nil
	}
	if stringField(event.Data, "rating") != entity.RatingDislike {
		return nil
	}

	alert := mailer.FeedbackAlert{
		SessionId:    stringField(event.Data, "session_id"),
		FeedbackId:   stringField(event.Data, "feedback_id"),
		Rating:       entity.RatingDislike,
		FeedbackText: stringField(event.Data, "feedback"),
	}
	if turns, ok := event.Data["conversation_history"].([]interface{}); ok {
		for _, t := range turns {
			turn, ok := t.(map[string]interface{})
			if !ok {
				continue
			}
			alert.Transcript = append(alert.Transcript, mailer.TranscriptLine{
				Role:    stringField(turn, "role"),
				Content: stringField(turn, "content"),
			})
		}
	}

	return cs.mailer.SendFeedbackAlert(cs.alertTarget, alert)
}

func stringField(data map[string]interface{}, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
