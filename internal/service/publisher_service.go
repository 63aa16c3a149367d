package service

import (
	"context"

	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventSink is an external event bus. *nats.Publisher satisfies it.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// IPublisherService fans domain events out to the in-process topic and, when
// connected, to NATS. Publishing never fails the caller.
type IPublisherService interface {
	Publish(ctx context.Context, event events.Event)
}

type publisherService struct {
	topicName string
	pubSub    message.Publisher
	sink      EventSink
	logger    logger.ILogger
}

// NewPublisherService accepts a nil pubSub or sink; the matching leg is skipped.
func NewPublisherService(topicName string, pubSub message.Publisher, sink EventSink, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		sink:      sink,
		logger:    log,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.Event) {
	if p == nil {
		return
	}

	if p.pubSub != nil {
		payload, err := events.Marshal(event)
		if err != nil {
			p.logger.Error("EVENTS", "Failed to encode event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		} else {
			msg := message.NewMessage(watermill.NewUUID(), payload)
			msg.Metadata.Set("type", event.EventType())
			if err := p.pubSub.Publish(p.topicName, msg); err != nil {
				p.logger.Error("EVENTS", "Failed to publish event to topic", map[string]interface{}{
					"type":  event.EventType(),
					"topic": p.topicName,
					"error": err.Error(),
				})
			}
		}
	}

	if p.sink != nil {
		if err := p.sink.Publish(ctx, event); err != nil {
			p.logger.Error("EVENTS", "Failed to publish event to NATS", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
}
