package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/pkg/mailer"
	"support-chatbot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	sendFunc func(to string, alert mailer.FeedbackAlert) error
	sent     []mailer.FeedbackAlert
}

func (m *stubMailer) SendFeedbackAlert(to string, alert mailer.FeedbackAlert) error {
	m.sent = append(m.sent, alert)
	if m.sendFunc != nil {
		return m.sendFunc(to, alert)
	}
	return nil
}

func encoded(t *testing.T, e events.Event) *message.Message {
	t.Helper()
	payload, err := events.Marshal(e)
	require.NoError(t, err)
	return message.NewMessage("msg-1", payload)
}

func acked(msg *message.Message) bool {
	select {
	case <-msg.Acked():
		return true
	default:
		return false
	}
}

func nacked(msg *message.Message) bool {
	select {
	case <-msg.Nacked():
		return true
	default:
		return false
	}
}

func dislikeEvent() events.BaseEvent {
	return events.New(events.FeedbackRecorded, map[string]interface{}{
		"session_id":  "s-1",
		"feedback_id": "f-1",
		"rating":      "dislike",
		"feedback":    "yanlış renk",
		"conversation_history": []map[string]interface{}{
			{"role": "user", "content": "pembe var mı"},
		},
	}, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
}

func TestConsumer_WritesTranscriptAndAlerts(t *testing.T) {
	transcript := &recordingLogger{}
	mail := &stubMailer{}
	cs := NewConsumerService(nil, "chatbot.events", transcript, mail, "ops@example.com", logger.NewNopLogger()).(*consumerService)

	msg := encoded(t, dislikeEvent())
	cs.processMessage(msg)

	assert.True(t, acked(msg))

	entries := transcript.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "TRANSCRIPT", entries[0].module)
	assert.Equal(t, events.FeedbackRecorded, entries[0].message)
	assert.Equal(t, "s-1", entries[0].details["session_id"])

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "f-1", mail.sent[0].FeedbackId)
	assert.Equal(t, "yanlış renk", mail.sent[0].FeedbackText)
	assert.Equal(t, []mailer.TranscriptLine{{Role: "user", Content: "pembe var mı"}}, mail.sent[0].Transcript)
}

func TestConsumer_NoAlertForLikesOrWithoutTarget(t *testing.T) {
	mail := &stubMailer{}

	like := events.New(events.FeedbackRecorded, map[string]interface{}{"rating": "like"}, time.Now())
	cs := NewConsumerService(nil, "t", &recordingLogger{}, mail, "ops@example.com", logger.NewNopLogger()).(*consumerService)
	cs.processMessage(encoded(t, like))

	unconfigured := NewConsumerService(nil, "t", &recordingLogger{}, mail, "", logger.NewNopLogger()).(*consumerService)
	unconfigured.processMessage(encoded(t, dislikeEvent()))

	withoutMailer := NewConsumerService(nil, "t", &recordingLogger{}, nil, "ops@example.com", logger.NewNopLogger()).(*consumerService)
	msg := encoded(t, dislikeEvent())
	withoutMailer.processMessage(msg)

	assert.Empty(t, mail.sent)
	assert.True(t, acked(msg))
}

func TestConsumer_MalformedMessageIsAcked(t *testing.T) {
	transcript := &recordingLogger{}
	cs := NewConsumerService(nil, "t", transcript, nil, "", logger.NewNopLogger()).(*consumerService)

	msg := message.NewMessage("bad", []byte("{not json"))
	cs.processMessage(msg)

	assert.True(t, acked(msg))
	assert.Empty(t, transcript.all())
}

func TestConsumer_MailFailureRetriedOnce(t *testing.T) {
	transcript := &recordingLogger{}
	mail := &stubMailer{sendFunc: func(string, mailer.FeedbackAlert) error {
		return errors.New("smtp unavailable")
	}}
	cs := NewConsumerService(nil, "t", transcript, mail, "ops@example.com", logger.NewNopLogger()).(*consumerService)

	first := encoded(t, dislikeEvent())
	cs.processMessage(first)
	assert.True(t, nacked(first))

	redelivered := first.Copy()
	cs.processMessage(redelivered)
	assert.True(t, acked(redelivered))

	assert.Len(t, mail.sent, 2)
	assert.Len(t, transcript.all(), 1)
}

func TestConsumer_DrainsPublishedEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	transcript := &recordingLogger{}
	cs := NewConsumerService(pubSub, "chatbot.events", transcript, nil, "", logger.NewNopLogger())
	require.NoError(t, cs.Consume(context.Background()))

	publisher := NewPublisherService("chatbot.events", pubSub, nil, logger.NewNopLogger())
	publisher.Publish(context.Background(), events.New(events.ChatExchangeRecorded, map[string]interface{}{
		"session_id": "s-1",
	}, time.Now()))

	assert.Eventually(t, func() bool {
		return len(transcript.all()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, events.ChatExchangeRecorded, transcript.all()[0].message)
}
