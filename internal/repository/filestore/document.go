package filestore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"support-chatbot-be/internal/entity"
)

// legacyLayout is the naive ISO form written by older deployments.
const legacyLayout = "2006-01-02T15:04:05.999999"

// Timestamp reads both RFC 3339 and the zone-less legacy form, and always
// writes RFC 3339.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, legacyLayout} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

type sessionDocument struct {
	SessionId           string                    `json:"session_id"`
	CreatedAt           Timestamp                 `json:"created_at"`
	LastUpdated         Timestamp                 `json:"last_updated"`
	Messages            []messageDocument         `json:"messages"`
	Feedbacks           []feedbackDocument        `json:"feedbacks"`
	ConversationHistory []entity.ConversationTurn `json:"conversation_history"`
}

type messageDocument struct {
	Timestamp   Timestamp `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Id          string    `json:"id"`
}

type feedbackDocument struct {
	Timestamp           Timestamp                 `json:"timestamp"`
	Rating              string                    `json:"rating"`
	Feedback            string                    `json:"feedback"`
	Id                  string                    `json:"id"`
	ConversationHistory []entity.ConversationTurn `json:"conversation_history,omitempty"`
}

func newSessionDocument(sessionId string, at time.Time) *sessionDocument {
	return &sessionDocument{
		SessionId:           sessionId,
		CreatedAt:           Timestamp{at},
		LastUpdated:         Timestamp{at},
		Messages:            []messageDocument{},
		Feedbacks:           []feedbackDocument{},
		ConversationHistory: []entity.ConversationTurn{},
	}
}

func (d *sessionDocument) touch(at time.Time) {
	if at.After(d.LastUpdated.Time) {
		d.LastUpdated = Timestamp{at}
	}
}

func (d *sessionDocument) toEntity() *entity.ChatSession {
	s := &entity.ChatSession{
		SessionId:           d.SessionId,
		CreatedAt:           d.CreatedAt.Time,
		LastUpdated:         d.LastUpdated.Time,
		ConversationHistory: d.ConversationHistory,
		Messages:            make([]*entity.ChatMessage, 0, len(d.Messages)),
		Feedbacks:           make([]*entity.UserFeedback, 0, len(d.Feedbacks)),
		Source:              entity.SourceJSONFile,
	}
	if s.ConversationHistory == nil {
		s.ConversationHistory = []entity.ConversationTurn{}
	}
	for _, m := range d.Messages {
		s.Messages = append(s.Messages, m.toEntity(d.SessionId))
	}
	for _, f := range d.Feedbacks {
		s.Feedbacks = append(s.Feedbacks, f.toEntity(d.SessionId))
	}
	return s
}

func (d *sessionDocument) summary() *entity.SessionSummary {
	return &entity.SessionSummary{
		SessionId:     d.SessionId,
		CreatedAt:     d.CreatedAt.Time,
		LastUpdated:   d.LastUpdated.Time,
		MessageCount:  len(d.Messages),
		FeedbackCount: len(d.Feedbacks),
		Source:        entity.SourceJSONFile,
	}
}

func (m messageDocument) toEntity(sessionId string) *entity.ChatMessage {
	return &entity.ChatMessage{
		MessageId:   m.Id,
		SessionId:   sessionId,
		UserMessage: m.UserMessage,
		BotResponse: m.BotResponse,
		Timestamp:   m.Timestamp.Time,
		Source:      entity.SourceJSONFile,
	}
}

func (f feedbackDocument) toEntity(sessionId string) *entity.UserFeedback {
	history := f.ConversationHistory
	if history == nil {
		history = []entity.ConversationTurn{}
	}
	return &entity.UserFeedback{
		FeedbackId:          f.Id,
		SessionId:           sessionId,
		Rating:              f.Rating,
		FeedbackText:        f.Feedback,
		ConversationHistory: history,
		Timestamp:           f.Timestamp.Time,
		Source:              entity.SourceJSONFile,
	}
}
