// Package replicated fans session writes out to every configured backend and
// merges reads back, preferring the earlier backend when both know a record.
package replicated

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ErrAllBackendsFailed is returned, joined with each backend's error, when no
// backend accepted a write or answered a read.
var ErrAllBackendsFailed = errors.New("all session backends failed")

type Option func(*Store)

// WithClock replaces the wall clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the uuid generator for message and feedback ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// Store is a best-effort replicated write over N backends: a write succeeds when
// at least one backend accepts it.
type Store struct {
	backends []contract.SessionBackend
	log      logger.ILogger
	now      func() time.Time
	newID    func() string
}

func New(log logger.ILogger, backends []contract.SessionBackend, opts ...Option) *Store {
	s := &Store{
		backends: backends,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Backends() []contract.SessionBackend {
	return s.backends
}

func (s *Store) AppendMessage(ctx context.Context, sessionId, userMessage, botResponse string, history []entity.ConversationTurn) (*entity.ChatMessage, error) {
	message := &entity.ChatMessage{
		MessageId:   s.newID(),
		SessionId:   sessionId,
		UserMessage: userMessage,
		BotResponse: botResponse,
		Timestamp:   s.now(),
	}
	err := s.write("append_message", sessionId, func(b contract.SessionBackend) error {
		return b.AppendMessage(ctx, message, history)
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (s *Store) AppendFeedback(ctx context.Context, sessionId, rating, text string, history []entity.ConversationTurn) (*entity.UserFeedback, error) {
	feedback := &entity.UserFeedback{
		FeedbackId:          s.newID(),
		SessionId:           sessionId,
		Rating:              rating,
		FeedbackText:        text,
		ConversationHistory: history,
		Timestamp:           s.now(),
	}
	err := s.write("append_feedback", sessionId, func(b contract.SessionBackend) error {
		return b.AppendFeedback(ctx, feedback)
	})
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *Store) ReplaceHistory(ctx context.Context, sessionId string, history []entity.ConversationTurn) error {
	at := s.now()
	return s.write("replace_history", sessionId, func(b contract.SessionBackend) error {
		return b.ReplaceHistory(ctx, sessionId, history, at)
	})
}

// GetSession returns the first backend's copy of the session. It returns nil, nil
// when no backend has it, and an error only when every backend failed.
func (s *Store) GetSession(ctx context.Context, sessionId string) (*entity.ChatSession, error) {
	var errs []error
	for _, b := range s.backends {
		session, err := b.GetSession(ctx, sessionId)
		if err != nil {
			s.logReadFailure(b, "get_session", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		if session != nil {
			return session, nil
		}
	}
	if len(s.backends) > 0 && len(errs) == len(s.backends) {
		return nil, joinFailures(errs)
	}
	return nil, nil
}

func (s *Store) ListSessions(ctx context.Context) ([]*entity.SessionSummary, error) {
	var merged []*entity.SessionSummary
	seen := make(map[string]bool)

	err := s.read("list_sessions", func(b contract.SessionBackend) error {
		summaries, err := b.ListSessions(ctx)
		if err != nil {
			return err
		}
		for _, sum := range summaries {
			if seen[sum.SessionId] {
				continue
			}
			seen[sum.SessionId] = true
			merged = append(merged, sum)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].LastUpdated.After(merged[j].LastUpdated)
	})
	return merged, nil
}

// ListMessages returns messages newest first. Copies of one message held by
// several backends share an id and are reported once.
func (s *Store) ListMessages(ctx context.Context) ([]*entity.ChatMessage, error) {
	var merged []*entity.ChatMessage
	seen := make(map[string]bool)

	err := s.read("list_messages", func(b contract.SessionBackend) error {
		messages, err := b.ListMessages(ctx)
		if err != nil {
			return err
		}
		for _, m := range messages {
			if m.MessageId != "" && seen[m.MessageId] {
				continue
			}
			seen[m.MessageId] = true
			merged = append(merged, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged, nil
}

func (s *Store) ListFeedback(ctx context.Context) ([]*entity.UserFeedback, error) {
	var merged []*entity.UserFeedback
	seen := make(map[string]bool)

	err := s.read("list_feedback", func(b contract.SessionBackend) error {
		feedback, err := b.ListFeedback(ctx)
		if err != nil {
			return err
		}
		for _, f := range feedback {
			if f.FeedbackId != "" && seen[f.FeedbackId] {
				continue
			}
			seen[f.FeedbackId] = true
			merged = append(merged, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged, nil
}

// write runs fn against every backend in order, whatever the earlier outcomes.
func (s *Store) write(op, sessionId string, fn func(b contract.SessionBackend) error) error {
	var errs []error
	for _, b := range s.backends {
		if err := fn(b); err != nil {
			s.log.Error("SESSION_STORE", "Backend write failed", map[string]interface{}{
				"backend":    b.Name(),
				"operation":  op,
				"session_id": sessionId,
				"error":      err.Error(),
			})
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		}
	}
	if len(errs) == len(s.backends) {
		return joinFailures(errs)
	}
	return nil
}

func (s *Store) read(op string, fn func(b contract.SessionBackend) error) error {
	var errs []error
	for _, b := range s.backends {
		if err := fn(b); err != nil {
			s.logReadFailure(b, op, err)
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		}
	}
	if len(s.backends) > 0 && len(errs) == len(s.backends) {
		return joinFailures(errs)
	}
	return nil
}

func (s *Store) logReadFailure(b contract.SessionBackend, op string, err error) {
	s.log.Warn("SESSION_STORE", "Backend read failed", map[string]interface{}{
		"backend":   b.Name(),
		"operation": op,
		"error":     err.Error(),
	})
}

func joinFailures(errs []error) error {
	return errors.Join(append([]error{ErrAllBackendsFailed}, errs...)...)
}
