package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/repository/contract"
	"support-chatbot-be/internal/repository/filestore"
	"support-chatbot-be/internal/repository/replicated"
	"support-chatbot-be/pkg/events"
	"support-chatbot-be/pkg/llm"
)

var errDown = errors.New("connection refused")

type downBackend struct{}

func (downBackend) Name() string { return "down" }
func (downBackend) AppendMessage(context.Context, *entity.ChatMessage, []entity.ConversationTurn) error {
	return errDown
}
func (downBackend) AppendFeedback(context.Context, *entity.UserFeedback) error { return errDown }
func (downBackend) ReplaceHistory(context.Context, string, []entity.ConversationTurn, time.Time) error {
	return errDown
}
func (downBackend) GetSession(context.Context, string) (*entity.ChatSession, error) {
	return nil, errDown
}
func (downBackend) ListSessions(context.Context) ([]*entity.SessionSummary, error) {
	return nil, errDown
}
func (downBackend) ListMessages(context.Context) ([]*entity.ChatMessage, error) { return nil, errDown }
func (downBackend) ListFeedback(context.Context) ([]*entity.UserFeedback, error) {
	return nil, errDown
}

func newFileStore(t *testing.T) (*replicated.Store, *filestore.SessionStore) {
	t.Helper()
	files := filestore.NewSessionStore(t.TempDir())
	return replicated.New(logger.NewNopLogger(), []contract.SessionBackend{files}), files
}

func newDownStore() *replicated.Store {
	return replicated.New(logger.NewNopLogger(), []contract.SessionBackend{downBackend{}})
}

type stubProvider struct {
	chatFunc func(ctx context.Context, history []llm.Message) (string, error)
	calls    int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	s.calls++
	return s.chatFunc(ctx, history)
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingPublisher) published() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

type logEntry struct {
	level   string
	module  string
	message string
	details map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, module, message, details})
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record("debug", module, message, details)
}
func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record("info", module, message, details)
}
func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record("warn", module, message, details)
}
func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record("error", module, message, details)
}
func (l *recordingLogger) Sync() error { return nil }

func (l *recordingLogger) all() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}
