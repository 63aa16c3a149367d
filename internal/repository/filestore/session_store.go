// Package filestore keeps the legacy JSON persistence: one document per session
// under the sessions directory and an append-only chat history ledger.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/repository/contract"
)

const (
	BackendName = "json_file"

	filePrefix = "session_"
	fileSuffix = ".json"
)

// SessionStore rewrites a session's whole document on every write. Writes to one
// session are serialized in-process; different sessions proceed independently.
type SessionStore struct {
	dir   string
	locks sync.Map // session id -> *sync.Mutex
}

var _ contract.SessionBackend = (*SessionStore)(nil)

func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

func (s *SessionStore) Name() string {
	return BackendName
}

func (s *SessionStore) Dir() string {
	return s.dir
}

func (s *SessionStore) AppendMessage(ctx context.Context, message *entity.ChatMessage, history []entity.ConversationTurn) error {
	return s.update(ctx, message.SessionId, message.Timestamp, func(doc *sessionDocument) {
		doc.Messages = append(doc.Messages, messageDocument{
			Timestamp:   Timestamp{message.Timestamp},
			UserMessage: message.UserMessage,
			BotResponse: message.BotResponse,
			Id:          message.MessageId,
		})
		if history != nil {
			doc.ConversationHistory = history
		}
	})
}

func (s *SessionStore) AppendFeedback(ctx context.Context, feedback *entity.UserFeedback) error {
	return s.update(ctx, feedback.SessionId, feedback.Timestamp, func(doc *sessionDocument) {
		doc.Feedbacks = append(doc.Feedbacks, feedbackDocument{
			Timestamp:           Timestamp{feedback.Timestamp},
			Rating:              feedback.Rating,
			Feedback:            feedback.FeedbackText,
			Id:                  feedback.FeedbackId,
			ConversationHistory: feedback.ConversationHistory,
		})
	})
}

func (s *SessionStore) ReplaceHistory(ctx context.Context, sessionId string, history []entity.ConversationTurn, at time.Time) error {
	return s.update(ctx, sessionId, at, func(doc *sessionDocument) {
		if history == nil {
			history = []entity.ConversationTurn{}
		}
		doc.ConversationHistory = history
	})
}

func (s *SessionStore) GetSession(ctx context.Context, sessionId string) (*entity.ChatSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := readDocument(s.path(sessionId))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return doc.toEntity(), nil
}

func (s *SessionStore) ListSessions(ctx context.Context) ([]*entity.SessionSummary, error) {
	docs, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.SessionSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, doc.summary())
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastUpdated.After(summaries[j].LastUpdated)
	})
	return summaries, nil
}

func (s *SessionStore) ListMessages(ctx context.Context) ([]*entity.ChatMessage, error) {
	docs, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	var messages []*entity.ChatMessage
	for _, doc := range docs {
		for _, m := range doc.Messages {
			messages = append(messages, m.toEntity(doc.SessionId))
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.After(messages[j].Timestamp)
	})
	return messages, nil
}

func (s *SessionStore) ListFeedback(ctx context.Context) ([]*entity.UserFeedback, error) {
	docs, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	var feedback []*entity.UserFeedback
	for _, doc := range docs {
		for _, f := range doc.Feedbacks {
			feedback = append(feedback, f.toEntity(doc.SessionId))
		}
	}
	sort.SliceStable(feedback, func(i, j int) bool {
		return feedback[i].Timestamp.After(feedback[j].Timestamp)
	})
	return feedback, nil
}

func (s *SessionStore) update(ctx context.Context, sessionId string, at time.Time, mutate func(doc *sessionDocument)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mu := s.lock(sessionId)
	mu.Lock()
	defer mu.Unlock()

	path := s.path(sessionId)
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = newSessionDocument(sessionId, at)
	}

	mutate(doc)
	doc.touch(at)

	return writeJSONAtomic(path, doc)
}

func (s *SessionStore) lock(sessionId string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// path escapes the id so a client supplied value can never leave the directory.
func (s *SessionStore) path(sessionId string) string {
	return filepath.Join(s.dir, filePrefix+url.PathEscape(sessionId)+fileSuffix)
}

func (s *SessionStore) readAll(ctx context.Context) ([]*sessionDocument, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}

	var docs []*sessionDocument
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		doc, err := readDocument(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func readDocument(path string) (*sessionDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	var doc sessionDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if doc.Messages == nil {
		doc.Messages = []messageDocument{}
	}
	if doc.Feedbacks == nil {
		doc.Feedbacks = []feedbackDocument{}
	}
	return &doc, nil
}

// writeJSONAtomic replaces path via a temp file in the same directory, so readers
// see either the old or the new document.
func writeJSONAtomic(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
