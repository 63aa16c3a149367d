package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"support-chatbot-be/internal/entity"
)

const ChatHistoryFile = "chat_history.json"

type ledgerRecord struct {
	Timestamp           string                    `json:"timestamp,omitempty"`
	SessionId           string                    `json:"session_id,omitempty"`
	Messages            []map[string]interface{}  `json:"messages"`
	ConversationHistory []entity.ConversationTurn `json:"conversation_history"`
	CreatedAt           Timestamp                 `json:"created_at"`
	Id                  string                    `json:"id"`
}

// Ledger is the flat JSON array of chat history snapshots under the data directory.
type Ledger struct {
	path string
	mu   sync.Mutex
}

func NewLedger(dataDir string) *Ledger {
	return &Ledger{path: filepath.Join(dataDir, ChatHistoryFile)}
}

func (l *Ledger) Path() string {
	return l.path
}

// Append expects snapshot.Id and snapshot.CreatedAt to be set by the caller.
func (l *Ledger) Append(ctx context.Context, snapshot *entity.ChatHistorySnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.read()
	if err != nil {
		return err
	}

	messages := snapshot.Messages
	if messages == nil {
		messages = []map[string]interface{}{}
	}
	history := snapshot.ConversationHistory
	if history == nil {
		history = []entity.ConversationTurn{}
	}

	records = append(records, ledgerRecord{
		Timestamp:           snapshot.ClientTimestamp,
		SessionId:           snapshot.SessionId,
		Messages:            messages,
		ConversationHistory: history,
		CreatedAt:           Timestamp{snapshot.CreatedAt},
		Id:                  snapshot.Id,
	})

	return writeJSONAtomic(l.path, records)
}

// List returns snapshots in insertion order.
func (l *Ledger) List(ctx context.Context) ([]*entity.ChatHistorySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	records, err := l.read()
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	snapshots := make([]*entity.ChatHistorySnapshot, 0, len(records))
	for _, r := range records {
		snapshots = append(snapshots, &entity.ChatHistorySnapshot{
			Id:                  r.Id,
			SessionId:           r.SessionId,
			ClientTimestamp:     r.Timestamp,
			Messages:            r.Messages,
			ConversationHistory: r.ConversationHistory,
			CreatedAt:           r.CreatedAt.Time,
			Source:              entity.SourceJSONFile,
		})
	}
	return snapshots, nil
}

func (l *Ledger) read() ([]ledgerRecord, error) {
	b, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var records []ledgerRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	return records, nil
}
