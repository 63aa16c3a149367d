package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"support-chatbot-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(filepath.Join(t.TempDir(), "sessions"))
	history := []entity.ConversationTurn{{Role: "user", Content: "vineda var mı"}}

	require.NoError(t, store.AppendMessage(ctx, &entity.ChatMessage{
		MessageId: "m1", SessionId: "s1", UserMessage: "vineda var mı", BotResponse: "Evet!", Timestamp: t0,
	}, history))
	require.NoError(t, store.AppendFeedback(ctx, &entity.UserFeedback{
		FeedbackId: "f1", SessionId: "s1", Rating: entity.RatingLike, FeedbackText: "süper", Timestamp: t0.Add(time.Second),
	}))
	require.NoError(t, store.AppendMessage(ctx, &entity.ChatMessage{
		MessageId: "m2", SessionId: "s1", UserMessage: "renkler?", BotResponse: "Pembe", Timestamp: t0.Add(2 * time.Second),
	}, nil))

	s, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, entity.SourceJSONFile, s.Source)
	assert.True(t, s.CreatedAt.Equal(t0))
	assert.True(t, s.LastUpdated.Equal(t0.Add(2*time.Second)))
	require.Len(t, s.Messages, 2)
	assert.Equal(t, "m1", s.Messages[0].MessageId)
	assert.Equal(t, "Evet!", s.Messages[0].BotResponse)
	assert.Equal(t, "m2", s.Messages[1].MessageId)
	require.Len(t, s.Feedbacks, 1)
	assert.Equal(t, "süper", s.Feedbacks[0].FeedbackText)
	assert.Equal(t, history, s.ConversationHistory)
}

func TestSessionStore_MissingSession(t *testing.T) {
	store := NewSessionStore(t.TempDir())

	s, err := store.GetSession(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, s)

	summaries, err := NewSessionStore(filepath.Join(t.TempDir(), "absent")).ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSessionStore_EscapesSessionId(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(filepath.Join(dir, "sessions"))

	require.NoError(t, store.AppendMessage(context.Background(), &entity.ChatMessage{
		MessageId: "m1", SessionId: "../../etc/passwd", Timestamp: t0,
	}, nil))

	entries, err := os.ReadDir(filepath.Join(dir, "sessions"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "session_..%2F..%2Fetc%2Fpasswd.json", entries[0].Name())

	s, err := store.GetSession(context.Background(), "../../etc/passwd")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "../../etc/passwd", s.SessionId)
}

func TestSessionStore_ReadsLegacyDocument(t *testing.T) {
	dir := t.TempDir()
	legacy := `{
  "session_id": "old",
  "created_at": "2024-05-01T09:30:00.123456",
  "last_updated": "2024-05-01T09:31:00.654321",
  "messages": [{"timestamp": "2024-05-01T09:31:00.654321", "user_message": "iade", "bot_response": "14 gün", "id": "x1"}],
  "feedbacks": [{"timestamp": "2024-05-01T09:32:00", "rating": "dislike", "feedback": "eksik", "id": "y1"}],
  "conversation_history": []
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_old.json"), []byte(legacy), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o644))

	store := NewSessionStore(dir)
	s, err := store.GetSession(context.Background(), "old")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 2024, s.CreatedAt.Year())
	assert.Equal(t, "14 gün", s.Messages[0].BotResponse)
	assert.Equal(t, entity.RatingDislike, s.Feedbacks[0].Rating)
	assert.NotNil(t, s.Feedbacks[0].ConversationHistory)

	summaries, err := store.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].MessageCount)
	assert.Equal(t, 1, summaries[0].FeedbackCount)
}

func TestSessionStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_bad.json"), []byte("{"), 0o644))
	store := NewSessionStore(dir)

	_, err := store.GetSession(context.Background(), "bad")
	assert.Error(t, err)

	err = store.AppendMessage(context.Background(), &entity.ChatMessage{MessageId: "m", SessionId: "bad", Timestamp: t0}, nil)
	assert.Error(t, err)
}

func TestSessionStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.AppendMessage(ctx, &entity.ChatMessage{
				MessageId: fmt.Sprintf("m%d", i), SessionId: "busy", Timestamp: t0.Add(time.Duration(i) * time.Second),
			}, nil))
		}(i)
	}
	wg.Wait()

	s, err := store.GetSession(ctx, "busy")
	require.NoError(t, err)
	assert.Len(t, s.Messages, 20)
	assert.True(t, s.LastUpdated.Equal(t0.Add(19*time.Second)))
}

func TestSessionStore_Listing(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(t.TempDir())

	require.NoError(t, store.AppendMessage(ctx, &entity.ChatMessage{MessageId: "a", SessionId: "s1", Timestamp: t0}, nil))
	require.NoError(t, store.AppendMessage(ctx, &entity.ChatMessage{MessageId: "b", SessionId: "s2", Timestamp: t0.Add(time.Hour)}, nil))
	require.NoError(t, store.AppendFeedback(ctx, &entity.UserFeedback{FeedbackId: "f", SessionId: "s1", Rating: "like", Timestamp: t0.Add(time.Minute)}))

	summaries, err := store.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "s2", summaries[0].SessionId)

	messages, err := store.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "b", messages[0].MessageId)
	assert.Equal(t, "s2", messages[0].SessionId)

	feedback, err := store.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, feedback, 1)
	assert.Equal(t, "s1", feedback[0].SessionId)
}

func TestSessionStore_ReplaceHistory(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(t.TempDir())
	turns := []entity.ConversationTurn{{Role: "user", Content: "a"}}

	require.NoError(t, store.ReplaceHistory(ctx, "s1", turns, t0))

	s, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, turns, s.ConversationHistory)
	assert.Empty(t, s.Messages)
}
