package service

import (
	"context"
	"testing"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSession(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	_, err := store.AppendMessage(ctx, "s-1", "selam", "merhaba", []entity.ConversationTurn{{Role: "user", Content: "selam"}})
	require.NoError(t, err)
	_, err = store.AppendFeedback(ctx, "s-1", entity.RatingLike, "", nil)
	require.NoError(t, err)

	svc := NewSessionService(store)

	res, err := svc.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", res.SessionId)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "merhaba", res.Messages[0].BotResponse)
	require.Len(t, res.Feedbacks, 1)
	assert.Equal(t, entity.RatingLike, res.Feedbacks[0].Rating)
	assert.Equal(t, entity.SourceJSONFile, res.Source)

	sessions, err := svc.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].MessageCount)
	assert.Equal(t, 1, sessions[0].FeedbackCount)
}

func TestGetSession_NotFound(t *testing.T) {
	store, _ := newFileStore(t)
	svc := NewSessionService(store)

	_, err := svc.GetSession(context.Background(), "missing")

	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestGetSession_EveryBackendDown(t *testing.T) {
	svc := NewSessionService(newDownStore())

	_, err := svc.GetSession(context.Background(), "s-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, serverutils.ErrNotFound)
}
