package service

import (
	"context"
	"testing"

	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/repository/replicated"
	"support-chatbot-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFeedback(t *testing.T) {
	store, _ := newFileStore(t)
	pub := &recordingPublisher{}
	svc := NewFeedbackService(store, pub, logger.NewNopLogger())

	res, err := svc.SaveFeedback(context.Background(), &dto.FeedbackRequest{
		Rating:              entity.RatingDislike,
		Feedback:            "fiyat yok",
		ConversationHistory: []dto.ConversationTurnDTO{{Role: "user", Content: "fiyat?"}},
		SessionId:           "s-9",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.FeedbackId)
	assert.Equal(t, "s-9", res.SessionId)

	session, err := store.GetSession(context.Background(), "s-9")
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Len(t, session.Feedbacks, 1)
	assert.Equal(t, res.FeedbackId, session.Feedbacks[0].FeedbackId)

	published := pub.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.FeedbackRecorded, published[0].EventType())
	assert.Equal(t, "dislike", published[0].Payload()["rating"])
	assert.Equal(t, []map[string]interface{}{{"role": "user", "content": "fiyat?"}},
		published[0].Payload()["conversation_history"])

	list, err := svc.GetAllFeedback(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "fiyat yok", list[0].Feedback)
	assert.Equal(t, entity.SourceJSONFile, list[0].Source)
	assert.Equal(t, []dto.ConversationTurnDTO{{Role: "user", Content: "fiyat?"}}, list[0].ConversationHistory)
}

func TestSaveFeedback_AllBackendsFailed(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewFeedbackService(newDownStore(), pub, logger.NewNopLogger())

	_, err := svc.SaveFeedback(context.Background(), &dto.FeedbackRequest{Rating: "like", SessionId: "s-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, replicated.ErrAllBackendsFailed)
	assert.Empty(t, pub.published())
}
