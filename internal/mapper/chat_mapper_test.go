package mapper

import (
	"testing"
	"time"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestChatMapper_Session(t *testing.T) {
	m := NewChatMapper()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	row := m.ChatSessionToModel(&entity.ChatSession{
		SessionId:   "s1",
		CreatedAt:   now,
		LastUpdated: now,
	})
	assert.JSONEq(t, `[]`, string(row.ConversationHistory))

	row.ConversationHistory = datatypes.JSON(`[{"role":"user","content":"selam"}]`)
	got := m.ChatSessionToEntity(row)
	assert.Equal(t, []entity.ConversationTurn{{Role: "user", Content: "selam"}}, got.ConversationHistory)
	assert.Equal(t, entity.SourceDatabase, got.Source)

	assert.Nil(t, m.ChatSessionToEntity(nil))
	assert.Nil(t, m.ChatSessionToModel(nil))
}

func TestChatMapper_CorruptHistory(t *testing.T) {
	fb := NewChatMapper().UserFeedbackToEntity(&model.UserFeedback{
		FeedbackId:          "f1",
		Rating:              entity.RatingDislike,
		ConversationHistory: datatypes.JSON(`{not json`),
	})

	assert.NotNil(t, fb.ConversationHistory)
	assert.Empty(t, fb.ConversationHistory)
	assert.Equal(t, "f1", fb.FeedbackId)
}
