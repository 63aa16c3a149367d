package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	b, err := Marshal(New(FeedbackRecorded, map[string]interface{}{"rating": "dislike"}, at))
	require.NoError(t, err)

	got, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, FeedbackRecorded, got.EventType())
	assert.Equal(t, "dislike", got.Payload()["rating"])
	assert.True(t, got.Timestamp().Equal(at))
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := Unmarshal([]byte("{"))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`{"payload":{}}`))
	assert.ErrorIs(t, err, ErrMissingType)

	got, err := Unmarshal([]byte(`{"type":"X"}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Payload())
}

func TestUnmarshalWithType(t *testing.T) {
	got, err := UnmarshalWithType([]byte(`{"payload":{"session_id":"s1"}}`), ChatExchangeRecorded)
	require.NoError(t, err)
	assert.Equal(t, ChatExchangeRecorded, got.Type)
	assert.Equal(t, "s1", got.Data["session_id"])
}
