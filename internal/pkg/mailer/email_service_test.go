package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFeedbackAlert(t *testing.T) {
	body := RenderFeedbackAlert(FeedbackAlert{
		SessionId:    "s1",
		FeedbackId:   "f1",
		Rating:       "dislike",
		FeedbackText: "<script>alert(1)</script>",
		Transcript: []TranscriptLine{
			{Role: "user", Content: "fiyat?"},
			{Role: "assistant", Content: "Mağazamızı arayın"},
		},
	})

	assert.Contains(t, body, "Chatbot feedback: dislike")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "<li><b>assistant:</b> Mağazamızı arayın</li>")
}

func TestRenderFeedbackAlert_NoTranscript(t *testing.T) {
	body := RenderFeedbackAlert(FeedbackAlert{SessionId: "s1", Rating: "dislike"})

	assert.NotContains(t, body, "<ol>")
	assert.NotContains(t, body, "<blockquote>")
}
