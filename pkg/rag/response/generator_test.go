package response

import (
	"context"
	"errors"
	"testing"

	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	chatFunc func(ctx context.Context, history []llm.Message, opts llm.Options) (string, error)
	gotOpts  llm.Options
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.gotOpts = llm.Apply(llm.Options{}, options...)
	return s.chatFunc(ctx, history, s.gotOpts)
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func TestGenerator_Complete(t *testing.T) {
	stub := &stubProvider{chatFunc: func(_ context.Context, history []llm.Message, _ llm.Options) (string, error) {
		require.Len(t, history, 2)
		return "  Merhaba! 😊 \n", nil
	}}
	g := NewGenerator(stub, DefaultParams(), "özür", logger.NewNopLogger())

	out := g.Complete(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "sys"},
		{Role: llm.RoleUser, Content: "selam"},
	})

	assert.Equal(t, "Merhaba! 😊", out)
	assert.Equal(t, llm.Options{Model: "gpt-4", MaxTokens: 800, Temperature: 0.7}, stub.gotOpts)
}

func TestGenerator_ApologyOnFailure(t *testing.T) {
	stub := &stubProvider{chatFunc: func(context.Context, []llm.Message, llm.Options) (string, error) {
		return "", errors.New("401 unauthorized")
	}}
	g := NewGenerator(stub, Params{}, "Üzgünüm", logger.NewNopLogger())

	assert.Equal(t, "Üzgünüm", g.Complete(context.Background(), nil))
	assert.Equal(t, "Üzgünüm", g.Apology())
	assert.Equal(t, DefaultModel, stub.gotOpts.Model)
	assert.Equal(t, DefaultMaxTokens, stub.gotOpts.MaxTokens)
}
