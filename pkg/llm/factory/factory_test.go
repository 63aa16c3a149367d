package factory

import (
	"testing"

	"support-chatbot-be/pkg/llm/ollama"
	"support-chatbot-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	t.Run("azure", func(t *testing.T) {
		p, err := NewLLMProvider(Settings{
			Provider:        "Azure",
			Model:           "gpt-4",
			AzureEndpoint:   "https://example.openai.azure.com",
			AzureAPIVersion: "2025-01-01-preview",
			AzureAPIKey:     "k",
		})
		require.NoError(t, err)
		assert.IsType(t, &openai.Provider{}, p)
	})

	t.Run("azure without endpoint", func(t *testing.T) {
		_, err := NewLLMProvider(Settings{Provider: "azure", Model: "gpt-4"})
		assert.Error(t, err)
	})

	t.Run("openai", func(t *testing.T) {
		p, err := NewLLMProvider(Settings{Provider: "openai", Model: "gpt-4o-mini", OpenAIAPIKey: "k"})
		require.NoError(t, err)
		assert.IsType(t, &openai.Provider{}, p)
	})

	t.Run("huggingface", func(t *testing.T) {
		p, err := NewLLMProvider(Settings{Provider: "huggingface", Model: "meta-llama/Llama-3.1-8B-Instruct"})
		require.NoError(t, err)
		assert.IsType(t, &openai.Provider{}, p)
	})

	t.Run("ollama default url", func(t *testing.T) {
		p, err := NewLLMProvider(Settings{Provider: "ollama", Model: "llama3"})
		require.NoError(t, err)
		op, ok := p.(*ollama.OllamaProvider)
		require.True(t, ok)
		assert.Equal(t, defaultOllamaURL, op.BaseURL)
		assert.Equal(t, "llama3", op.ModelName)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewLLMProvider(Settings{Provider: "bard"})
		assert.EqualError(t, err, "unsupported LLM provider: bard")
	})
}
