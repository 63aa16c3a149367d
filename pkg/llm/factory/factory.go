package factory

import (
	"fmt"
	"strings"

	"support-chatbot-be/pkg/llm"
	"support-chatbot-be/pkg/llm/ollama"
	"support-chatbot-be/pkg/llm/openai"
)

const (
	ProviderAzure       = "azure"
	ProviderOpenAI      = "openai"
	ProviderHuggingFace = "huggingface"
	ProviderOllama      = "ollama"

	defaultOllamaURL      = "http://localhost:11434"
	defaultHuggingFaceURL = "https://router.huggingface.co/v1"
)

// Settings selects and configures a completion backend.
type Settings struct {
	Provider        string
	Model           string
	AzureEndpoint   string
	AzureAPIVersion string
	AzureAPIKey     string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OllamaBaseURL   string
}

func NewLLMProvider(s Settings) (llm.LLMProvider, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case ProviderAzure, "":
		if s.AzureEndpoint == "" {
			return nil, fmt.Errorf("azure provider requires an endpoint")
		}
		return openai.NewAzureProvider(s.AzureEndpoint, s.AzureAPIVersion, s.AzureAPIKey, s.Model), nil
	case ProviderOpenAI:
		return openai.NewOpenAIProvider(s.OpenAIAPIKey, s.OpenAIBaseURL, s.Model), nil
	case ProviderHuggingFace:
		// The HF router speaks the OpenAI wire format.
		baseURL := s.OpenAIBaseURL
		if baseURL == "" {
			baseURL = defaultHuggingFaceURL
		}
		return openai.NewOpenAIProvider(s.OpenAIAPIKey, baseURL, s.Model), nil
	case ProviderOllama:
		baseURL := s.OllamaBaseURL
		if baseURL == "" {
			baseURL = defaultOllamaURL
		}
		return ollama.NewOllamaProvider(baseURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
