// Package openai serves chat completions through the official OpenAI SDK, against
// either api.openai.com or an Azure OpenAI deployment.
package openai

import (
	"context"
	"errors"
	"fmt"

	"support-chatbot-be/pkg/llm"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

// ErrNoChoices is returned when the API answers without any completion choice.
var ErrNoChoices = errors.New("openai: no choices in response")

type Provider struct {
	sdk       openaisdk.Client
	modelName string
}

// Ensure Provider implements LLMProvider
var _ llm.LLMProvider = &Provider{}

// NewProvider builds a provider from raw SDK request options.
func NewProvider(modelName string, opts ...option.RequestOption) *Provider {
	return &Provider{
		sdk:       openaisdk.NewClient(opts...),
		modelName: modelName,
	}
}

// NewAzureProvider targets an Azure OpenAI resource. On Azure the model name is the
// deployment name.
func NewAzureProvider(endpoint, apiVersion, apiKey, deployment string, opts ...option.RequestOption) *Provider {
	base := []option.RequestOption{
		azure.WithEndpoint(endpoint, apiVersion),
		azure.WithAPIKey(apiKey),
	}
	return NewProvider(deployment, append(base, opts...)...)
}

// NewOpenAIProvider targets api.openai.com, or baseURL when set.
func NewOpenAIProvider(apiKey, baseURL, modelName string, opts ...option.RequestOption) *Provider {
	base := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		base = append(base, option.WithBaseURL(baseURL))
	}
	return NewProvider(modelName, append(base, opts...)...)
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7, Model: p.modelName}, opts...)

	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			messages = append(messages, openaisdk.SystemMessage(msg.Content))
		case llm.RoleAssistant, "model":
			messages = append(messages, openaisdk.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openaisdk.UserMessage(msg.Content))
		}
	}

	params := openaisdk.ChatCompletionNewParams{
		Messages:    messages,
		Model:       openaisdk.ChatModel(options.Model),
		Temperature: param.NewOpt(options.Temperature),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = param.NewOpt(int64(options.MaxTokens))
	}

	resp, err := p.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
