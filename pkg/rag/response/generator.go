// Package response wraps the completion backend with the fixed generation
// parameters and the apology fallback.
package response

import (
	"context"
	"strings"

	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/pkg/llm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultModel       = "gpt-4"
	DefaultMaxTokens   = 800
	DefaultTemperature = 0.7
)

type Params struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func DefaultParams() Params {
	return Params{Model: DefaultModel, MaxTokens: DefaultMaxTokens, Temperature: DefaultTemperature}
}

// Generator never fails: any backend error is logged and replaced by the apology.
type Generator struct {
	provider llm.LLMProvider
	params   Params
	apology  string
	log      logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, params Params, apology string, log logger.ILogger) *Generator {
	if params.Model == "" {
		params.Model = DefaultModel
	}
	if params.MaxTokens <= 0 {
		params.MaxTokens = DefaultMaxTokens
	}
	return &Generator{
		provider: provider,
		params:   params,
		apology:  apology,
		log:      log,
	}
}

func (g *Generator) Complete(ctx context.Context, messages []llm.Message) string {
	ctx, span := otel.Tracer("support-chatbot-be/completion").Start(ctx, "completion.chat")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", g.params.Model),
		attribute.Int("llm.messages", len(messages)),
	)

	out, err := g.provider.Chat(ctx, messages,
		llm.WithModel(g.params.Model),
		llm.WithMaxTokens(g.params.MaxTokens),
		llm.WithTemperature(g.params.Temperature),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.log.Error("COMPLETION", "Completion backend failed", map[string]interface{}{
			"model": g.params.Model,
			"error": err.Error(),
		})
		return g.apology
	}

	return strings.TrimSpace(out)
}

func (g *Generator) Apology() string {
	return g.apology
}
