package retrieval

import (
	"context"
	"time"

	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/pkg/search"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Signal tells the pipeline whether to keep cascading.
type Signal int

const (
	Continue Signal = iota
	Stop
)

// Outcome is one strategy's contribution. Docs may be empty.
type Outcome struct {
	Docs   []Document
	Signal Signal
}

// Strategy is one step of the cascade. Attempt must treat acc as read-only; the
// pipeline merges Docs after it returns.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, q *Query, acc *Accumulator) Outcome
}

// Searcher runs a single guarded backend call: bounded by a timeout, traced, and
// logged once on failure.
type Searcher struct {
	backend search.Backend
	timeout time.Duration
	logger  logger.ILogger
}

func NewSearcher(backend search.Backend, timeout time.Duration, log logger.ILogger) *Searcher {
	return &Searcher{backend: backend, timeout: timeout, logger: log}
}

var tracer = otel.Tracer("support-chatbot-be/retrieval")

func (s *Searcher) Search(ctx context.Context, strategy string, req search.Request) ([]search.Hit, error) {
	ctx, span := tracer.Start(ctx, "retrieval."+strategy, trace.WithAttributes(
		attribute.String("search.collection", string(req.Collection)),
		attribute.Int("search.top", req.Top),
	))
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	hits, err := s.backend.Search(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("RETRIEVAL", "Search strategy failed", map[string]interface{}{
			"strategy":   strategy,
			"collection": string(req.Collection),
			"error":      err.Error(),
		})
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.hits", len(hits)))
	return hits, nil
}
