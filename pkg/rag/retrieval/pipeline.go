// Package retrieval decides, per message, which searches to run against the
// catalog and policy indexes and turns their hits into a small ranked set of
// grounding documents.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"time"

	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/pkg/rag/lexicon"
	"support-chatbot-be/pkg/search"
)

type Config struct {
	MaxResults      int
	ShortCircuitCap int
	Timeout         time.Duration
	Scores          Scores
}

type Option func(*Config)

func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

func WithScores(s Scores) Option {
	return func(c *Config) {
		c.Scores = s
	}
}

func WithMaxResults(n int) Option {
	return func(c *Config) {
		c.MaxResults = n
	}
}

// Retriever is what the chat flow depends on.
type Retriever interface {
	Retrieve(ctx context.Context, raw string) []Document
}

type Pipeline struct {
	lex        *lexicon.Lexicon
	strategies []Strategy
	cfg        Config
	logger     logger.ILogger
}

var _ Retriever = &Pipeline{}

// New builds the standard cascade: policy, exact id, name, partial, contains,
// full text, color.
func New(backend search.Backend, lex *lexicon.Lexicon, log logger.ILogger, opts ...Option) *Pipeline {
	cfg := Config{
		MaxResults:      5,
		ShortCircuitCap: 3,
		Timeout:         10 * time.Second,
		Scores:          DefaultScores(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := NewSearcher(backend, cfg.Timeout, log)
	strategies := []Strategy{
		NewPolicyStrategy(s, lex.Policy(), cfg.Scores.Policy),
		NewExactIDStrategy(s, cfg.Scores.Exact),
		NewNameStrategy(s, cfg.Scores.Name),
		NewPartialStrategy(s, cfg.Scores.Partial),
		NewContainsStrategy(s, cfg.Scores.Contains),
		NewFullTextStrategy(s, cfg.Scores.FullText),
		NewColorStrategy(s, cfg.Scores.Color),
	}

	return NewWithStrategies(lex, log, cfg, strategies...)
}

// NewWithStrategies runs an arbitrary ordered cascade.
func NewWithStrategies(lex *lexicon.Lexicon, log logger.ILogger, cfg Config, strategies ...Strategy) *Pipeline {
	return &Pipeline{
		lex:        lex,
		strategies: strategies,
		cfg:        cfg,
		logger:     log,
	}
}

// Retrieve never fails: strategies that error contribute nothing, and a panic
// anywhere in the cascade yields an empty result.
func (p *Pipeline) Retrieve(ctx context.Context, raw string) (docs []Document) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("RETRIEVAL", "Retrieval pipeline aborted", map[string]interface{}{
				"error": fmt.Sprint(r),
			})
			docs = nil
		}
	}()

	q := Classify(p.lex, raw)
	acc := NewAccumulator()

	for _, s := range p.strategies {
		out := s.Attempt(ctx, q, acc)
		added := acc.Add(out.Docs...)

		p.logger.Debug("RETRIEVAL", "Strategy finished", map[string]interface{}{
			"strategy": s.Name(),
			"added":    added,
			"total":    acc.Len(),
		})

		if out.Signal == Stop {
			docs = truncate(acc.Documents(), p.cfg.ShortCircuitCap)
			p.logCompleted(q, s.Name(), acc.Len(), len(docs))
			return docs
		}
	}

	docs = acc.Documents()
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Score > docs[j].Score
	})

	found := len(docs)
	docs = truncate(docs, p.cfg.MaxResults)
	p.logCompleted(q, "", found, len(docs))
	return docs
}

// logCompleted records the outcome of one retrieval. stoppedBy is empty when the
// whole cascade ran.
func (p *Pipeline) logCompleted(q *Query, stoppedBy string, found, returned int) {
	details := map[string]interface{}{
		"class":    string(q.Class),
		"found":    found,
		"returned": returned,
	}
	if stoppedBy != "" {
		details["stopped_by"] = stoppedBy
	}
	p.logger.Info("RETRIEVAL", "Retrieval completed", details)
}

func truncate(docs []Document, n int) []Document {
	if n >= 0 && len(docs) > n {
		return docs[:n]
	}
	return docs
}
