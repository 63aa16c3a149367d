package retrieval

import (
	"context"
	"fmt"

	"support-chatbot-be/pkg/rag/lexicon"
	"support-chatbot-be/pkg/search"
)

// Scores holds the relevance rule of every strategy.
type Scores struct {
	Policy   ScoreRule
	Exact    ScoreRule
	Name     ScoreRule
	Partial  ScoreRule
	Contains ScoreRule
	FullText ScoreRule
	Color    ScoreRule
}

// DefaultScores rank exact lookups above wildcard hits, and wildcard hits above
// substring hits. Full text and color hits keep the backend score.
func DefaultScores() Scores {
	return Scores{
		Policy:   ScoreRule{Value: 1.0},
		Exact:    ScoreRule{Value: 1.0},
		Name:     ScoreRule{Value: 1.0},
		Partial:  ScoreRule{Value: 0.8, Fixed: true},
		Contains: ScoreRule{Value: 0.6, Fixed: true},
		FullText: ScoreRule{Value: 0},
		Color:    ScoreRule{Value: 0},
	}
}

const minTokenLength = 3

func products(hits []search.Hit, rule ScoreRule) []Document {
	docs := make([]Document, 0, len(hits))
	for _, h := range hits {
		docs = append(docs, productFromHit(h, rule))
	}
	return docs
}

// PolicyStrategy answers FAQ style questions from the policy collection and ends
// the cascade when it finds anything.
type PolicyStrategy struct {
	searcher *Searcher
	policy   lexicon.PolicyDocument
	rule     ScoreRule
}

func NewPolicyStrategy(s *Searcher, policy lexicon.PolicyDocument, rule ScoreRule) *PolicyStrategy {
	return &PolicyStrategy{searcher: s, policy: policy, rule: rule}
}

func (p *PolicyStrategy) Name() string { return "policy" }

func (p *PolicyStrategy) Attempt(ctx context.Context, q *Query, _ *Accumulator) Outcome {
	if !q.Policy {
		return Outcome{Signal: Continue}
	}

	hits, err := p.searcher.Search(ctx, p.Name(), search.Request{
		Collection: search.Policies,
		Text:       q.Raw,
		Mode:       search.ModeAny,
		Top:        5,
	})
	if err != nil || len(hits) == 0 {
		return Outcome{Signal: Continue}
	}

	docs := make([]Document, 0, len(hits))
	for _, h := range hits {
		docs = append(docs, policyFromHit(h, p.policy, p.rule))
	}
	return Outcome{Docs: docs, Signal: Stop}
}

// ExactIDStrategy looks up the canonical id of a known product alias.
type ExactIDStrategy struct {
	searcher *Searcher
	rule     ScoreRule
}

func NewExactIDStrategy(s *Searcher, rule ScoreRule) *ExactIDStrategy {
	return &ExactIDStrategy{searcher: s, rule: rule}
}

func (e *ExactIDStrategy) Name() string { return "exact_id" }

func (e *ExactIDStrategy) Attempt(ctx context.Context, q *Query, _ *Accumulator) Outcome {
	if q.AliasID == "" {
		return Outcome{Signal: Continue}
	}
	return Outcome{Docs: lookupID(ctx, e.searcher, e.Name(), q.AliasID, e.rule), Signal: Continue}
}

// NameStrategy looks up the first product name mentioned in the query.
type NameStrategy struct {
	searcher *Searcher
	rule     ScoreRule
}

func NewNameStrategy(s *Searcher, rule ScoreRule) *NameStrategy {
	return &NameStrategy{searcher: s, rule: rule}
}

func (n *NameStrategy) Name() string { return "name" }

func (n *NameStrategy) Attempt(ctx context.Context, q *Query, _ *Accumulator) Outcome {
	if q.Name == nil {
		return Outcome{Signal: Continue}
	}
	return Outcome{Docs: lookupID(ctx, n.searcher, n.Name(), q.Name.ID, n.rule), Signal: Continue}
}

func lookupID(ctx context.Context, s *Searcher, strategy, id string, rule ScoreRule) []Document {
	hits, err := s.Search(ctx, strategy, search.Request{
		Collection: search.Products,
		Filter:     search.EqualsFilter("id", id),
		Top:        5,
	})
	if err != nil {
		return nil
	}
	return products(hits, rule)
}

// PartialStrategy prefix matches each query token against id and name, stopping
// at the first token with hits. It only runs while nothing has been found.
type PartialStrategy struct {
	searcher *Searcher
	rule     ScoreRule
}

func NewPartialStrategy(s *Searcher, rule ScoreRule) *PartialStrategy {
	return &PartialStrategy{searcher: s, rule: rule}
}

func (p *PartialStrategy) Name() string { return "partial" }

func (p *PartialStrategy) Attempt(ctx context.Context, q *Query, acc *Accumulator) Outcome {
	if acc.Len() > 0 {
		return Outcome{Signal: Continue}
	}

	for _, token := range q.SearchTokens(minTokenLength) {
		term := search.EscapeLucene(token)
		hits, err := p.searcher.Search(ctx, p.Name(), search.Request{
			Collection: search.Products,
			Text:       fmt.Sprintf("id:%s* OR name:%s*", term, term),
			QueryType:  search.QueryFull,
			Mode:       search.ModeAny,
			Top:        10,
		})
		if err == nil && len(hits) > 0 {
			return Outcome{Docs: products(hits, p.rule), Signal: Continue}
		}
	}
	return Outcome{Signal: Continue}
}

// ContainsStrategy is the looser fallback: substring match on id and name.
type ContainsStrategy struct {
	searcher *Searcher
	rule     ScoreRule
}

func NewContainsStrategy(s *Searcher, rule ScoreRule) *ContainsStrategy {
	return &ContainsStrategy{searcher: s, rule: rule}
}

func (c *ContainsStrategy) Name() string { return "contains" }

func (c *ContainsStrategy) Attempt(ctx context.Context, q *Query, acc *Accumulator) Outcome {
	if acc.Len() > 0 {
		return Outcome{Signal: Continue}
	}

	for _, token := range q.SearchTokens(minTokenLength) {
		hits, err := c.searcher.Search(ctx, c.Name(), search.Request{
			Collection: search.Products,
			Text:       search.MatchAll,
			Filter: fmt.Sprintf("search.ismatch(%s, 'id,name', 'full', 'any')",
				search.ODataLiteral(search.SubstringPattern(token))),
			Top: 5,
		})
		if err == nil && len(hits) > 0 {
			return Outcome{Docs: products(hits, c.rule), Signal: Continue}
		}
	}
	return Outcome{Signal: Continue}
}

// FullTextStrategy always runs; an empty answer falls back to match-all.
type FullTextStrategy struct {
	searcher *Searcher
	rule     ScoreRule
}

func NewFullTextStrategy(s *Searcher, rule ScoreRule) *FullTextStrategy {
	return &FullTextStrategy{searcher: s, rule: rule}
}

func (f *FullTextStrategy) Name() string { return "fulltext" }

func (f *FullTextStrategy) Attempt(ctx context.Context, q *Query, _ *Accumulator) Outcome {
	hits, err := f.searcher.Search(ctx, f.Name(), search.Request{
		Collection: search.Products,
		Text:       q.Raw,
		Mode:       search.ModeAny,
		Top:        10,
	})
	if err != nil || len(hits) == 0 {
		hits, err = f.searcher.Search(ctx, f.Name()+"_match_all", search.Request{
			Collection: search.Products,
			Text:       search.MatchAll,
			Top:        10,
		})
		if err != nil {
			return Outcome{Signal: Continue}
		}
	}
	return Outcome{Docs: products(hits, f.rule), Signal: Continue}
}

// ColorStrategy runs one filtered search per color keyword in the query.
type ColorStrategy struct {
	searcher *Searcher
	rule     ScoreRule
}

func NewColorStrategy(s *Searcher, rule ScoreRule) *ColorStrategy {
	return &ColorStrategy{searcher: s, rule: rule}
}

func (c *ColorStrategy) Name() string { return "color" }

func (c *ColorStrategy) Attempt(ctx context.Context, q *Query, _ *Accumulator) Outcome {
	var docs []Document
	for _, group := range q.Colors {
		if len(group.Variants) == 0 {
			continue
		}
		hits, err := c.searcher.Search(ctx, c.Name(), search.Request{
			Collection: search.Products,
			Text:       q.Raw,
			Filter:     search.AnyOfFilter("color", group.Variants),
			Top:        10,
		})
		if err != nil {
			continue
		}
		docs = append(docs, products(hits, c.rule)...)
	}
	return Outcome{Docs: docs, Signal: Continue}
}
