package retrieval

import (
	"support-chatbot-be/pkg/rag/lexicon"
	"support-chatbot-be/pkg/search"
)

type Kind string

const (
	KindProduct Kind = "product"
	KindPolicy  Kind = "policy"
)

// Document is a grounding record handed to the prompt composer.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Summary     string   `json:"text"`
	Price       string   `json:"price"`
	Colors      []string `json:"color"`
	Category    string   `json:"category"`
	URL         string   `json:"url"`
	Score       float64  `json:"score"`
	Kind        Kind     `json:"type"`
}

// ScoreRule decides a hit's relevance. A fixed rule ignores the backend score.
type ScoreRule struct {
	Value float64
	Fixed bool
}

func (r ScoreRule) apply(h search.Hit) float64 {
	if !r.Fixed {
		if s, ok := h.Score(); ok {
			return s
		}
	}
	return r.Value
}

func productFromHit(h search.Hit, rule ScoreRule) Document {
	return Document{
		ID:          h.String("id"),
		Title:       h.String("name"),
		Brand:       h.String("brand"),
		Description: h.String("description"),
		Summary:     h.String("text"),
		Price:       h.String("price"),
		Colors:      h.Strings("color"),
		Category:    h.String("category"),
		URL:         h.String("url"),
		Score:       rule.apply(h),
		Kind:        KindProduct,
	}
}

func policyFromHit(h search.Hit, p lexicon.PolicyDocument, rule ScoreRule) Document {
	body := firstNonEmpty(h.String("chunk"), h.String("content"), h.String("text"), h.String("description"))
	return Document{
		ID:          h.String("id"),
		Title:       p.Title,
		Brand:       p.Brand,
		Description: body,
		Summary:     body,
		Category:    p.Category,
		Score:       rule.apply(h),
		Kind:        KindPolicy,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Accumulator collects documents in discovery order, dropping repeated ids.
type Accumulator struct {
	docs []Document
	seen map[string]struct{}
}

func NewAccumulator() *Accumulator {
	return &Accumulator{seen: make(map[string]struct{})}
}

// Add appends the documents whose id has not been seen and reports how many were kept.
func (a *Accumulator) Add(docs ...Document) int {
	added := 0
	for _, d := range docs {
		if _, ok := a.seen[d.ID]; ok {
			continue
		}
		a.seen[d.ID] = struct{}{}
		a.docs = append(a.docs, d)
		added++
	}
	return added
}

func (a *Accumulator) Len() int {
	return len(a.docs)
}

func (a *Accumulator) Has(id string) bool {
	_, ok := a.seen[id]
	return ok
}

// Documents returns a copy of the collected documents.
func (a *Accumulator) Documents() []Document {
	return append([]Document(nil), a.docs...)
}
