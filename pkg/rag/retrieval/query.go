package retrieval

import (
	"strings"
	"unicode/utf8"

	"support-chatbot-be/pkg/rag/lexicon"
)

type Class string

const (
	ClassPolicy          Class = "policy"
	ClassSpecificProduct Class = "specific-product"
	ClassNamedProduct    Class = "named-product"
	ClassGeneric         Class = "generic"
)

// Query is the user text plus everything the cascade derives from it.
type Query struct {
	Raw    string
	Lower  string
	Tokens []string
	Class  Class

	Policy  bool
	AliasID string
	Name    *lexicon.Mapping
	Colors  []lexicon.ColorGroup
}

// Classify derives the lookup facts once so strategies never re-scan the tables.
// Class reports the most specific match; Policy stays true even when a product
// alias also matched. Every fold of the query is tried, and Lower keeps the first
// fold that hit the lexicon.
func Classify(lex *lexicon.Lexicon, raw string) *Query {
	folds := lex.Folds(raw)
	q := &Query{Raw: raw, Lower: folds[0]}

	matched := false
	for _, lower := range folds {
		hit := false
		if lex.IsPolicy(lower) {
			q.Policy, hit = true, true
		}
		if id, ok := lex.MatchAlias(lower); ok && q.AliasID == "" {
			q.AliasID, hit = id, true
		}
		if m, ok := lex.MatchName(lower); ok && q.Name == nil {
			q.Name, hit = &m, true
		}
		if colors := lex.ColorsIn(lower); len(colors) > 0 && q.Colors == nil {
			q.Colors, hit = colors, true
		}
		if hit && !matched {
			q.Lower, matched = lower, true
		}
	}
	q.Tokens = strings.Fields(q.Lower)

	switch {
	case q.Policy:
		q.Class = ClassPolicy
	case q.AliasID != "":
		q.Class = ClassSpecificProduct
	case q.Name != nil:
		q.Class = ClassNamedProduct
	default:
		q.Class = ClassGeneric
	}

	return q
}

// SearchTokens returns the tokens with at least min characters, in query order.
func (q *Query) SearchTokens(min int) []string {
	var out []string
	for _, t := range q.Tokens {
		if utf8.RuneCountInString(t) >= min {
			out = append(out, t)
		}
	}
	return out
}
