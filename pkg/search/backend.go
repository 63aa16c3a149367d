// Package search adapts a hosted document index to the narrow query contract the
// retrieval cascade needs: full text, filtered and wildcard searches over a
// product collection and a policy collection.
package search

import (
	"context"
	"strconv"
)

// Collection names a logical document set. Backends map it onto a physical index.
type Collection string

const (
	Products Collection = "products"
	Policies Collection = "policies"
)

// Mode controls whether every term or any term must match.
type Mode string

const (
	ModeAny Mode = "any"
	ModeAll Mode = "all"
)

// QueryType selects the query parser. Full enables field scoped wildcard syntax.
type QueryType string

const (
	QuerySimple QueryType = "simple"
	QueryFull   QueryType = "full"
)

// MatchAll is the search text that returns every document.
const MatchAll = "*"

// ScoreField is where hosted indexes report relevance.
const ScoreField = "@search.score"

type Request struct {
	Collection   Collection `json:"collection"`
	Text         string     `json:"text"`
	Filter       string     `json:"filter,omitempty"`
	SearchFields []string   `json:"search_fields,omitempty"`
	QueryType    QueryType  `json:"query_type,omitempty"`
	Mode         Mode       `json:"mode,omitempty"`
	Top          int        `json:"top"`
}

// Hit is one raw document as returned by the index.
type Hit map[string]interface{}

// Backend executes a single search. Implementations must be safe for concurrent use.
type Backend interface {
	Search(ctx context.Context, req Request) ([]Hit, error)
}

// String returns the field as text. Numbers are formatted without trailing zeros.
func (h Hit) String(key string) string {
	switch v := h[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Strings returns a list field, accepting a single string as a one element list.
func (h Hit) Strings(key string) []string {
	switch v := h[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// Score returns the backend relevance score, if any.
func (h Hit) Score() (float64, bool) {
	switch v := h[ScoreField].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
