// Package lexicon holds the catalog and language specific lookup tables used by
// retrieval and prompt composition. A Lexicon is built once at startup and never
// mutated afterwards, so it is safe to share between requests.
package lexicon

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mapping binds a phrase found in a query to a canonical product id.
type Mapping struct {
	Phrase string `yaml:"phrase"`
	ID     string `yaml:"id"`
}

// ColorGroup lists the variant names stored in the index for one color keyword.
type ColorGroup struct {
	Keyword  string   `yaml:"keyword"`
	Variants []string `yaml:"variants"`
}

// PromptStrings are the fixed texts the prompt composer and completion client emit.
type PromptStrings struct {
	System        string `yaml:"system"`
	PolicyHeader  string `yaml:"policy_header"`
	ProductHeader string `yaml:"product_header"`
	BrandLabel    string `yaml:"brand_label"`
	CategoryLabel string `yaml:"category_label"`
	ColorsLabel   string `yaml:"colors_label"`
	PriceLabel    string `yaml:"price_label"`
	DetailsLabel  string `yaml:"details_label"`
	NoColors      string `yaml:"no_colors"`
	NoPrice       string `yaml:"no_price"`
	Ellipsis      string `yaml:"ellipsis"`
	Apology       string `yaml:"apology"`
}

// PolicyDocument is the fixed presentation of every policy hit.
type PolicyDocument struct {
	Title    string `yaml:"title"`
	Brand    string `yaml:"brand"`
	Category string `yaml:"category"`
}

// File is the on-disk shape of a lexicon.
type File struct {
	Locale         string         `yaml:"locale"`
	PolicyKeywords []string       `yaml:"policy_keywords"`
	Aliases        []Mapping      `yaml:"aliases"`
	Names          []Mapping      `yaml:"names"`
	Colors         []ColorGroup   `yaml:"colors"`
	Policy         PolicyDocument `yaml:"policy"`
	Prompt         PromptStrings  `yaml:"prompt"`
}

type Lexicon struct {
	tag            language.Tag
	policyKeywords []string
	aliases        []Mapping
	names          []Mapping
	colors         []ColorGroup
	policy         PolicyDocument
	prompt         PromptStrings
}

// New copies f so later changes to the caller's slices cannot leak in.
func New(f File) *Lexicon {
	tag, err := language.Parse(f.Locale)
	if err != nil {
		tag = language.Und
	}

	l := &Lexicon{
		tag:    tag,
		policy: f.Policy,
		prompt: f.Prompt,
	}

	for _, kw := range f.PolicyKeywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			l.policyKeywords = append(l.policyKeywords, l.Lower(kw))
		}
	}
	for _, m := range f.Aliases {
		l.aliases = append(l.aliases, Mapping{Phrase: l.Lower(m.Phrase), ID: m.ID})
	}
	for _, m := range f.Names {
		l.names = append(l.names, Mapping{Phrase: l.Lower(m.Phrase), ID: m.ID})
	}
	for _, c := range f.Colors {
		l.colors = append(l.colors, ColorGroup{
			Keyword:  l.Lower(c.Keyword),
			Variants: append([]string(nil), c.Variants...),
		})
	}

	return l
}

// Lower folds s using the lexicon locale. A Caser is not goroutine safe, so one is
// built per call.
func (l *Lexicon) Lower(s string) string {
	if l.tag == language.Und {
		return strings.ToLower(s)
	}
	return cases.Lower(l.tag).String(s)
}

// Folds returns the locale fold of s followed by the root fold when the two differ.
// Under a Turkish locale an ASCII "I" folds to a dotless "ı", so capitals typed on
// other keyboards only match through the root fold.
func (l *Lexicon) Folds(s string) []string {
	local := l.Lower(s)
	root := strings.ToLower(s)
	if root == local {
		return []string{local}
	}
	return []string{local, root}
}

// IsPolicy reports whether the lower-cased query mentions any policy keyword.
func (l *Lexicon) IsPolicy(lower string) bool {
	for _, kw := range l.policyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// MatchAlias returns the canonical id of the first known product alias in lower.
func (l *Lexicon) MatchAlias(lower string) (string, bool) {
	for _, m := range l.aliases {
		if strings.Contains(lower, m.Phrase) {
			return m.ID, true
		}
	}
	return "", false
}

// MatchName returns the first name mapping, in table order, contained in lower.
func (l *Lexicon) MatchName(lower string) (Mapping, bool) {
	for _, m := range l.names {
		if strings.Contains(lower, m.Phrase) {
			return m, true
		}
	}
	return Mapping{}, false
}

// ColorsIn returns every color group whose keyword occurs in lower, in table order.
func (l *Lexicon) ColorsIn(lower string) []ColorGroup {
	var out []ColorGroup
	for _, c := range l.colors {
		if strings.Contains(lower, c.Keyword) {
			out = append(out, c)
		}
	}
	return out
}

func (l *Lexicon) Policy() PolicyDocument {
	return l.policy
}

func (l *Lexicon) Prompt() PromptStrings {
	return l.prompt
}
