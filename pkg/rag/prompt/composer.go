// Package prompt turns a user message, its conversation history and the retrieved
// grounding documents into the message list sent to the completion backend.
package prompt

import (
	"fmt"
	"strings"

	"support-chatbot-be/pkg/llm"
	"support-chatbot-be/pkg/rag/lexicon"
	"support-chatbot-be/pkg/rag/retrieval"
)

const (
	// MaxHistoryTurns is how many of the latest history turns are forwarded.
	MaxHistoryTurns = 10
	// MaxContextDocuments is how many documents are rendered into the context block.
	MaxContextDocuments = 3
	// MaxDetailRunes bounds the rendered product description.
	MaxDetailRunes = 300
)

// Composer is stateless apart from its immutable lexicon, so one instance serves
// every request.
type Composer struct {
	strings lexicon.PromptStrings
}

func NewComposer(lex *lexicon.Lexicon) *Composer {
	return &Composer{strings: lex.Prompt()}
}

// Compose returns the system turn, the trailing history window and a final user
// turn carrying the message plus its context block.
func (c *Composer) Compose(message string, history []llm.Message, docs []retrieval.Document) []llm.Message {
	if len(history) > MaxHistoryTurns {
		history = history[len(history)-MaxHistoryTurns:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: c.strings.System})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: message + c.BuildContext(docs),
	})

	return messages
}

// BuildContext renders the grounding block appended to the user message. It is
// empty when there is nothing to ground on.
func (c *Composer) BuildContext(docs []retrieval.Document) string {
	if len(docs) == 0 {
		return ""
	}

	head := docs
	if len(head) > MaxContextDocuments {
		head = head[:MaxContextDocuments]
	}

	var b strings.Builder
	if hasPolicy(docs) {
		b.WriteString("\n\n" + c.strings.PolicyHeader + "\n")
		for i, doc := range head {
			if doc.Kind != retrieval.KindPolicy {
				continue
			}
			fmt.Fprintf(&b, "%d. %s\n\n", i+1, body(doc))
		}
		return b.String()
	}

	b.WriteString("\n\n" + c.strings.ProductHeader + "\n")
	for i, doc := range head {
		c.writeProduct(&b, i+1, doc)
	}
	return b.String()
}

func (c *Composer) writeProduct(b *strings.Builder, n int, doc retrieval.Document) {
	colors := c.strings.NoColors
	if len(doc.Colors) > 0 {
		colors = strings.Join(doc.Colors, ", ")
	}
	price := doc.Price
	if price == "" {
		price = c.strings.NoPrice
	}

	fmt.Fprintf(b, "%d. %s\n", n, doc.Title)
	fmt.Fprintf(b, "   %s: %s\n", c.strings.BrandLabel, doc.Brand)
	fmt.Fprintf(b, "   %s: %s\n", c.strings.CategoryLabel, doc.Category)
	fmt.Fprintf(b, "   %s: %s\n", c.strings.ColorsLabel, colors)
	fmt.Fprintf(b, "   %s: %s\n", c.strings.PriceLabel, price)
	fmt.Fprintf(b, "   %s: %s\n\n", c.strings.DetailsLabel, c.truncate(body(doc)))
}

func (c *Composer) truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxDetailRunes {
		return s
	}
	return string(r[:MaxDetailRunes]) + c.strings.Ellipsis
}

func hasPolicy(docs []retrieval.Document) bool {
	for _, d := range docs {
		if d.Kind == retrieval.KindPolicy {
			return true
		}
	}
	return false
}

func body(doc retrieval.Document) string {
	if doc.Description != "" {
		return doc.Description
	}
	return doc.Summary
}
