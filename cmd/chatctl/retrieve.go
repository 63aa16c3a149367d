package main

import (
	"context"
	"fmt"
	"strings"

	"support-chatbot-be/internal/bootstrap"
	"support-chatbot-be/pkg/rag/retrieval"

	"github.com/spf13/cobra"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve <query>",
	Short: "Print the ranked grounding documents for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRetrieve,
}

func init() {
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Search.Timeout*8)
	defer cancel()

	lex, err := bootstrap.LoadLexicon(cfg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	q := retrieval.Classify(lex, query)
	heading.Printf("Query: %s\n", query)
	faint.Printf("class=%s policy=%t tokens=%v\n\n", q.Class, q.Policy, q.Tokens)

	docs := bootstrap.NewRetriever(cfg, lex, cliLogger()).Retrieve(ctx, query)
	printDocuments(docs)
	return nil
}

func printDocuments(docs []retrieval.Document) {
	if len(docs) == 0 {
		faint.Println("No documents found.")
		return
	}
	for i, d := range docs {
		label.Printf("%d. %s", i+1, d.Title)
		faint.Printf("  [%s %s score=%.3f]\n", d.Kind, d.ID, d.Score)
		if d.Kind == retrieval.KindProduct {
			fmt.Printf("   %s | %s | %s | %s\n", d.Brand, d.Category, strings.Join(d.Colors, ", "), d.Price)
		}
	}
}
