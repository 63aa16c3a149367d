package main

import (
	"context"
	"fmt"
	"strings"

	"support-chatbot-be/internal/bootstrap"
	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/service"
	"support-chatbot-be/pkg/rag/prompt"

	"github.com/spf13/cobra"
)

var askShowPrompt bool

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Answer a message end to end without storing it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowPrompt, "show-prompt", false, "print the composed prompt before the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Search.Timeout*10)
	defer cancel()

	sysLogger := cliLogger()
	lex, err := bootstrap.LoadLexicon(cfg)
	if err != nil {
		return err
	}
	generator, err := bootstrap.NewGenerator(cfg, lex, sysLogger)
	if err != nil {
		return err
	}
	retriever := bootstrap.NewRetriever(cfg, lex, sysLogger)
	composer := prompt.NewComposer(lex)

	message := strings.Join(args, " ")
	if askShowPrompt {
		docs := retriever.Retrieve(ctx, message)
		heading.Println("Prompt context:")
		faint.Println(strings.TrimSpace(composer.BuildContext(docs)))
		fmt.Println()
	}

	chatbot := service.NewChatbotService(retriever, composer, generator, nil, nil, sysLogger)
	res, err := chatbot.SendChat(ctx, &dto.ChatRequest{Message: message})
	if err != nil {
		return err
	}

	heading.Println("Documents:")
	printDocuments(res.ProductsFound)
	heading.Println("\nAnswer:")
	success.Println(res.Response)
	return nil
}
