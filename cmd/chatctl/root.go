package main

import (
	"support-chatbot-be/internal/config"
	"support-chatbot-be/internal/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	noColor bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "chatctl",
	Short: "Operator CLI for the support chatbot",
	Long: `chatctl runs the chatbot's retrieval and completion flow from the terminal
and inspects the stored sessions and published events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		color.NoColor = color.NoColor || noColor
		cfg = config.Load()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log retrieval and completion details to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// cliLogger keeps the console quiet unless --verbose is set.
func cliLogger() logger.ILogger {
	if verbose {
		return logger.NewZapLogger(cfg.App.LogFilePath, false)
	}
	return logger.NewNopLogger()
}

var (
	heading = color.New(color.FgCyan, color.Bold)
	label   = color.New(color.FgYellow)
	faint   = color.New(color.Faint)
	success = color.New(color.FgGreen)
)
