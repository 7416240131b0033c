package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for advisor
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Architecture pattern recommendation engine for API endpoints",
		Long: `Advisor turns structured endpoint facts into consistency pattern
recommendations (ACID, Simple CQRS, Choreographed Saga, Orchestrated Saga).

It parses facts files (Markdown or YAML) describing endpoints: entity
counts, query and write shapes, services involved. It classifies each
endpoint's intent, scores its complexity, analyzes aggregate boundaries,
and selects a transaction strategy with a saga step plan when needed.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default .advisor.yaml)")

	// Add subcommands
	cmd.AddCommand(NewRecommendCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
