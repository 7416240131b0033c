package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/advisor/internal/history"
)

// NewHistoryCommand creates the history command with its subcommands
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past recommendations",
		Long: `Query the recommendation history database: list past recommendations,
show a single one in full, aggregate statistics, or clear old entries.`,
	}

	cmd.PersistentFlags().String("db", "", "history database path (default from config)")

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryStatsCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

// openHistoryStore opens the store at the --db path, falling back to the
// configured path
func openHistoryStore(cmd *cobra.Command) (*history.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		cfg, err := loadConfigFromFlags(cmd)
		if err != nil {
			return nil, err
		}
		dbPath = cfg.History.DBPath
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	return store, nil
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past recommendations, newest first",
		RunE:  runHistoryList,
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum number of entries to show (0 = all)")

	return cmd
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No recommendations recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-8s  %-24s  %-8s  %-5s  %-18s  %s\n",
		"ID", "ENDPOINT", "INTENT", "SCORE", "STRATEGY", "WHEN")
	for _, r := range records {
		fmt.Fprintf(out, "%-8s  %-24s  %-8s  %-5d  %-18s  %s\n",
			shortID(r.ID), truncate(r.Endpoint, 24), r.Intent, r.Score,
			r.Strategy, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// shortID returns the first 8 characters of a record ID
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to max display runes; byte slicing would mangle
// multi-byte endpoint names
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
