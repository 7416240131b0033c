package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete recorded recommendations",
		Long: `Delete recommendations older than --older-than days, or older than the
configured retention with --expired. Without either flag all history is
deleted, which requires --force.`,
		RunE: runHistoryClear,
	}

	cmd.Flags().Int("older-than", 0, "only delete entries older than this many days")
	cmd.Flags().Bool("expired", false, "delete entries older than the configured retention (history.keep_days)")
	cmd.Flags().BoolP("force", "f", false, "required to delete all history")

	return cmd
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	days, _ := cmd.Flags().GetInt("older-than")
	if expired, _ := cmd.Flags().GetBool("expired"); expired && days <= 0 {
		cfg, err := loadConfigFromFlags(cmd)
		if err != nil {
			return err
		}
		days = cfg.History.KeepDays
	}

	force, _ := cmd.Flags().GetBool("force")
	if days <= 0 && !force {
		return fmt.Errorf("clearing all history requires --force (or use --older-than / --expired)")
	}

	store, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.Clear(days)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Deleted %d recommendation(s)\n", deleted)
	return nil
}
