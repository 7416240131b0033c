package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/advisor/internal/display"
)

func newHistoryShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one past recommendation in full",
		Long: `Show a stored recommendation by ID. Unambiguous ID prefixes work, so
the short IDs printed by "history list" can be used directly.`,
		Args: cobra.ExactArgs(1),
		RunE: runHistoryShow,
	}

	cmd.Flags().Bool("facts", false, "also print the facts that produced the recommendation")

	return cmd
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	record, err := store.Get(args[0])
	if err != nil {
		return err
	}

	rec, err := record.Recommendation()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "ID:       %s\n", record.ID)
	fmt.Fprintf(out, "Source:   %s\n", record.SourceFile)
	fmt.Fprintf(out, "Recorded: %s\n\n", record.CreatedAt.Local().Format("2006-01-02 15:04:05"))

	display.NewReportRenderer(out, false).Render(rec)

	if showFacts, _ := cmd.Flags().GetBool("facts"); showFacts {
		fmt.Fprintf(out, "Facts:\n%s\n", record.FactsJSON)
	}

	return nil
}
