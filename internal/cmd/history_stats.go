package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newHistoryStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Aggregate statistics over recorded recommendations",
		RunE:  runHistoryStats,
	}
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}

	if stats.Total == 0 {
		fmt.Fprintln(out, "No recommendations recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "Total recommendations: %d\n", stats.Total)
	fmt.Fprintf(out, "Average complexity:    %.1f/10\n\n", stats.AverageScore)

	fmt.Fprintln(out, "By strategy:")
	for _, line := range sortedCounts(stats.ByStrategy) {
		fmt.Fprintf(out, "  %s\n", line)
	}

	fmt.Fprintln(out, "\nBy intent:")
	for _, line := range sortedCounts(stats.ByIntent) {
		fmt.Fprintf(out, "  %s\n", line)
	}

	return nil
}

// sortedCounts renders a count map as "name: count" lines, highest count
// first, ties broken by name for stable output
func sortedCounts[K ~string](counts map[K]int) []string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{string(name), count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%-20s %d", e.name+":", e.count))
	}
	return lines
}
