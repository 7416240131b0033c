package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/advisor/internal/display"
	"github.com/harrison/advisor/internal/parser"
)

// warnIgnoredRatios displays one warning covering every read-only
// endpoint whose declared read/write ratio the engine ignores
func warnIgnoredRatios(out io.Writer, endpoints []string) {
	if len(endpoints) == 0 {
		return
	}
	display.Warning{
		Title:      "read_write_ratio has no effect on read-only endpoints",
		Message:    "The ratio is treated as unbounded when no write_shape is declared.",
		Endpoints:  endpoints,
		Suggestion: "Remove read_write_ratio from these endpoints, or declare a write_shape if they do write.",
	}.Display(out)
}

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <facts-file-or-directory>...",
		Short: "Validate facts files without producing recommendations",
		Long: `Parse facts files and check their structure: endpoint names must be
unique, every endpoint needs a valid query or write shape, and numeric
fields must be in range. Prints a per-file checklist and exits non-zero
if any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().Bool("strict", false, "treat warnings as errors")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	strict, _ := cmd.Flags().GetBool("strict")

	factsFiles, err := parser.FilterFactsFiles(args)
	if err != nil {
		return err
	}

	var failed, warned int
	for _, path := range factsFiles {
		facts, err := parser.ParseFile(path)
		if err != nil {
			fmt.Fprintf(out, "✗ %s\n    %v\n", path, err)
			failed++
			continue
		}

		errs := parser.ValidateFile(facts)
		flagged := parser.UnusedRatioWarnings(facts)

		if len(errs) == 0 {
			fmt.Fprintf(out, "✓ %s (%d endpoint(s))\n", facts.Name, len(facts.Endpoints))
		} else {
			fmt.Fprintf(out, "✗ %s\n", facts.Name)
			for _, e := range errs {
				fmt.Fprintf(out, "    %v\n", e)
			}
			failed++
		}

		warnIgnoredRatios(cmd.ErrOrStderr(), flagged)
		warned += len(flagged)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d facts file(s) failed validation", failed, len(factsFiles))
	}
	if strict && warned > 0 {
		return fmt.Errorf("%d warning(s) with --strict", warned)
	}

	fmt.Fprintf(out, "✓ All %d facts file(s) valid\n", len(factsFiles))
	return nil
}
