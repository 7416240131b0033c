package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/advisor/internal/config"
	"github.com/harrison/advisor/internal/display"
	"github.com/harrison/advisor/internal/engine"
	"github.com/harrison/advisor/internal/filelock"
	"github.com/harrison/advisor/internal/history"
	"github.com/harrison/advisor/internal/logger"
	"github.com/harrison/advisor/internal/models"
	"github.com/harrison/advisor/internal/parser"
)

// NewRecommendCommand creates and returns the recommend subcommand
func NewRecommendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <facts-file-or-directory>...",
		Short: "Recommend consistency patterns for endpoints in facts files",
		Long: `Parse facts files, run the recommendation engine on every endpoint,
and render one report per endpoint.

Supports multiple input modes:
  - Single file: advisor recommend facts-orders.yaml
  - Single directory: advisor recommend docs/facts/ (filters facts-*.{md,yaml})
  - Multiple files: advisor recommend facts-orders.yaml facts-users.md

Recommendations are recorded to the history database unless --no-history
is given. Use --export to additionally write the full report to a file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().StringP("output", "o", "", "report format: text, yaml, or json (default from config)")
	cmd.Flags().String("export", "", "write the report to this file (atomic, locked)")
	cmd.Flags().Bool("no-history", false, "do not record recommendations to the history database")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	cmd.Flags().BoolP("verbose", "v", false, "enable debug logging")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "" {
		outputFormat = cfg.Output
	}
	switch outputFormat {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unsupported output format %q (expected text, yaml, or json)", outputFormat)
	}

	logLevel := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)

	factsFiles, err := parser.FilterFactsFiles(args)
	if err != nil {
		return err
	}
	log.Debugf("found %d facts file(s)", len(factsFiles))

	noHistory, _ := cmd.Flags().GetBool("no-history")
	var store *history.Store
	if cfg.History.Enabled && !noHistory {
		store, err = history.NewStore(cfg.History.DBPath)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer store.Close()
	}

	var recommendations []*models.Recommendation

	for _, path := range factsFiles {
		facts, err := parser.ParseFile(path)
		if err != nil {
			return err
		}

		if errs := parser.ValidateFile(facts); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(out, "✗ %s: %v\n", facts.Name, e)
			}
			return fmt.Errorf("facts validation failed with %d error(s)", len(errs))
		}

		warnIgnoredRatios(cmd.ErrOrStderr(), parser.UnusedRatioWarnings(facts))

		eng := engine.New(cfg.Scoring, mergeTimeouts(cfg.Timeouts, facts.Defaults))
		log.Debugf("recommending for %d endpoint(s) in %s", len(facts.Endpoints), facts.Name)

		for _, ep := range facts.Endpoints {
			rec, err := eng.Recommend(ep.Facts)
			if err != nil {
				return fmt.Errorf("endpoint %q: %w", ep.Name, err)
			}
			rec.Endpoint = ep.Name
			recommendations = append(recommendations, rec)

			if store != nil {
				id, err := store.Record(rec, ep.Facts, facts.FilePath)
				if err != nil {
					return fmt.Errorf("record recommendation for %q: %w", ep.Name, err)
				}
				log.Debugf("recorded %s as %s", ep.Name, id)
			}
		}
	}

	if err := renderRecommendations(cmd, out, outputFormat, cfg, recommendations); err != nil {
		return err
	}

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		data, err := yaml.Marshal(recommendations)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := filelock.LockAndWrite(exportPath, data); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		fmt.Fprintf(out, "✓ Report exported to %s\n", exportPath)
	}

	return nil
}

// renderRecommendations writes the recommendations in the chosen format
func renderRecommendations(cmd *cobra.Command, out io.Writer, format string, cfg *config.Config, recommendations []*models.Recommendation) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(recommendations)
		if err != nil {
			return fmt.Errorf("encode recommendations: %w", err)
		}
		_, err = out.Write(data)
		return err

	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(recommendations)

	default:
		noColor, _ := cmd.Flags().GetBool("no-color")
		renderer := display.NewReportRenderer(out, useColor(out, cfg.NoColor || noColor))
		for _, rec := range recommendations {
			renderer.Render(rec)
		}
		fmt.Fprintf(out, "✓ Analyzed %d endpoint(s)\n", len(recommendations))
		return nil
	}
}

// mergeTimeouts applies file-level defaults over the configured timeouts
func mergeTimeouts(base engine.TimeoutConfig, defaults models.FactsDefaults) engine.TimeoutConfig {
	if defaults.ReadStepTimeoutSeconds > 0 {
		base.ReadStepTimeoutSeconds = defaults.ReadStepTimeoutSeconds
	}
	if defaults.ExternalStepTimeoutSeconds > 0 {
		base.ExternalStepTimeoutSeconds = defaults.ExternalStepTimeoutSeconds
	}
	return base
}

// useColor decides whether terminal colors should be used for a writer
func useColor(out io.Writer, disabled bool) bool {
	if disabled {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadConfigFromFlags loads configuration honoring the --config flag
func loadConfigFromFlags(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigFile
	}
	return config.LoadConfig(path)
}
