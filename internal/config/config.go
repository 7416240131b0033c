package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrison/advisor/internal/engine"
)

// DefaultConfigFile is the config file looked up in the working directory
const DefaultConfigFile = ".advisor.yaml"

// HistoryConfig represents recommendation history configuration
type HistoryConfig struct {
	// Enabled enables recording of recommendations
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`

	// KeepDays is the default retention for `history clear --older-than`
	KeepDays int `yaml:"keep_days"`
}

// Config represents advisor configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Output is the default report format: text, yaml, or json
	Output string `yaml:"output"`

	// NoColor disables colored terminal output
	NoColor bool `yaml:"no_color"`

	// History contains recommendation history configuration
	History HistoryConfig `yaml:"history"`

	// Scoring contains the complexity factor weights and strategy thresholds
	Scoring engine.ScoringConfig `yaml:"scoring"`

	// Timeouts contains the default saga step timeouts
	Timeouts engine.TimeoutConfig `yaml:"timeouts"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Output:   "text",
		NoColor:  false,
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   ".advisor/history.db",
			KeepDays: 90,
		},
		Scoring:  engine.DefaultScoringConfig(),
		Timeouts: engine.DefaultTimeoutConfig(),
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration values
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("output: must be text, yaml, or json (got %q)", c.Output)
	}

	if c.History.Enabled {
		if c.History.DBPath == "" {
			return fmt.Errorf("history.db_path: must not be empty when history is enabled")
		}
		if c.History.KeepDays < 0 {
			return fmt.Errorf("history.keep_days: must be >= 0 (got %d)", c.History.KeepDays)
		}
	}

	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	if err := c.Timeouts.Validate(); err != nil {
		return err
	}

	return nil
}
