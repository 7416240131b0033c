package parser

import (
	"fmt"

	"github.com/harrison/advisor/internal/models"
)

// ValidateFile checks a parsed facts file beyond per-endpoint structure:
// endpoint names must be unique and non-empty, and every endpoint's
// facts must pass structural validation. Returns all errors found.
func ValidateFile(facts *models.FactsFile) []error {
	var errs []error

	seen := make(map[string]bool)
	for i, ep := range facts.Endpoints {
		if ep.Name == "" {
			errs = append(errs, fmt.Errorf("endpoint %d: name must not be empty", i+1))
			continue
		}
		if seen[ep.Name] {
			errs = append(errs, fmt.Errorf("endpoint %q: duplicate endpoint name", ep.Name))
		}
		seen[ep.Name] = true

		if err := ep.Facts.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("endpoint %q: %w", ep.Name, err))
		}
	}

	if facts.Defaults.ReadStepTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("defaults.read_step_timeout_seconds: must be >= 0"))
	}
	if facts.Defaults.ExternalStepTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("defaults.external_step_timeout_seconds: must be >= 0"))
	}

	return errs
}

// UnusedRatioWarnings names the endpoints whose declared read/write
// ratio the engine will ignore: for read-only endpoints the ratio is
// treated as unbounded regardless of the declared value.
func UnusedRatioWarnings(facts *models.FactsFile) []string {
	var endpoints []string
	for _, ep := range facts.Endpoints {
		if ep.Facts.IsReadOnly() && ep.Facts.ReadWriteRatio != 0 {
			endpoints = append(endpoints, ep.Name)
		}
	}
	return endpoints
}
