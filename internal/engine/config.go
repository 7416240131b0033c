package engine

import "fmt"

// ScoringConfig holds the complexity factor weights and the score
// thresholds of the strategy decision table. The point values are a
// policy knob: defaults reproduce the published weighting, but teams
// can tune them per project.
type ScoringConfig struct {
	// EntitiesFewPoints is added when 2-3 entities are affected
	EntitiesFewPoints int `yaml:"entities_few_points"`

	// EntitiesManyPoints is added when 4 or more entities are affected
	EntitiesManyPoints int `yaml:"entities_many_points"`

	// ServicesFewPoints is added when 2-3 services are involved
	ServicesFewPoints int `yaml:"services_few_points"`

	// ServicesManyPoints is added when 4 or more services are involved
	ServicesManyPoints int `yaml:"services_many_points"`

	// WriteValidationPoints is added for validation_rules writes
	WriteValidationPoints int `yaml:"write_validation_points"`

	// WriteInvariantsPoints is added for complex_invariants writes
	WriteInvariantsPoints int `yaml:"write_invariants_points"`

	// WriteAuditPoints is added for audit_trail and event_sourced writes
	WriteAuditPoints int `yaml:"write_audit_points"`

	// LongRunningPoints is added when the operation is long-running
	LongRunningPoints int `yaml:"long_running_points"`

	// ACIDMaxScore is the highest score still eligible for a plain ACID transaction
	ACIDMaxScore int `yaml:"acid_max_score"`

	// CQRSMaxScore is the highest score handled by simple CQRS when a
	// single-service operation crosses aggregate boundaries
	CQRSMaxScore int `yaml:"cqrs_max_score"`

	// ChoreographyMaxScore is the highest score handled by a choreographed
	// saga; above it a multi-service operation gets an orchestrator
	ChoreographyMaxScore int `yaml:"choreography_max_score"`
}

// DefaultScoringConfig returns the published factor table: entities
// 2-3/4+ worth 2/4 points, services 2-3/4+ worth 3/5, write shapes
// worth 1/2/3, long-running worth 2, thresholds 3/6/6.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		EntitiesFewPoints:     2,
		EntitiesManyPoints:    4,
		ServicesFewPoints:     3,
		ServicesManyPoints:    5,
		WriteValidationPoints: 1,
		WriteInvariantsPoints: 2,
		WriteAuditPoints:      3,
		LongRunningPoints:     2,
		ACIDMaxScore:          3,
		CQRSMaxScore:          6,
		ChoreographyMaxScore:  6,
	}
}

// Validate checks that the scoring configuration is internally coherent
func (c *ScoringConfig) Validate() error {
	points := map[string]int{
		"entities_few_points":     c.EntitiesFewPoints,
		"entities_many_points":    c.EntitiesManyPoints,
		"services_few_points":     c.ServicesFewPoints,
		"services_many_points":    c.ServicesManyPoints,
		"write_validation_points": c.WriteValidationPoints,
		"write_invariants_points": c.WriteInvariantsPoints,
		"write_audit_points":      c.WriteAuditPoints,
		"long_running_points":     c.LongRunningPoints,
	}
	for field, v := range points {
		if v < 0 {
			return &ConfigError{Field: field, Message: "must be >= 0", Value: v}
		}
	}
	if c.ACIDMaxScore < 1 || c.ACIDMaxScore > 10 {
		return &ConfigError{Field: "acid_max_score", Message: "must be between 1 and 10", Value: c.ACIDMaxScore}
	}
	if c.CQRSMaxScore < 1 || c.CQRSMaxScore > 10 {
		return &ConfigError{Field: "cqrs_max_score", Message: "must be between 1 and 10", Value: c.CQRSMaxScore}
	}
	if c.ChoreographyMaxScore < 1 || c.ChoreographyMaxScore > 10 {
		return &ConfigError{Field: "choreography_max_score", Message: "must be between 1 and 10", Value: c.ChoreographyMaxScore}
	}
	return nil
}

// TimeoutConfig holds the default saga step timeouts. Callers may
// override per facts file; the engine only emits these values for a
// downstream executor to honor, it never waits on them itself.
type TimeoutConfig struct {
	// ReadStepTimeoutSeconds applies to read/validation steps
	ReadStepTimeoutSeconds int `yaml:"read_step_timeout_seconds"`

	// ExternalStepTimeoutSeconds applies to external-system or payment-like steps
	ExternalStepTimeoutSeconds int `yaml:"external_step_timeout_seconds"`
}

// DefaultTimeoutConfig returns 5s for read/validation steps and 30s for
// external-system steps
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		ReadStepTimeoutSeconds:     5,
		ExternalStepTimeoutSeconds: 30,
	}
}

// Validate checks the timeout configuration
func (c *TimeoutConfig) Validate() error {
	if c.ReadStepTimeoutSeconds <= 0 {
		return &ConfigError{Field: "read_step_timeout_seconds", Message: "must be > 0", Value: c.ReadStepTimeoutSeconds}
	}
	if c.ExternalStepTimeoutSeconds <= 0 {
		return &ConfigError{Field: "external_step_timeout_seconds", Message: "must be > 0", Value: c.ExternalStepTimeoutSeconds}
	}
	return nil
}

// ConfigError represents an engine configuration validation error
type ConfigError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine.%s: %s (got %v)", e.Field, e.Message, e.Value)
}
