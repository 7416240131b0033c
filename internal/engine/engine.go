// Package engine implements the architecture pattern recommendation engine:
// a pure, stateless pipeline that turns endpoint facts into a consistency
// pattern recommendation (ACID, simple CQRS, or a saga variant).
//
// Every component is a total, deterministic function over valid facts.
// Invalid facts are rejected at the boundary before any component runs;
// after that no component can fail. Calls share no state and may run
// fully in parallel.
package engine

import "github.com/harrison/advisor/internal/models"

// Engine runs the recommendation pipeline with a fixed configuration.
// The zero value is not usable; construct with New or NewDefault.
type Engine struct {
	scoring  ScoringConfig
	timeouts TimeoutConfig
}

// New creates an engine with the given scoring weights and saga timeouts
func New(scoring ScoringConfig, timeouts TimeoutConfig) *Engine {
	return &Engine{
		scoring:  scoring,
		timeouts: timeouts,
	}
}

// NewDefault creates an engine with the published default weights
func NewDefault() *Engine {
	return New(DefaultScoringConfig(), DefaultTimeoutConfig())
}

// Recommend validates the facts and runs the full pipeline:
// classify -> score -> analyze boundary -> select strategy -> format.
// It returns either a complete recommendation or an *models.InvalidFactsError;
// partial results are never returned.
func (e *Engine) Recommend(facts models.EndpointFacts) (*models.Recommendation, error) {
	facts.Normalize()
	if err := facts.Validate(); err != nil {
		return nil, err
	}

	intent := e.Classify(facts)
	score := e.Score(facts)
	boundary := e.AnalyzeBoundary(facts, intent)
	strategy := e.SelectStrategy(score, boundary, facts)

	return Format(intent, score, boundary, strategy), nil
}
