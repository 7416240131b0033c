package models

// Intent is the classified purpose of an endpoint
type Intent string

const (
	// IntentCRUD is a simple single-entity create/read/update/delete
	IntentCRUD Intent = "crud"

	// IntentCommand is a state-changing operation with business rules
	IntentCommand Intent = "command"

	// IntentQuery is a read-only operation
	IntentQuery Intent = "query"

	// IntentWorkflow is a multi-step operation within one service
	IntentWorkflow Intent = "workflow"

	// IntentSaga is an operation spanning multiple bounded contexts
	IntentSaga Intent = "saga"
)

// IntentResult is the classifier output: the matched intent category,
// a confidence in [0,1], and the rationale for the match
type IntentResult struct {
	Intent     Intent  `yaml:"intent" json:"intent"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
	Rationale  string  `yaml:"rationale" json:"rationale"`
}

// ScoreFactor is one named contribution to the complexity score
type ScoreFactor struct {
	Name   string `yaml:"name" json:"name"`
	Points int    `yaml:"points" json:"points"`
}

// ComplexityScore is the scorer output: an integer in [1,10] plus the
// non-zero contributing factors in descending contribution order
type ComplexityScore struct {
	Value   int           `yaml:"value" json:"value"`
	Factors []ScoreFactor `yaml:"factors,omitempty" json:"factors,omitempty"`
}

// BoundaryResult reports whether the operation fits one consistency
// boundary. Entities that do not fit are referenced by identity only;
// embedding another aggregate's state is never recommended.
type BoundaryResult struct {
	FitsSingleAggregate      bool     `yaml:"fits_single_aggregate" json:"fits_single_aggregate"`
	CrossAggregateReferences []string `yaml:"cross_aggregate_references,omitempty" json:"cross_aggregate_references,omitempty"`
}

// Strategy is the recommended consistency pattern
type Strategy string

const (
	// StrategyACID is a single local transaction
	StrategyACID Strategy = "acid"

	// StrategySimpleCQRS splits read and write models within one service
	StrategySimpleCQRS Strategy = "simple_cqrs"

	// StrategyChoreographedSaga coordinates services through event reactions
	StrategyChoreographedSaga Strategy = "choreographed_saga"

	// StrategyOrchestratedSaga coordinates services through a central coordinator
	StrategyOrchestratedSaga Strategy = "orchestrated_saga"
)

// IsSaga reports whether the strategy requires a saga step plan
func (s Strategy) IsSaga() bool {
	return s == StrategyChoreographedSaga || s == StrategyOrchestratedSaga
}

// SagaStep is one planned step of a saga. Compensation is empty for the
// final step and for every step after the pivot, where only forward
// retry applies.
type SagaStep struct {
	Service        string `yaml:"service" json:"service"`
	Action         string `yaml:"action" json:"action"`
	Compensation   string `yaml:"compensation,omitempty" json:"compensation,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	IsPivot        bool   `yaml:"is_pivot,omitempty" json:"is_pivot,omitempty"`
}

// StrategyResult is the selector output: exactly one chosen strategy,
// with a step plan when a saga is chosen
type StrategyResult struct {
	Chosen    Strategy   `yaml:"chosen" json:"chosen"`
	Rationale string     `yaml:"rationale" json:"rationale"`
	SagaSteps []SagaStep `yaml:"saga_steps,omitempty" json:"saga_steps,omitempty"`
}

// Recommendation is the engine's sole output: the merged results of
// classification, scoring, boundary analysis, and strategy selection.
// It carries no identity or timestamp; identical inputs produce
// byte-identical recommendations. The history store assigns IDs.
type Recommendation struct {
	Endpoint   string          `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Intent     IntentResult    `yaml:"intent" json:"intent"`
	Complexity ComplexityScore `yaml:"complexity" json:"complexity"`
	Boundary   BoundaryResult  `yaml:"boundary" json:"boundary"`
	Strategy   StrategyResult  `yaml:"strategy" json:"strategy"`
	Rationale  string          `yaml:"rationale" json:"rationale"`
}

// PartialSagaFailure describes a saga plan that failed mid-execution.
// The engine never constructs this: it only produces plans. The type is
// defined here because the plan's compensation fields are what a
// downstream executor needs to resolve such a failure.
type PartialSagaFailure struct {
	CompletedSteps    []SagaStep `yaml:"completed_steps" json:"completed_steps"`
	FailedStep        SagaStep   `yaml:"failed_step" json:"failed_step"`
	CompensationsOwed []string   `yaml:"compensations_owed" json:"compensations_owed"`
}
