package engine

import (
	"fmt"

	"github.com/harrison/advisor/internal/models"
)

// SelectStrategy chooses exactly one consistency strategy from the
// decision table, evaluated top-down with the first matching row winning:
//
//	fits single aggregate AND score <= acid_max          -> ACID
//	crosses aggregates, one service, score <= cqrs_max   -> simple CQRS
//	multiple services, score <= choreography_max         -> choreographed saga
//	multiple services, score above                       -> orchestrated saga
//	else (one service, high score)                       -> simple CQRS
//
// The rows cover every input exactly once, so selection is total and
// never ambiguous. When a saga is chosen a step plan is generated; the
// selector only produces the plan, it executes nothing.
func (e *Engine) SelectStrategy(score models.ComplexityScore, boundary models.BoundaryResult, facts models.EndpointFacts) models.StrategyResult {
	cfg := e.scoring

	switch {
	case boundary.FitsSingleAggregate && score.Value <= cfg.ACIDMaxScore:
		return models.StrategyResult{
			Chosen: models.StrategyACID,
			Rationale: fmt.Sprintf("single aggregate and complexity %d within the ACID budget (<= %d)",
				score.Value, cfg.ACIDMaxScore),
		}

	case !boundary.FitsSingleAggregate && facts.ServicesInvolved == 1 && score.Value <= cfg.CQRSMaxScore:
		return models.StrategyResult{
			Chosen: models.StrategySimpleCQRS,
			Rationale: fmt.Sprintf("crosses aggregate boundaries within one service at complexity %d; split read and write models",
				score.Value),
		}

	case facts.ServicesInvolved > 1 && score.Value <= cfg.ChoreographyMaxScore:
		return models.StrategyResult{
			Chosen: models.StrategyChoreographedSaga,
			Rationale: fmt.Sprintf("%d services at complexity %d; event choreography keeps coordination lightweight",
				facts.ServicesInvolved, score.Value),
			SagaSteps: e.planSagaSteps(boundary, facts),
		}

	case facts.ServicesInvolved > 1:
		return models.StrategyResult{
			Chosen: models.StrategyOrchestratedSaga,
			Rationale: fmt.Sprintf("%d services at complexity %d; a central orchestrator is needed to track state",
				facts.ServicesInvolved, score.Value),
			SagaSteps: e.planSagaSteps(boundary, facts),
		}

	default:
		// Single service, high score, and either within one aggregate or
		// crossing boundaries: CQRS handles the read/write asymmetry
		return models.StrategyResult{
			Chosen: models.StrategySimpleCQRS,
			Rationale: fmt.Sprintf("single service at complexity %d exceeds the ACID budget; split read and write models",
				score.Value),
		}
	}
}

// planSagaSteps generates one step per distinct service in the plan:
// the originating service first, then the cross-aggregate references in
// the order they were recorded. Every step carries a default
// compensation except the final step and any step after the pivot. The
// pivot is the first step whose write shape is complex_invariants (an
// irreversible side effect such as an external payment capture); after
// it only forward retry applies.
func (e *Engine) planSagaSteps(boundary models.BoundaryResult, facts models.EndpointFacts) []models.SagaStep {
	origin := "origin"
	if names := facts.EntityNames(); len(names) > 0 {
		origin = names[0]
	}

	services := make([]string, 0, len(boundary.CrossAggregateReferences)+1)
	services = append(services, origin)
	seen := map[string]bool{origin: true}
	for _, ref := range boundary.CrossAggregateReferences {
		if !seen[ref] {
			services = append(services, ref)
			seen[ref] = true
		}
	}

	steps := make([]models.SagaStep, 0, len(services))
	pivotIndex := -1
	for i, service := range services {
		shape := facts.EntityWriteShape(service)
		if i == 0 && shape == models.WriteShapeNone {
			// The origin step inherits the endpoint-level write shape
			shape = facts.WriteShape
		}

		timeout := e.timeouts.ReadStepTimeoutSeconds
		if shape.ExternalFacing() {
			timeout = e.timeouts.ExternalStepTimeoutSeconds
		}

		step := models.SagaStep{
			Service:        service,
			Action:         fmt.Sprintf("update %s", service),
			TimeoutSeconds: timeout,
		}

		if pivotIndex < 0 && shape == models.WriteShapeComplexInvariants {
			step.IsPivot = true
			pivotIndex = i
		}

		steps = append(steps, step)
	}

	// Compensations: every step except the final one, and nothing after
	// the pivot (forward retry only past that point)
	for i := range steps {
		if i == len(steps)-1 {
			continue
		}
		if pivotIndex >= 0 && i > pivotIndex {
			continue
		}
		steps[i].Compensation = fmt.Sprintf("reverse %s update", steps[i].Service)
	}

	return steps
}
