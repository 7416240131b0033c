package engine

import (
	"fmt"
	"strings"

	"github.com/harrison/advisor/internal/models"
)

// Format merges the component results into one recommendation. Pure
// aggregation: no randomness or timestamps are introduced here, so
// identical inputs always yield a byte-identical recommendation.
func Format(intent models.IntentResult, score models.ComplexityScore, boundary models.BoundaryResult, strategy models.StrategyResult) *models.Recommendation {
	return &models.Recommendation{
		Intent:     intent,
		Complexity: score,
		Boundary:   boundary,
		Strategy:   strategy,
		Rationale:  buildRationale(intent, score, boundary, strategy),
	}
}

func buildRationale(intent models.IntentResult, score models.ComplexityScore, boundary models.BoundaryResult, strategy models.StrategyResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Classified as %s (confidence %.2f): %s. ", intent.Intent, intent.Confidence, intent.Rationale)

	if len(score.Factors) == 0 {
		fmt.Fprintf(&b, "Complexity %d/10 with no elevated factors. ", score.Value)
	} else {
		names := make([]string, 0, len(score.Factors))
		for _, f := range score.Factors {
			names = append(names, fmt.Sprintf("%s (+%d)", f.Name, f.Points))
		}
		fmt.Fprintf(&b, "Complexity %d/10 driven by %s. ", score.Value, strings.Join(names, ", "))
	}

	if boundary.FitsSingleAggregate {
		b.WriteString("The operation fits a single aggregate. ")
	} else {
		fmt.Fprintf(&b, "The operation crosses aggregate boundaries; reference by ID only: %s. ",
			strings.Join(boundary.CrossAggregateReferences, ", "))
	}

	fmt.Fprintf(&b, "Recommended strategy: %s, because %s", strategyLabel(strategy.Chosen), strategy.Rationale)
	if len(strategy.SagaSteps) > 0 {
		fmt.Fprintf(&b, " (%d-step plan)", len(strategy.SagaSteps))
	}
	b.WriteString(".")

	return b.String()
}

func strategyLabel(s models.Strategy) string {
	switch s {
	case models.StrategyACID:
		return "ACID transaction"
	case models.StrategySimpleCQRS:
		return "simple CQRS"
	case models.StrategyChoreographedSaga:
		return "choreographed saga"
	case models.StrategyOrchestratedSaga:
		return "orchestrated saga"
	default:
		return string(s)
	}
}
