package engine

import (
	"fmt"

	"github.com/harrison/advisor/internal/models"
)

// Classify maps endpoint facts to an intent category. The rules form an
// ordered list evaluated top-down; the first match wins. Classification
// never fails: every structurally valid input lands on exactly one rule.
//
// An endpoint with both a complex query and a write (e.g. "submit order
// with computed total") is classified by write-shape precedence, because
// mutation dominates intent.
func (e *Engine) Classify(facts models.EndpointFacts) models.IntentResult {
	switch {
	case facts.ServicesInvolved > 1:
		return models.IntentResult{
			Intent:     models.IntentSaga,
			Confidence: 0.9,
			Rationale: fmt.Sprintf("operation spans %d bounded contexts; cross-service coordination dominates",
				facts.ServicesInvolved),
		}

	case facts.LongRunning ||
		(facts.EntitiesAffected >= 3 && (facts.WriteShape == models.WriteShapeComplexInvariants ||
			facts.WriteShape == models.WriteShapeEventSourced)):
		return models.IntentResult{
			Intent:     models.IntentWorkflow,
			Confidence: 0.8,
			Rationale:  workflowRationale(facts),
		}

	case facts.IsReadOnly():
		if facts.QueryShape.Complex() {
			return models.IntentResult{
				Intent:     models.IntentQuery,
				Confidence: 0.85,
				Rationale:  fmt.Sprintf("read-only endpoint with a %s query shape", facts.QueryShape),
			}
		}
		return models.IntentResult{
			Intent:     models.IntentQuery,
			Confidence: 0.6,
			Rationale:  fmt.Sprintf("read-only endpoint with a simple CRUD-read query shape (%s)", facts.QueryShape),
		}

	case facts.WriteShape == models.WriteShapeComplexInvariants ||
		facts.WriteShape == models.WriteShapeAuditTrail ||
		facts.WriteShape == models.WriteShapeEventSourced ||
		facts.EntitiesAffected >= 2:
		return models.IntentResult{
			Intent:     models.IntentCommand,
			Confidence: 0.75,
			Rationale:  commandRationale(facts),
		}

	default:
		return models.IntentResult{
			Intent:     models.IntentCRUD,
			Confidence: 0.9,
			Rationale:  "single-entity, single-service operation with no complex rules",
		}
	}
}

func workflowRationale(facts models.EndpointFacts) string {
	if facts.LongRunning {
		return "long-running operation spanning beyond one request/transaction"
	}
	return fmt.Sprintf("%d entities affected with a %s write shape indicate a multi-step workflow",
		facts.EntitiesAffected, facts.WriteShape)
}

func commandRationale(facts models.EndpointFacts) string {
	if facts.WriteShape == models.WriteShapeComplexInvariants ||
		facts.WriteShape == models.WriteShapeAuditTrail ||
		facts.WriteShape == models.WriteShapeEventSourced {
		return fmt.Sprintf("%s write shape carries business rules beyond simple CRUD", facts.WriteShape)
	}
	return fmt.Sprintf("mutation touching %d entities goes beyond single-entity CRUD", facts.EntitiesAffected)
}
