package engine

import "github.com/harrison/advisor/internal/models"

// AnalyzeBoundary determines whether the operation's entities fit one
// consistency boundary. An operation fits a single aggregate iff it stays
// in one service, touches at most two entities, and is not event-sourced.
//
// When the operation does not fit, every entity beyond the root is
// recorded as a cross-aggregate reference. References are by identity
// only: an aggregate must never embed another aggregate's state, so the
// transactional boundary stays small.
func (e *Engine) AnalyzeBoundary(facts models.EndpointFacts, intent models.IntentResult) models.BoundaryResult {
	fits := facts.ServicesInvolved == 1 &&
		facts.EntitiesAffected <= 2 &&
		facts.WriteShape != models.WriteShapeEventSourced

	if fits {
		return models.BoundaryResult{FitsSingleAggregate: true}
	}

	names := facts.EntityNames()
	var refs []string
	if len(names) > 1 {
		refs = names[1:]
	}

	return models.BoundaryResult{
		FitsSingleAggregate:      false,
		CrossAggregateReferences: refs,
	}
}
