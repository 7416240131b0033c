package engine

import (
	"sort"

	"github.com/harrison/advisor/internal/models"
)

// Factor names reported in complexity scores
const (
	factorEntities    = "entities affected"
	factorServices    = "services involved"
	factorWriteShape  = "write shape"
	factorLongRunning = "long-running"
)

// Score computes the complexity score: 1 plus the sum of the weighted
// factor points, clamped to [1,10]. Pure and deterministic. Non-zero
// contributing factors are reported in descending contribution order;
// ties keep the factor table order (entities, services, write shape,
// long-running) so reports stay reproducible.
func (e *Engine) Score(facts models.EndpointFacts) models.ComplexityScore {
	cfg := e.scoring

	// Factors in table order; zero-point entries are dropped below
	factors := []models.ScoreFactor{
		{Name: factorEntities, Points: entityPoints(facts.EntitiesAffected, cfg)},
		{Name: factorServices, Points: servicePoints(facts.ServicesInvolved, cfg)},
		{Name: factorWriteShape, Points: writePoints(facts.WriteShape, cfg)},
	}
	if facts.LongRunning {
		factors = append(factors, models.ScoreFactor{Name: factorLongRunning, Points: cfg.LongRunningPoints})
	}

	total := 0
	contributing := make([]models.ScoreFactor, 0, len(factors))
	for _, f := range factors {
		total += f.Points
		if f.Points > 0 {
			contributing = append(contributing, f)
		}
	}

	sort.SliceStable(contributing, func(i, j int) bool {
		return contributing[i].Points > contributing[j].Points
	})

	value := 1 + total
	if value > 10 {
		value = 10
	}
	if value < 1 {
		value = 1
	}

	return models.ComplexityScore{
		Value:   value,
		Factors: contributing,
	}
}

func entityPoints(entities int, cfg ScoringConfig) int {
	switch {
	case entities >= 4:
		return cfg.EntitiesManyPoints
	case entities >= 2:
		return cfg.EntitiesFewPoints
	default:
		return 0
	}
}

func servicePoints(services int, cfg ScoringConfig) int {
	switch {
	case services >= 4:
		return cfg.ServicesManyPoints
	case services >= 2:
		return cfg.ServicesFewPoints
	default:
		return 0
	}
}

func writePoints(shape models.WriteShape, cfg ScoringConfig) int {
	switch shape {
	case models.WriteShapeValidationRules:
		return cfg.WriteValidationPoints
	case models.WriteShapeComplexInvariants:
		return cfg.WriteInvariantsPoints
	case models.WriteShapeAuditTrail, models.WriteShapeEventSourced:
		return cfg.WriteAuditPoints
	default:
		return 0
	}
}
