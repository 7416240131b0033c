package engine

import (
	"reflect"
	"testing"

	"github.com/harrison/advisor/internal/models"
)

func TestScore_FactorTable(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name  string
		facts models.EndpointFacts
		want  int
	}{
		{
			name:  "floor is one",
			facts: models.EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, WriteShape: models.WriteShapeSimpleCrud},
			want:  1,
		},
		{
			name:  "two entities add two",
			facts: models.EndpointFacts{EntitiesAffected: 2, ServicesInvolved: 1, WriteShape: models.WriteShapeSimpleCrud},
			want:  3,
		},
		{
			name:  "four entities add four",
			facts: models.EndpointFacts{EntitiesAffected: 4, ServicesInvolved: 1, WriteShape: models.WriteShapeSimpleCrud},
			want:  5,
		},
		{
			name:  "two services add three",
			facts: models.EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 2, WriteShape: models.WriteShapeSimpleCrud},
			want:  4,
		},
		{
			name:  "four services add five",
			facts: models.EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 4, WriteShape: models.WriteShapeSimpleCrud},
			want:  6,
		},
		{
			name:  "validation rules add one",
			facts: models.EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, WriteShape: models.WriteShapeValidationRules},
			want:  2,
		},
		{
			name:  "complex invariants add two",
			facts: models.EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, WriteShape: models.WriteShapeComplexInvariants},
			want:  3,
		},
		{
			name:  "audit trail adds three",
			facts: models.EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, WriteShape: models.WriteShapeAuditTrail},
			want:  4,
		},
		{
			name:  "event sourced adds three",
			facts: models.EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, WriteShape: models.WriteShapeEventSourced},
			want:  4,
		},
		{
			name:  "long running adds two",
			facts: models.EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, WriteShape: models.WriteShapeSimpleCrud, LongRunning: true},
			want:  3,
		},
		{
			name: "everything maxed clamps to ten",
			facts: models.EndpointFacts{
				EntitiesAffected: 4,
				ServicesInvolved: 4,
				WriteShape:       models.WriteShapeEventSourced,
				LongRunning:      true,
			},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Score(tt.facts)
			if got.Value != tt.want {
				t.Errorf("expected score %d, got %d", tt.want, got.Value)
			}
		})
	}
}

// Every valid facts combination must score inside [1,10]
func TestScore_ClampProperty(t *testing.T) {
	e := NewDefault()

	writeShapes := []models.WriteShape{
		models.WriteShapeNone,
		models.WriteShapeSimpleCrud,
		models.WriteShapeValidationRules,
		models.WriteShapeComplexInvariants,
		models.WriteShapeAuditTrail,
		models.WriteShapeEventSourced,
	}

	for entities := 0; entities <= 6; entities++ {
		for services := 1; services <= 6; services++ {
			for _, ws := range writeShapes {
				for _, longRunning := range []bool{false, true} {
					facts := models.EndpointFacts{
						EntitiesAffected: entities,
						ServicesInvolved: services,
						WriteShape:       ws,
						LongRunning:      longRunning,
					}
					got := e.Score(facts)
					if got.Value < 1 || got.Value > 10 {
						t.Fatalf("score %d out of [1,10] for %+v", got.Value, facts)
					}
				}
			}
		}
	}
}

func TestScore_FactorsSortedByContribution(t *testing.T) {
	e := NewDefault()

	// entities=2 (+2), services=2 (+3), audit trail (+3), long running (+2)
	got := e.Score(models.EndpointFacts{
		EntitiesAffected: 2,
		ServicesInvolved: 2,
		WriteShape:       models.WriteShapeAuditTrail,
		LongRunning:      true,
	})

	want := []models.ScoreFactor{
		{Name: factorServices, Points: 3},
		{Name: factorWriteShape, Points: 3},
		{Name: factorEntities, Points: 2},
		{Name: factorLongRunning, Points: 2},
	}

	if !reflect.DeepEqual(got.Factors, want) {
		t.Errorf("expected factors %v, got %v", want, got.Factors)
	}
	if got.Value != 10 {
		t.Errorf("expected score 10, got %d", got.Value)
	}
}

func TestScore_ZeroFactorsOmitted(t *testing.T) {
	e := NewDefault()

	got := e.Score(models.EndpointFacts{
		EntitiesAffected: 1,
		ServicesInvolved: 1,
		WriteShape:       models.WriteShapeSimpleCrud,
	})

	if len(got.Factors) != 0 {
		t.Errorf("expected no contributing factors, got %v", got.Factors)
	}
}

func TestScore_CustomWeights(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.LongRunningPoints = 5
	e := New(cfg, DefaultTimeoutConfig())

	got := e.Score(models.EndpointFacts{
		EntitiesAffected: 1,
		ServicesInvolved: 1,
		LongRunning:      true,
	})

	if got.Value != 6 {
		t.Errorf("expected score 6 with custom long-running weight, got %d", got.Value)
	}
}

func TestScore_Deterministic(t *testing.T) {
	e := NewDefault()

	facts := models.EndpointFacts{
		EntitiesAffected: 3,
		ServicesInvolved: 2,
		WriteShape:       models.WriteShapeValidationRules,
		LongRunning:      true,
	}

	first := e.Score(facts)
	second := e.Score(facts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("scoring not deterministic: %+v vs %+v", first, second)
	}
}
