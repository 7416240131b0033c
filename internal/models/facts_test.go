package models

import (
	"reflect"
	"strings"
	"testing"
)

func TestEndpointFacts_Validate(t *testing.T) {
	tests := []struct {
		name      string
		facts     EndpointFacts
		wantField string
	}{
		{
			name:  "valid facts",
			facts: EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, WriteShape: WriteShapeSimpleCrud},
		},
		{
			name:  "pure read with zero entities",
			facts: EndpointFacts{EntitiesAffected: 0, ServicesInvolved: 1, QueryShape: QueryShapeFilteredList},
		},
		{
			name:      "negative entities",
			facts:     EndpointFacts{EntitiesAffected: -1, ServicesInvolved: 1},
			wantField: "entities_affected",
		},
		{
			name:      "zero services",
			facts:     EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 0},
			wantField: "services_involved",
		},
		{
			name:      "unknown query shape",
			facts:     EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, QueryShape: "cursor_scan"},
			wantField: "query_shape",
		},
		{
			name:      "unknown write shape",
			facts:     EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, WriteShape: "bulk"},
			wantField: "write_shape",
		},
		{
			name:      "negative read write ratio",
			facts:     EndpointFacts{EntitiesAffected: 1, ServicesInvolved: 1, ReadWriteRatio: -2},
			wantField: "read_write_ratio",
		},
		{
			name: "unnamed entity",
			facts: EndpointFacts{EntitiesAffected: 2, ServicesInvolved: 1,
				Entities: []EntityFact{{Name: "Order"}, {Name: ""}}},
			wantField: "entities[1].name",
		},
		{
			name: "entity with unknown write shape",
			facts: EndpointFacts{EntitiesAffected: 2, ServicesInvolved: 1,
				Entities: []EntityFact{{Name: "Order"}, {Name: "Payment", WriteShape: "capture"}}},
			wantField: "entities[1].write_shape",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.facts.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			invalid, ok := err.(*InvalidFactsError)
			if !ok {
				t.Fatalf("expected *InvalidFactsError, got %T", err)
			}
			if invalid.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, invalid.Field)
			}
		})
	}
}

func TestInvalidFactsError_Message(t *testing.T) {
	err := &InvalidFactsError{Field: "services_involved", Message: "must be >= 1", Value: 0}
	msg := err.Error()

	for _, fragment := range []string{"invalid facts", "services_involved", "must be >= 1"} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("expected %q in error message, got %q", fragment, msg)
		}
	}
}

func TestEndpointFacts_IsReadOnly(t *testing.T) {
	tests := []struct {
		name  string
		facts EndpointFacts
		want  bool
	}{
		{"query only", EndpointFacts{QueryShape: QueryShapeMultiJoin}, true},
		{"query plus write", EndpointFacts{QueryShape: QueryShapeMultiJoin, WriteShape: WriteShapeSimpleCrud}, false},
		{"write only", EndpointFacts{WriteShape: WriteShapeSimpleCrud}, false},
		{"neither", EndpointFacts{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.facts.IsReadOnly(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEndpointFacts_Normalize(t *testing.T) {
	facts := EndpointFacts{
		ServicesInvolved: 1,
		Entities:         []EntityFact{{Name: "Order"}, {Name: "Payment"}},
	}
	facts.Normalize()

	if facts.EntitiesAffected != 2 {
		t.Errorf("expected entities_affected derived as 2, got %d", facts.EntitiesAffected)
	}

	// Explicit counts are never overwritten
	explicit := EndpointFacts{EntitiesAffected: 3, Entities: []EntityFact{{Name: "Order"}}}
	explicit.Normalize()
	if explicit.EntitiesAffected != 3 {
		t.Errorf("expected explicit count preserved, got %d", explicit.EntitiesAffected)
	}
}

func TestEndpointFacts_NormalizeDefaultsServices(t *testing.T) {
	// Omitting services_involved means a single bounded context
	facts := EndpointFacts{QueryShape: QueryShapeAggregation, ReadWriteRatio: 50}
	facts.Normalize()

	if facts.ServicesInvolved != 1 {
		t.Errorf("expected omitted services_involved to default to 1, got %d", facts.ServicesInvolved)
	}
	if err := facts.Validate(); err != nil {
		t.Errorf("normalized facts must validate, got %v", err)
	}

	// Declared counts pass through untouched
	declared := EndpointFacts{ServicesInvolved: 3}
	declared.Normalize()
	if declared.ServicesInvolved != 3 {
		t.Errorf("expected declared services_involved preserved, got %d", declared.ServicesInvolved)
	}
}

func TestEndpointFacts_EntityNames(t *testing.T) {
	tests := []struct {
		name  string
		facts EndpointFacts
		want  []string
	}{
		{
			name:  "all named",
			facts: EndpointFacts{EntitiesAffected: 2, Entities: []EntityFact{{Name: "Order"}, {Name: "Payment"}}},
			want:  []string{"Order", "Payment"},
		},
		{
			name:  "padded with placeholders",
			facts: EndpointFacts{EntitiesAffected: 3, Entities: []EntityFact{{Name: "Order"}}},
			want:  []string{"Order", "entity-2", "entity-3"},
		},
		{
			name:  "no names at all",
			facts: EndpointFacts{EntitiesAffected: 2},
			want:  []string{"entity-1", "entity-2"},
		},
		{
			name:  "zero entities",
			facts: EndpointFacts{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.facts.EntityNames()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestQueryShape_Complex(t *testing.T) {
	complex := []QueryShape{QueryShapeMultiJoin, QueryShapeAggregation, QueryShapeFullTextSearch, QueryShapeRealtimeDashboard}
	simple := []QueryShape{QueryShapeNone, QueryShapeSingleByID, QueryShapeFilteredList}

	for _, q := range complex {
		if !q.Complex() {
			t.Errorf("expected %s to be complex", q)
		}
	}
	for _, q := range simple {
		if q.Complex() {
			t.Errorf("expected %s to be simple", q)
		}
	}
}

func TestWriteShape_ExternalFacing(t *testing.T) {
	external := []WriteShape{WriteShapeComplexInvariants, WriteShapeAuditTrail, WriteShapeEventSourced}
	local := []WriteShape{WriteShapeNone, WriteShapeSimpleCrud, WriteShapeValidationRules}

	for _, w := range external {
		if !w.ExternalFacing() {
			t.Errorf("expected %s to be external-facing", w)
		}
	}
	for _, w := range local {
		if w.ExternalFacing() {
			t.Errorf("expected %s to be local", w)
		}
	}
}
