package models

import "fmt"

// QueryShape describes the read access pattern of an endpoint
type QueryShape string

const (
	// QueryShapeNone means the endpoint declares no read pattern
	QueryShapeNone QueryShape = ""

	// QueryShapeSingleByID is a point lookup by primary key
	QueryShapeSingleByID QueryShape = "single_by_id"

	// QueryShapeFilteredList is a filtered/paged collection read
	QueryShapeFilteredList QueryShape = "filtered_list"

	// QueryShapeMultiJoin is a read spanning several entities
	QueryShapeMultiJoin QueryShape = "multi_join"

	// QueryShapeAggregation is a grouped/summarized read
	QueryShapeAggregation QueryShape = "aggregation"

	// QueryShapeFullTextSearch is a text search read
	QueryShapeFullTextSearch QueryShape = "full_text_search"

	// QueryShapeRealtimeDashboard is a continuously refreshed read
	QueryShapeRealtimeDashboard QueryShape = "realtime_dashboard"
)

// Valid reports whether the query shape is a known value
func (q QueryShape) Valid() bool {
	switch q {
	case QueryShapeNone, QueryShapeSingleByID, QueryShapeFilteredList,
		QueryShapeMultiJoin, QueryShapeAggregation,
		QueryShapeFullTextSearch, QueryShapeRealtimeDashboard:
		return true
	}
	return false
}

// Complex reports whether the query shape goes beyond simple CRUD reads
func (q QueryShape) Complex() bool {
	switch q {
	case QueryShapeMultiJoin, QueryShapeAggregation,
		QueryShapeFullTextSearch, QueryShapeRealtimeDashboard:
		return true
	}
	return false
}

// WriteShape describes the mutation pattern of an endpoint
type WriteShape string

const (
	// WriteShapeNone means the endpoint performs no writes (read-only)
	WriteShapeNone WriteShape = ""

	// WriteShapeSimpleCrud is a plain create/update/delete
	WriteShapeSimpleCrud WriteShape = "simple_crud"

	// WriteShapeValidationRules is a write guarded by input validation
	WriteShapeValidationRules WriteShape = "validation_rules"

	// WriteShapeComplexInvariants is a write that must uphold business invariants,
	// typically involving irreversible side effects (payments, external captures)
	WriteShapeComplexInvariants WriteShape = "complex_invariants"

	// WriteShapeAuditTrail is a write that must leave an audit record
	WriteShapeAuditTrail WriteShape = "audit_trail"

	// WriteShapeEventSourced is a write persisted as an event stream
	WriteShapeEventSourced WriteShape = "event_sourced"
)

// Valid reports whether the write shape is a known value
func (w WriteShape) Valid() bool {
	switch w {
	case WriteShapeNone, WriteShapeSimpleCrud, WriteShapeValidationRules,
		WriteShapeComplexInvariants, WriteShapeAuditTrail, WriteShapeEventSourced:
		return true
	}
	return false
}

// ExternalFacing reports whether the write shape implies interaction with
// slow or external systems (used for saga step timeout defaults)
func (w WriteShape) ExternalFacing() bool {
	switch w {
	case WriteShapeComplexInvariants, WriteShapeAuditTrail, WriteShapeEventSourced:
		return true
	}
	return false
}

// EntityFact names one entity touched by an endpoint. The first entity listed
// is the aggregate root. WriteShape may refine the endpoint-level write shape
// for the saga step that will act on this entity.
type EntityFact struct {
	Name       string     `yaml:"name" json:"name"`
	WriteShape WriteShape `yaml:"write_shape,omitempty" json:"write_shape,omitempty"`
}

// EndpointFacts is the normalized description of one API endpoint, the sole
// input to the recommendation engine. Immutable per call.
type EndpointFacts struct {
	// EntitiesAffected is the number of entities the operation touches (0 = pure read)
	EntitiesAffected int `yaml:"entities_affected" json:"entities_affected"`

	// ReadWriteRatio is reads per write; ignored (treated as unbounded) for read-only endpoints
	ReadWriteRatio float64 `yaml:"read_write_ratio,omitempty" json:"read_write_ratio,omitempty"`

	// QueryShape is the read access pattern, if any
	QueryShape QueryShape `yaml:"query_shape,omitempty" json:"query_shape,omitempty"`

	// WriteShape is the mutation pattern; absent means read-only
	WriteShape WriteShape `yaml:"write_shape,omitempty" json:"write_shape,omitempty"`

	// ServicesInvolved is the number of bounded contexts touched (1 = single service)
	ServicesInvolved int `yaml:"services_involved" json:"services_involved"`

	// AuditCritical marks endpoints whose changes must be traceable
	AuditCritical bool `yaml:"audit_critical,omitempty" json:"audit_critical,omitempty"`

	// LongRunning marks operations that may span beyond one request/transaction
	LongRunning bool `yaml:"long_running,omitempty" json:"long_running,omitempty"`

	// Entities optionally names the touched entities in order, root first
	Entities []EntityFact `yaml:"entities,omitempty" json:"entities,omitempty"`
}

// IsReadOnly reports whether the endpoint only reads: a query shape is set
// and no write shape is declared
func (f EndpointFacts) IsReadOnly() bool {
	return f.QueryShape != QueryShapeNone && f.WriteShape == WriteShapeNone
}

// Normalize fills derivable fields: when entities are named but
// entities_affected was omitted, the count is taken from the list, and
// an omitted services_involved defaults to 1 (a single bounded context,
// the natural reading for endpoints that never leave their own service)
func (f *EndpointFacts) Normalize() {
	if f.EntitiesAffected == 0 && len(f.Entities) > 0 {
		f.EntitiesAffected = len(f.Entities)
	}
	if f.ServicesInvolved == 0 {
		f.ServicesInvolved = 1
	}
}

// EntityNames returns the ordered entity names, padded with placeholder
// names when fewer entities are named than entities_affected declares.
// The result always has max(EntitiesAffected, len(Entities)) elements.
func (f EndpointFacts) EntityNames() []string {
	n := f.EntitiesAffected
	if len(f.Entities) > n {
		n = len(f.Entities)
	}
	names := make([]string, 0, n)
	for _, e := range f.Entities {
		names = append(names, e.Name)
	}
	for i := len(names); i < n; i++ {
		names = append(names, fmt.Sprintf("entity-%d", i+1))
	}
	return names
}

// EntityWriteShape returns the declared write shape for a named entity,
// or WriteShapeNone when the entity is unnamed or declares none
func (f EndpointFacts) EntityWriteShape(name string) WriteShape {
	for _, e := range f.Entities {
		if e.Name == name {
			return e.WriteShape
		}
	}
	return WriteShapeNone
}

// Validate checks structural invariants on the facts. It returns an
// *InvalidFactsError describing the first violation found, or nil.
// Validation runs before any classification: the engine never sees
// invalid facts.
func (f EndpointFacts) Validate() error {
	if f.EntitiesAffected < 0 {
		return &InvalidFactsError{
			Field:   "entities_affected",
			Message: "must be >= 0",
			Value:   f.EntitiesAffected,
		}
	}
	if f.ServicesInvolved < 1 {
		return &InvalidFactsError{
			Field:   "services_involved",
			Message: "must be >= 1",
			Value:   f.ServicesInvolved,
		}
	}
	if !f.QueryShape.Valid() {
		return &InvalidFactsError{
			Field:   "query_shape",
			Message: "unknown query shape",
			Value:   string(f.QueryShape),
		}
	}
	if !f.WriteShape.Valid() {
		return &InvalidFactsError{
			Field:   "write_shape",
			Message: "unknown write shape",
			Value:   string(f.WriteShape),
		}
	}
	if f.ReadWriteRatio < 0 {
		return &InvalidFactsError{
			Field:   "read_write_ratio",
			Message: "must be >= 0",
			Value:   f.ReadWriteRatio,
		}
	}
	for i, e := range f.Entities {
		if e.Name == "" {
			return &InvalidFactsError{
				Field:   fmt.Sprintf("entities[%d].name", i),
				Message: "must not be empty",
				Value:   "",
			}
		}
		if !e.WriteShape.Valid() {
			return &InvalidFactsError{
				Field:   fmt.Sprintf("entities[%d].write_shape", i),
				Message: "unknown write shape",
				Value:   string(e.WriteShape),
			}
		}
	}
	return nil
}

// InvalidFactsError reports structurally invalid endpoint facts.
// The caller must fix the input; the same input will never succeed on retry.
type InvalidFactsError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e *InvalidFactsError) Error() string {
	return fmt.Sprintf("invalid facts: %s: %s (got %v)", e.Field, e.Message, e.Value)
}

// Endpoint pairs an endpoint name with its facts as authored in a facts file
type Endpoint struct {
	Name  string        `yaml:"name" json:"name"`
	Facts EndpointFacts `yaml:",inline" json:"facts"`
}

// FactsDefaults holds file-level overrides applied to every endpoint
type FactsDefaults struct {
	// ReadStepTimeoutSeconds overrides the saga timeout for read/validation steps
	ReadStepTimeoutSeconds int `yaml:"read_step_timeout_seconds,omitempty" json:"read_step_timeout_seconds,omitempty"`

	// ExternalStepTimeoutSeconds overrides the saga timeout for external-system steps
	ExternalStepTimeoutSeconds int `yaml:"external_step_timeout_seconds,omitempty" json:"external_step_timeout_seconds,omitempty"`
}

// FactsFile is one parsed facts document describing a set of endpoints
type FactsFile struct {
	Name      string        `yaml:"name" json:"name"`
	Defaults  FactsDefaults `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Endpoints []Endpoint    `yaml:"endpoints" json:"endpoints"`

	// FilePath is the absolute source path, set by the parser
	FilePath string `yaml:"-" json:"-"`
}
