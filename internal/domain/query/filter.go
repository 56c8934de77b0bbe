// Package query defines the filtered/paginated query contract shared by all
// entity list and aggregation operations. A query is always the logical AND of
// the clauses that were actually supplied; absent parameters contribute no
// constraint.
package query

import (
	"crm/internal/errors"
)

// Operator is the comparison kind of a single filter clause.
type Operator string

const (
	// OpEquals matches rows whose field equals the value exactly.
	OpEquals Operator = "equals"
	// OpContains matches rows whose field contains the value, case-insensitively.
	OpContains Operator = "contains"
	// OpGreaterThan matches rows whose field is strictly greater than the value.
	OpGreaterThan Operator = "gt"
	// OpLessThan matches rows whose field is strictly less than the value.
	OpLessThan Operator = "lt"
	// OpIn matches rows whose field is a member of the value set.
	OpIn Operator = "in"
)

// String returns the string representation of the operator.
func (o Operator) String() string {
	return string(o)
}

// IsValid checks if the operator is a valid value.
func (o Operator) IsValid() bool {
	switch o {
	case OpEquals, OpContains, OpGreaterThan, OpLessThan, OpIn:
		return true
	default:
		return false
	}
}

// Filter is one clause of a conjunctive predicate. Field names are logical
// (API-level) names; the persistence layer maps them to columns through a
// per-entity allow-list.
type Filter struct {
	Field    string   `json:"field" validate:"required"`
	Operator Operator `json:"operator" validate:"required"`
	Value    any      `json:"value"`
}

// Sentinel errors for filter validation. An unrecognized operator or a field
// outside the entity's allow-list rejects the whole query instead of being
// silently dropped.
var (
	ErrUnknownOperator = errors.New("unknown filter operator")
	ErrFieldNotAllowed = errors.New("filter field not allowed")
	ErrSortNotAllowed  = errors.New("sort field not allowed")
)

// ValidateFilters checks every clause against the operator set and the given
// field allow-list. It returns the first violation found.
func ValidateFilters(filters []Filter, allowedFields map[string]struct{}) error {
	for _, f := range filters {
		if !f.Operator.IsValid() {
			return errors.Wrapf(ErrUnknownOperator, "operator %q on field %q", f.Operator, f.Field)
		}
		if _, ok := allowedFields[f.Field]; !ok {
			return errors.Wrapf(ErrFieldNotAllowed, "field %q", f.Field)
		}
	}

	return nil
}

// SortOrder is the direction of a sort clause.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid checks if the sort order is a valid value.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// Sort names the logical field to order by and the direction. A zero Sort means
// the entity's default ordering (newest first).
type Sort struct {
	By    string    `json:"sortBy"`
	Order SortOrder `json:"sortOrder"`
}

// Validate checks the sort field against the allow-list and normalizes the
// direction, defaulting to descending.
func (s *Sort) Validate(allowedFields map[string]struct{}) error {
	if s.By == "" {
		return nil
	}
	if _, ok := allowedFields[s.By]; !ok {
		return errors.Wrapf(ErrSortNotAllowed, "field %q", s.By)
	}
	if s.Order == "" {
		s.Order = SortDesc
	}
	if !s.Order.IsValid() {
		return errors.Errorf("unknown sort order %q", s.Order)
	}

	return nil
}
