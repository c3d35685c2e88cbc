package domain

import (
	"slices"
	"strings"
)

// Operator combines selected tags.
type Operator string

// Operators.
const (
	OperatorOR  Operator = "OR"
	OperatorAND Operator = "AND"
)

// ParseOperator returns AND for any casing of "and" and OR for everything else,
// including the empty string.
func ParseOperator(raw string) Operator {
	if strings.EqualFold(strings.TrimSpace(raw), string(OperatorAND)) {
		return OperatorAND
	}
	return OperatorOR
}

// FilterState is the visitor's current narrowing of the catalog.
// It is rebuilt from the URL on every navigation and never stored elsewhere.
type FilterState struct {
	// Tags is the selected tag set in registry order. Order carries no meaning.
	Tags     []TagID
	Operator Operator
	// Search is the free-text search; empty means absent.
	Search string
}

// DefaultFilterState is the unfiltered state shown before URL state is applied.
func DefaultFilterState() FilterState {
	return FilterState{Operator: OperatorOR}
}

// IsZero reports whether the state filters nothing.
func (s FilterState) IsZero() bool {
	return len(s.Tags) == 0 && s.Search == ""
}

// HasTag reports whether t is selected.
func (s FilterState) HasTag(t TagID) bool {
	return slices.Contains(s.Tags, t)
}

// Equal compares two states treating Tags as a set and an empty operator as OR.
func (s FilterState) Equal(o FilterState) bool {
	if ParseOperator(string(s.Operator)) != ParseOperator(string(o.Operator)) || s.Search != o.Search {
		return false
	}
	if len(s.Tags) != len(o.Tags) {
		return false
	}
	for _, t := range s.Tags {
		if !o.HasTag(t) {
			return false
		}
	}
	return true
}

// WithTagToggled returns a copy with t added or removed, canonicalized by reg.
func (s FilterState) WithTagToggled(t TagID, reg *TagRegistry) FilterState {
	tags := slices.Clone(s.Tags)
	if i := slices.Index(tags, t); i >= 0 {
		tags = slices.Delete(tags, i, i+1)
	} else {
		tags = append(tags, t)
	}
	s.Tags = reg.Canonical(tags)
	return s
}
