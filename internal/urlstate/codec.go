// Package urlstate keeps the filter state and the location query in sync.
package urlstate

import (
	"net/url"
	"strings"

	"github.com/aishort/showcase-server/internal/domain"
)

// Query parameter names.
const (
	ParamTags     = "tags"
	ParamOperator = "operator"
	ParamName     = "name"
)

// ReadTags returns the registered tags named by the tags parameter.
// The parameter may repeat and each value may hold a comma separated list.
// Unknown or malformed ids are dropped.
func ReadTags(q url.Values, reg *domain.TagRegistry) []domain.TagID {
	var raw []domain.TagID
	for _, v := range q[ParamTags] {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				raw = append(raw, domain.TagID(part))
			}
		}
	}
	return reg.Canonical(raw)
}

// ReadOperator returns AND when the operator parameter says so and OR otherwise.
func ReadOperator(q url.Values) domain.Operator {
	return domain.ParseOperator(q.Get(ParamOperator))
}

// ReadSearchName returns the search text, empty when absent.
func ReadSearchName(q url.Values) string {
	return q.Get(ParamName)
}

// Parse decodes a raw query into a FilterState. Tags, operator and search are
// read in that order from the same snapshot. An unparsable query yields the
// default state.
func Parse(rawQuery string, reg *domain.TagRegistry) domain.FilterState {
	q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil && len(q) == 0 {
		return domain.DefaultFilterState()
	}
	return FromValues(q, reg)
}

// FromValues decodes already parsed query values into a FilterState.
func FromValues(q url.Values, reg *domain.TagRegistry) domain.FilterState {
	tags := ReadTags(q, reg)
	op := ReadOperator(q)
	search := ReadSearchName(q)
	return domain.FilterState{Tags: tags, Operator: op, Search: search}
}

// Encode writes state into a copy of base and leaves unrelated parameters alone.
// OR and empty search are encoded by removing their parameters.
func Encode(base url.Values, state domain.FilterState) url.Values {
	q := make(url.Values, len(base)+3)
	for k, v := range base {
		q[k] = append([]string(nil), v...)
	}

	q.Del(ParamTags)
	for _, t := range state.Tags {
		q.Add(ParamTags, string(t))
	}

	if domain.ParseOperator(string(state.Operator)) == domain.OperatorAND {
		q.Set(ParamOperator, string(domain.OperatorAND))
	} else {
		q.Del(ParamOperator)
	}

	if state.Search == "" {
		q.Del(ParamName)
	} else {
		q.Set(ParamName, state.Search)
	}
	return q
}

// EncodeQuery is Encode followed by url.Values.Encode on a raw query.
func EncodeQuery(rawQuery string, state domain.FilterState) string {
	base, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return Encode(base, state).Encode()
}
