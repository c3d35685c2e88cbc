// Package facet narrows a catalog by selected tags, operator and search text.
package facet

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/domain"
)

// Mode is the filtering branch chosen for a set of selected tags.
type Mode int

const (
	// ModeSearch applies when no tags are selected: search text filters and
	// results are sorted by descending weight.
	ModeSearch Mode = iota
	// ModeTags applies when at least one tag is selected: only tag matching
	// runs, the search text is ignored and catalog order is kept.
	ModeTags
)

func (m Mode) String() string {
	if m == ModeTags {
		return "tags"
	}
	return "search"
}

// ModeOf returns the mode Filter uses for selected.
func ModeOf(selected []domain.TagID) Mode {
	if len(selected) > 0 {
		return ModeTags
	}
	return ModeSearch
}

// Filter returns the subset of entries visible for the given inputs.
// It never modifies entries and always returns a new slice, which is empty
// rather than nil when nothing matches.
func Filter(entries []domain.PromptEntry, selected []domain.TagID, op domain.Operator, search string, locale domain.Locale) []domain.PromptEntry {
	if ModeOf(selected) == ModeTags {
		return byTags(entries, selected, op)
	}
	return bySearch(entries, search, locale)
}

// Apply runs Filter over the catalog for a FilterState.
func Apply(c *catalog.Catalog, state domain.FilterState, locale domain.Locale) []domain.PromptEntry {
	return Filter(c.Entries(), state.Tags, state.Operator, state.Search, locale)
}

func bySearch(entries []domain.PromptEntry, search string, locale domain.Locale) []domain.PromptEntry {
	out := make([]domain.PromptEntry, 0, len(entries))
	if search == "" {
		out = append(out, entries...)
	} else {
		// A Caser keeps state and is not safe for concurrent use.
		fold := cases.Fold()
		needle := fold.String(search)
		for _, e := range entries {
			if strings.Contains(fold.String(e.SearchText(locale)), needle) {
				out = append(out, e)
			}
		}
	}
	slices.SortStableFunc(out, domain.ByWeightDesc)
	return out
}

func byTags(entries []domain.PromptEntry, selected []domain.TagID, op domain.Operator) []domain.PromptEntry {
	and := domain.ParseOperator(string(op)) == domain.OperatorAND

	out := make([]domain.PromptEntry, 0, len(entries))
	for _, e := range entries {
		if len(e.Tags) == 0 {
			continue
		}
		if matches(e, selected, and) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e domain.PromptEntry, selected []domain.TagID, and bool) bool {
	if and {
		for _, t := range selected {
			if !e.HasTag(t) {
				return false
			}
		}
		return true
	}
	return slices.ContainsFunc(selected, e.HasTag)
}
