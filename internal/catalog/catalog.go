// Package catalog holds the immutable prompt catalog and its tag registry.
package catalog

import (
	"github.com/aishort/showcase-server/internal/domain"
)

// Catalog is an immutable, insertion-ordered collection of prompt entries.
// Nothing in the module mutates a Catalog after construction; readers that need
// to adjust an entry work on domain.PromptEntry.Clone.
type Catalog struct {
	entries []domain.PromptEntry
	index   map[int]int
	tags    *domain.TagRegistry
}

// New validates entries against the registry and builds a Catalog.
// The entries slice is copied; callers may reuse it.
func New(tags *domain.TagRegistry, entries []domain.PromptEntry) (*Catalog, error) {
	if err := validate(tags, entries); err != nil {
		return nil, err
	}

	c := &Catalog{
		entries: make([]domain.PromptEntry, len(entries)),
		index:   make(map[int]int, len(entries)),
		tags:    tags,
	}
	for i, e := range entries {
		c.entries[i] = e.Clone()
		c.index[e.ID] = i
	}
	return c, nil
}

// Entries returns the entries in catalog order.
// The returned slice is a fresh copy; entry tag slices are shared and read-only.
func (c *Catalog) Entries() []domain.PromptEntry {
	out := make([]domain.PromptEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Get returns a clone of the entry with the given id.
func (c *Catalog) Get(id int) (domain.PromptEntry, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.PromptEntry{}, false
	}
	return c.entries[i].Clone(), true
}

// Has reports whether an entry with id exists.
func (c *Catalog) Has(id int) bool {
	_, ok := c.index[id]
	return ok
}

// Tags returns the tag registry.
func (c *Catalog) Tags() *domain.TagRegistry {
	return c.tags
}
