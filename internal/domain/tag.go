package domain

// TagID identifies a tag in the registry, e.g. "writing".
type TagID string

// Reserved tags.
const (
	// TagFavorite is synthetic: the favorites overlay adds or removes it per user.
	TagFavorite TagID = "favorite"
	// TagContribute marks community submissions and is never offered as a facet.
	TagContribute TagID = "contribute"
)

// Tag is a registered facet.
type Tag struct {
	ID          TagID  `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color" yaml:"color"`
}

// TagRegistry is the closed, ordered set of known tags.
type TagRegistry struct {
	order []TagID
	byID  map[TagID]Tag
}

// NewTagRegistry builds a registry from tags in display order.
// Later duplicates of an id are ignored.
func NewTagRegistry(tags ...Tag) *TagRegistry {
	r := &TagRegistry{
		order: make([]TagID, 0, len(tags)),
		byID:  make(map[TagID]Tag, len(tags)),
	}
	for _, t := range tags {
		if _, dup := r.byID[t.ID]; dup {
			continue
		}
		r.order = append(r.order, t.ID)
		r.byID[t.ID] = t
	}
	return r
}

// Has reports whether id is registered.
func (r *TagRegistry) Has(id TagID) bool {
	if r == nil {
		return false
	}
	_, ok := r.byID[id]
	return ok
}

// Lookup returns the tag definition for id.
func (r *TagRegistry) Lookup(id TagID) (Tag, bool) {
	if r == nil {
		return Tag{}, false
	}
	t, ok := r.byID[id]
	return t, ok
}

// All returns every tag in display order.
func (r *TagRegistry) All() []Tag {
	if r == nil {
		return nil
	}
	out := make([]Tag, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered tags.
func (r *TagRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Selectable returns the tags offered in the tag bar.
// The contribute tag and the synthetic favorite tag are never offered.
func (r *TagRegistry) Selectable() []Tag {
	all := r.All()
	out := all[:0:0]
	for _, t := range all {
		if t.ID == TagContribute || t.ID == TagFavorite {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Canonical filters ids down to registered tags without duplicates,
// returned in registry order.
func (r *TagRegistry) Canonical(ids []TagID) []TagID {
	if r == nil || len(ids) == 0 {
		return nil
	}
	want := make(map[TagID]struct{}, len(ids))
	for _, id := range ids {
		if r.Has(id) {
			want[id] = struct{}{}
		}
	}
	if len(want) == 0 {
		return nil
	}
	out := make([]TagID, 0, len(want))
	for _, id := range r.order {
		if _, ok := want[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
