package domain

import "slices"

// Content is the localized text of a prompt entry.
type Content struct {
	Title       string `json:"title" yaml:"title"`
	Prompt      string `json:"prompt" yaml:"prompt"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Remark      string `json:"remark" yaml:"remark"`
}

// PromptEntry is a single user-submitted prompt.
// Entries are owned by the catalog and must be treated as read-only;
// use Clone before adjusting tags.
type PromptEntry struct {
	ID      int                `json:"id" yaml:"id"`
	Content map[Locale]Content `json:"content" yaml:"content"`
	Tags    []TagID            `json:"tags" yaml:"tags"`
	Weight  int                `json:"weight" yaml:"weight"`
	Website string             `json:"website,omitempty" yaml:"website,omitempty"`
}

// Localized returns the content for the given locale.
// Missing locales yield an empty Content, which matches nothing in search.
func (e *PromptEntry) Localized(l Locale) Content {
	return e.Content[l]
}

// SearchText is the concatenation searched by the facet filter:
// title + prompt + description + remark for the locale.
func (e *PromptEntry) SearchText(l Locale) string {
	c := e.Content[l]
	return c.Title + c.Prompt + c.Description + c.Remark
}

// HasTag reports whether the entry carries the tag.
func (e *PromptEntry) HasTag(t TagID) bool {
	return slices.Contains(e.Tags, t)
}

// Clone returns a shallow copy whose tag slice can be modified independently.
// Content is shared; it is never modified after load.
func (e PromptEntry) Clone() PromptEntry {
	e.Tags = slices.Clone(e.Tags)
	return e
}

// ByWeightDesc orders entries by descending weight. Use with slices.SortStableFunc
// so equal weights keep catalog order.
func ByWeightDesc(a, b PromptEntry) int {
	return b.Weight - a.Weight
}
