// Package showcase composes the catalog, filter, favorites overlay, pagination
// window and copy counters into the view a client renders.
package showcase

import (
	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/domain"
	"github.com/aishort/showcase-server/internal/facet"
	"github.com/aishort/showcase-server/internal/favorites"
	"github.com/aishort/showcase-server/internal/pagination"
)

// Card is one rendered entry.
type Card struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Prompt      string         `json:"prompt"`
	Description string         `json:"description,omitempty"`
	Remark      string         `json:"remark"`
	Tags        []domain.TagID `json:"tags"`
	Weight      int            `json:"weight"`
	Website     string         `json:"website,omitempty"`
	Favorite    bool           `json:"favorite"`
	CopyCount   int            `json:"copy_count"`
}

// TagChip is a tag bar entry.
type TagChip struct {
	domain.Tag
	Selected bool `json:"selected"`
}

// View is everything the presentation layer needs for one frame.
type View struct {
	State         domain.FilterState `json:"-"`
	Mode          string             `json:"mode"`
	InputValue    string             `json:"input_value"`
	Locale        domain.Locale      `json:"locale"`
	English       bool               `json:"english"`
	Authenticated bool               `json:"authenticated"`
	Tags          []TagChip          `json:"tags"`
	Favorites     []Card             `json:"favorites"`
	Others        []Card             `json:"others"`
	TotalOthers   int                `json:"total_others"`
	ShowLoadMore  bool               `json:"show_load_more"`
	Expanded      bool               `json:"expanded"`
	NoResults     bool               `json:"no_results"`
}

// CountFunc returns the copy count of an entry.
type CountFunc func(id int) int

// RenderInput holds the inputs of one stateless render.
type RenderInput struct {
	Catalog  *catalog.Catalog
	State    domain.FilterState
	Session  favorites.Session
	Locale   domain.Locale
	English  bool
	Expanded bool
	// PageSize and Threshold default to the pagination package defaults.
	PageSize  int
	Threshold int
	Counts    CountFunc
}

// Render runs the pipeline catalog, facet filter, favorites overlay,
// pagination window for a single frame.
func Render(in RenderInput) View {
	if !in.Locale.Valid() {
		in.Locale = domain.DefaultLocale
	}
	if in.PageSize <= 0 {
		in.PageSize = pagination.DefaultPageSize
	}
	if in.Threshold <= 0 {
		in.Threshold = pagination.DefaultThreshold
	}
	if in.Counts == nil {
		in.Counts = func(int) int { return 0 }
	}

	filtered := facet.Apply(in.Catalog, in.State, in.Locale)
	fav, other := favorites.Partition(filtered, in.Session)
	page := pagination.Slice(other, in.Expanded, in.PageSize, in.Threshold)

	display := in.Locale
	if in.English {
		display = domain.LocaleEn
	}

	v := View{
		State:         in.State,
		Mode:          facet.ModeOf(in.State.Tags).String(),
		InputValue:    in.State.Search,
		Locale:        in.Locale,
		English:       in.English,
		Authenticated: in.Session.Authenticated,
		Tags:          chips(in.Catalog.Tags(), in.State),
		Favorites:     cards(fav, display, in.Locale, in.Counts),
		Others:        cards(page.Items, display, in.Locale, in.Counts),
		TotalOthers:   page.Total,
		ShowLoadMore:  page.HasMore,
		Expanded:      in.Expanded,
		NoResults:     len(filtered) == 0,
	}
	return v
}

func chips(reg *domain.TagRegistry, state domain.FilterState) []TagChip {
	tags := reg.Selectable()
	out := make([]TagChip, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagChip{Tag: t, Selected: state.HasTag(t.ID)})
	}
	return out
}

func cards(entries []domain.PromptEntry, display, fallback domain.Locale, counts CountFunc) []Card {
	out := make([]Card, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewCard(e, display, fallback, counts(e.ID)))
	}
	return out
}

// NewCard renders e in the display locale, falling back when it has no such content.
func NewCard(e domain.PromptEntry, display, fallback domain.Locale, copyCount int) Card {
	c, ok := e.Content[display]
	if !ok {
		c = e.Localized(fallback)
	}
	return Card{
		ID:          e.ID,
		Title:       c.Title,
		Prompt:      c.Prompt,
		Description: c.Description,
		Remark:      c.Remark,
		Tags:        e.Tags,
		Weight:      e.Weight,
		Website:     e.Website,
		Favorite:    e.HasTag(domain.TagFavorite),
		CopyCount:   copyCount,
	}
}
