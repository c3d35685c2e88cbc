package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRegistry() *TagRegistry {
	return NewTagRegistry(
		Tag{ID: TagFavorite, Label: "Favorite"},
		Tag{ID: "writing", Label: "Writing"},
		Tag{ID: "code", Label: "Code"},
		Tag{ID: TagContribute, Label: "Contribute"},
		Tag{ID: "code", Label: "Duplicate"},
	)
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		raw  string
		want Operator
	}{
		{"AND", OperatorAND},
		{"and", OperatorAND},
		{" And ", OperatorAND},
		{"OR", OperatorOR},
		{"", OperatorOR},
		{"XOR", OperatorOR},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOperator(tt.raw))
		})
	}
}

func TestFilterState_Equal(t *testing.T) {
	a := FilterState{Tags: []TagID{"writing", "code"}, Operator: OperatorAND, Search: "poem"}
	b := FilterState{Tags: []TagID{"code", "writing"}, Operator: OperatorAND, Search: "poem"}
	assert.True(t, a.Equal(b), "tag order must not matter")

	c := b
	c.Operator = OperatorOR
	assert.False(t, a.Equal(c))

	assert.True(t, FilterState{}.Equal(DefaultFilterState()), "empty operator means OR")
}

func TestFilterState_WithTagToggled(t *testing.T) {
	reg := testRegistry()
	s := DefaultFilterState()

	s = s.WithTagToggled("code", reg)
	s = s.WithTagToggled("writing", reg)
	assert.Equal(t, []TagID{"writing", "code"}, s.Tags, "tags follow registry order")

	s = s.WithTagToggled("code", reg)
	assert.Equal(t, []TagID{"writing"}, s.Tags)

	s = s.WithTagToggled("unknown", reg)
	assert.Equal(t, []TagID{"writing"}, s.Tags, "unregistered tags are dropped")
}

func TestTagRegistry(t *testing.T) {
	reg := testRegistry()

	assert.Equal(t, 4, reg.Len())
	tag, ok := reg.Lookup("code")
	assert.True(t, ok)
	assert.Equal(t, "Code", tag.Label, "first definition wins")

	var ids []TagID
	for _, tag := range reg.Selectable() {
		ids = append(ids, tag.ID)
	}
	assert.Equal(t, []TagID{"writing", "code"}, ids)

	assert.Nil(t, reg.Canonical([]TagID{"nope"}))
	assert.Equal(t, []TagID{"writing", "code"}, reg.Canonical([]TagID{"code", "writing", "code"}))
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		raw  string
		want Locale
		ok   bool
	}{
		{"zh-Hans", LocaleZh, true},
		{"en", LocaleEn, true},
		{"pt_BR", LocalePt, true},
		{"EN-us", LocaleEn, true},
		{"xx", Locale("xx"), false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseLocale(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}

	assert.Equal(t, LocaleJa, LocaleOrDefault("klingon", LocaleJa))
}

func TestPromptEntry_CloneIsIndependent(t *testing.T) {
	e := PromptEntry{ID: 1, Tags: []TagID{"writing"}}
	c := e.Clone()
	c.Tags = append(c.Tags[:0], TagFavorite)

	assert.Equal(t, []TagID{"writing"}, e.Tags)
	assert.True(t, c.HasTag(TagFavorite))
}

func TestUser_LoveUnlove(t *testing.T) {
	u := &User{}
	assert.True(t, u.Love(3))
	assert.False(t, u.Love(3))
	assert.True(t, NewFavoritesSet(u.Favorites.Loves...).Contains(3))
	assert.True(t, u.Unlove(3))
	assert.False(t, u.Unlove(3))
	assert.Empty(t, u.Favorites.Loves)
}
