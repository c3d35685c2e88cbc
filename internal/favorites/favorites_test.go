package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aishort/showcase-server/internal/domain"
)

func ids(entries []domain.PromptEntry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func sample() []domain.PromptEntry {
	return []domain.PromptEntry{
		{ID: 1, Weight: 1, Tags: []domain.TagID{"writing"}},
		{ID: 2, Weight: 5, Tags: []domain.TagID{"code", domain.TagFavorite}},
		{ID: 3, Weight: 9, Tags: []domain.TagID{"code"}},
		{ID: 4, Weight: 5, Tags: nil},
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		session   Session
		wantFav   []int
		wantOther []int
	}{
		{
			name:      "anonymous uses raw tags",
			session:   Anonymous,
			wantFav:   []int{2},
			wantOther: []int{3, 4, 1},
		},
		{
			name:      "user favorites override static flags",
			session:   FromUser(&domain.User{Favorites: domain.Favorites{Loves: []int{1, 4}}}),
			wantFav:   []int{4, 1},
			wantOther: []int{3, 2},
		},
		{
			name:      "authenticated without favorites",
			session:   FromUser(&domain.User{}),
			wantFav:   []int{},
			wantOther: []int{3, 2, 4, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fav, other := Partition(sample(), tt.session)
			assert.Equal(t, tt.wantFav, ids(fav))
			assert.Equal(t, tt.wantOther, ids(other))
		})
	}
}

func TestPartition_DoesNotMutateInput(t *testing.T) {
	entries := sample()
	s := FromUser(&domain.User{Favorites: domain.Favorites{Loves: []int{1}}})

	fav, _ := Partition(entries, s)
	assert.True(t, fav[0].HasTag(domain.TagFavorite))

	assert.Equal(t, []domain.TagID{"writing"}, entries[0].Tags)
	assert.Equal(t, []domain.TagID{"code", domain.TagFavorite}, entries[1].Tags)

	again, _ := Partition(entries, Anonymous)
	assert.Equal(t, []int{2}, ids(again))
}

func TestEffective(t *testing.T) {
	e := domain.PromptEntry{ID: 7, Tags: []domain.TagID{"code"}}

	loved := Effective(e, FromUser(&domain.User{Favorites: domain.Favorites{Loves: []int{7}}}))
	assert.Equal(t, []domain.TagID{"code", domain.TagFavorite}, loved.Tags)
	assert.Equal(t, []domain.TagID{"code"}, e.Tags)

	assert.Equal(t, e.Tags, Effective(e, Anonymous).Tags)
}

func TestStatic(t *testing.T) {
	s := Static(FromUser(nil))
	assert.False(t, s.Session(context.Background()).Authenticated)
}
