package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/domain"
)

func entry(id, weight int, title string, tags ...domain.TagID) domain.PromptEntry {
	return domain.PromptEntry{
		ID:     id,
		Weight: weight,
		Tags:   tags,
		Content: map[domain.Locale]domain.Content{
			domain.LocaleEn: {Title: title, Prompt: "prompt " + title, Remark: "remark"},
			domain.LocaleZh: {Title: "标题", Prompt: "提示", Remark: "备注"},
		},
	}
}

func ids(entries []domain.PromptEntry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFilter_Scenarios(t *testing.T) {
	entries := []domain.PromptEntry{
		entry(1, 5, "chat"),
		entry(2, 3, "poet", "writing"),
	}

	got := Filter(entries, nil, domain.OperatorOR, "", domain.LocaleEn)
	assert.Equal(t, []int{1, 2}, ids(got))

	got = Filter(entries, []domain.TagID{"writing"}, domain.OperatorOR, "", domain.LocaleEn)
	assert.Equal(t, []int{2}, ids(got), "empty tag sets are excluded in tag mode")
}

func TestFilter_Operators(t *testing.T) {
	entries := []domain.PromptEntry{
		entry(1, 1, "a", "writing"),
		entry(2, 9, "b", "writing", "code"),
		entry(3, 5, "c", "code"),
		entry(4, 7, "d"),
		entry(5, 2, "e", "games"),
	}
	selected := []domain.TagID{"writing", "code"}

	tests := []struct {
		name string
		op   domain.Operator
		want []int
	}{
		{"OR keeps any match in catalog order", domain.OperatorOR, []int{1, 2, 3}},
		{"AND requires every tag", domain.OperatorAND, []int{2}},
		{"empty operator is OR", "", []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(entries, selected, tt.op, "", domain.LocaleEn)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_TagModeIgnoresSearch(t *testing.T) {
	entries := []domain.PromptEntry{
		entry(1, 1, "alpha", "writing"),
		entry(2, 9, "beta", "writing"),
	}

	got := Filter(entries, []domain.TagID{"writing"}, domain.OperatorOR, "alpha", domain.LocaleEn)
	assert.Equal(t, []int{1, 2}, ids(got), "no weight sort and no search in tag mode")
	assert.Equal(t, ModeTags, ModeOf([]domain.TagID{"writing"}))
	assert.Equal(t, ModeSearch, ModeOf(nil))
}

func TestFilter_SearchOnly(t *testing.T) {
	entries := []domain.PromptEntry{
		entry(1, 1, "Write a Poem"),
		entry(2, 5, "code review"),
		entry(3, 5, "POEM generator"),
		entry(4, 5, "poems for kids"),
	}

	got := Filter(entries, nil, domain.OperatorOR, "poem", domain.LocaleEn)
	assert.Equal(t, []int{3, 4, 1}, ids(got), "weight desc, ties in catalog order")

	got = Filter(entries, nil, domain.OperatorOR, "标题", domain.LocaleZh)
	assert.Len(t, got, 4, "search uses the requested locale")

	got = Filter(entries, nil, domain.OperatorOR, "remarkprompt", domain.LocaleEn)
	assert.Empty(t, got, "fields are concatenated in title, prompt, description, remark order")

	got = Filter(entries, nil, domain.OperatorOR, "kidsremark", domain.LocaleEn)
	assert.Equal(t, []int{4}, ids(got))

	got = Filter(entries, nil, domain.OperatorOR, "nothing here", domain.LocaleEn)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_CaseFolding(t *testing.T) {
	entries := []domain.PromptEntry{entry(1, 1, "ÉCOLE Primaire")}
	got := Filter(entries, nil, domain.OperatorOR, "école", domain.LocaleEn)
	assert.Equal(t, []int{1}, ids(got))
}

func TestFilter_Idempotent(t *testing.T) {
	entries := []domain.PromptEntry{
		entry(1, 1, "a", "writing"),
		entry(2, 3, "b"),
		entry(3, 2, "c", "code"),
	}
	before := ids(entries)

	first := Filter(entries, nil, domain.OperatorOR, "", domain.LocaleEn)
	second := Filter(entries, nil, domain.OperatorOR, "", domain.LocaleEn)
	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, before, ids(entries), "input order untouched")
}

func TestApply(t *testing.T) {
	reg := domain.NewTagRegistry(domain.Tag{ID: "writing"}, domain.Tag{ID: "code"})
	c, err := catalog.New(reg, []domain.PromptEntry{
		entry(1, 5, "chat"),
		entry(2, 3, "poet", "writing"),
	})
	require.NoError(t, err)

	state := domain.FilterState{Tags: []domain.TagID{"writing"}, Operator: domain.OperatorAND}
	assert.Equal(t, []int{2}, ids(Apply(c, state, domain.LocaleEn)))
	assert.Equal(t, []int{1, 2}, ids(Apply(c, domain.DefaultFilterState(), domain.LocaleEn)))
}
