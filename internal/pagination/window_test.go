package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		expanded bool
		wantLen  int
		wantMore bool
	}{
		{"60 collapsed truncates", 60, false, 24, true},
		{"40 collapsed shows all", 40, false, 40, false},
		{"50 collapsed shows all", 50, false, 50, false},
		{"51 collapsed truncates", 51, false, 24, true},
		{"60 expanded shows all", 60, true, 60, false},
		{"empty", 0, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(DefaultPageSize, DefaultThreshold)
			if tt.expanded {
				w.Expand()
			}

			p := Apply(w, seq(tt.total))
			assert.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.wantMore, p.HasMore)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestWindow_KeepsOrder(t *testing.T) {
	p := Apply(New(0, 0), seq(60))
	assert.Equal(t, seq(24), p.Items)
}

func TestWindow_ExpandAndReset(t *testing.T) {
	w := New(24, 50)
	assert.False(t, w.Expanded())

	w.Expand()
	w.Expand()
	assert.True(t, w.Expanded())

	w.Reset()
	assert.False(t, w.Expanded())
}

func TestNew_Normalizes(t *testing.T) {
	w := New(-1, 0)
	assert.Equal(t, DefaultPageSize, w.PageSize())
	assert.Equal(t, DefaultThreshold, w.Threshold())

	w = New(30, 10)
	assert.Equal(t, 30, w.Threshold(), "threshold never below page size")
}
