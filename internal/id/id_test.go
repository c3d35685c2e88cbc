package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	v, err := Generate("usr")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v, "usr-"))
	assert.Len(t, v, len("usr-")+21)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		v := MustGenerate(PrefixToken)
		_, dup := seen[v]
		require.False(t, dup, "duplicate id %s", v)
		seen[v] = struct{}{}
	}
}

func TestTypedIDs(t *testing.T) {
	u, err := NewUserID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, PrefixUser+"-"))

	tok, err := NewTokenID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tok, PrefixToken+"-"))
}
