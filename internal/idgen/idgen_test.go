package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormat(t *testing.T) {
	id := New(PrefixGift)

	require.True(t, strings.HasPrefix(id, "gift_"), "got %q", id)
	suffix := strings.TrimPrefix(id, "gift_")
	assert.Len(t, suffix, 32)
	assert.NotContains(t, suffix, "-")
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New(PrefixIdea)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
