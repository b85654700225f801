package api

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcerptKeepsRuneBoundaries(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 10))

	// "Söder" in the middle of the cut: the ö is two bytes, so a naive
	// byte slice at 6 would split it.
	s := "café Söderberg"
	out := excerpt(s, 6)
	assert.True(t, utf8.ValidString(out), "excerpt %q is not valid UTF-8", out)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.LessOrEqual(t, len(out), 6+len("..."))

	long := strings.Repeat("né", 40)
	for max := 1; max <= 12; max++ {
		assert.True(t, utf8.ValidString(excerpt(long, max)), "max=%d", max)
	}
}

func TestExtractSuggestion(t *testing.T) {
	got, ok := extractSuggestion(`Sure! Here you go: {"question": "What did the sea smell like?", "theme": "places"} Hope that helps.`)
	require.True(t, ok)
	assert.Equal(t, "What did the sea smell like?", got.Question)
	assert.Equal(t, "places", got.Theme)

	_, ok = extractSuggestion("no json here at all")
	assert.False(t, ok)

	_, ok = extractSuggestion(`{"theme": "places"}`)
	assert.False(t, ok, "a suggestion without a question is useless")
}
