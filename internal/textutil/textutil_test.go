package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc", NormalizeNewlines("a\r\nb\rc"))
	assert.Equal(t, "plain\n", NormalizeNewlines("plain\n"))
}

func TestFoldLigatures(t *testing.T) {
	assert.Equal(t, "efficient flow", FoldLigatures("eﬃcient ﬂow"))
	assert.Equal(t, "10 km", FoldLigatures("10\u00a0km"))
	assert.Equal(t, "x² ≤ y", FoldLigatures("x² ≤ y"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdef", 4, "abc…"},
		{"héllo", 1, "h"},
		{"any", 0, "any"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
	}
}

func TestLineHelpers(t *testing.T) {
	assert.Equal(t, "first", FirstNonBlankLine("\n  \n first \nsecond"))
	assert.Equal(t, "", FirstNonBlankLine(" \n"))
	assert.Equal(t, 3, CountWords(" one two\tthree "))
	assert.True(t, StartsWithLower("  continued"))
	assert.False(t, StartsWithLower("Sentence"))
	assert.True(t, EndsWithWordChar("word_ "))
	assert.False(t, EndsWithWordChar("end."))
	assert.Equal(t, []string{""}, SplitLines(""))
	assert.Equal(t, "a\nb", JoinLines(SplitLines("a\nb")))
	assert.Equal(t, "[Error parsing slide 4]", SlideErrorMarker(4))
	assert.Equal(t, `a\.b\*`, EscapeRegex("a.b*"))
}

func TestProtectedMask(t *testing.T) {
	lines := []string{
		"intro",
		TableStart,
		"| a | b |",
		TableEnd,
		"between",
		FormulaFence,
		"E = mc^2",
		FormulaFence,
		"after",
		TableStart,
		"unterminated",
	}
	want := []bool{false, true, true, true, false, true, true, true, false, true, true}
	assert.Equal(t, want, ProtectedMask(lines))
	assert.True(t, IsMarker(" [/TABLE] "))
	assert.False(t, IsMarker("[TABLE] x"))
}
