package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveRedundantLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapse blank runs", "Hello\n\n\n\nWorld", "Hello\n\nWorld"},
		{"crlf", "Hello\r\n\r\n\r\n\r\nWorld", "Hello\n\nWorld"},
		{"drop page number line", "Intro text.\n12\nMore text.", "Intro text.\nMore text."},
		{"drop page of pages", "Alpha.\nPage 3 of 10\nBeta.", "Alpha.\nBeta."},
		{"drop slide of slides inline", "Summary. Slide 2 of 9", "Summary."},
		{"merge broken sentence", "The quick brown\nfox jumps", "The quick brown fox jumps"},
		{"merge chain", "one\ntwo\nthree", "one two three"},
		{"keep paragraph break", "The quick brown\n\nfox jumps", "The quick brown\n\nfox jumps"},
		{"keep capitalized line", "First line\nSecond line", "First line\nSecond line"},
		{"trim trailing spaces", "a.  \nB", "a.\nB"},
		{"table block kept", "[TABLE]\n| a | b |\n| c | d |\n[/TABLE]", "[TABLE]\n| a | b |\n| c | d |\n[/TABLE]"},
		{"formula block kept", "$$\nx = a\nb = c\n$$", "$$\nx = a\nb = c\n$$"},
		{"no merge into marker", "ends here\n[TABLE]\n| a |\n[/TABLE]", "ends here\n[TABLE]\n| a |\n[/TABLE]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveRedundantLineBreaks(tt.in))
		})
	}
}

func TestRemoveRedundantLineBreaks_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"  leading\nand trailing  \n\n\n",
		"Slide 1:\nWelcome\n\n\n\nto the\ncourse\n3\nPage 1 of 2\n",
		"word\n  lower\n\n\n[TABLE]\n| x |\n[/TABLE]\nafter\nmore\n$$\na = b\n$$",
		"12\n\n\n13\nPage 2 of 4 text\ncontinues here\n",
	}
	for _, in := range inputs {
		once := RemoveRedundantLineBreaks(in)
		assert.Equal(t, once, RemoveRedundantLineBreaks(once), "input %q", in)
	}
}
