package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejoinHyphenation(t *testing.T) {
	assert.Equal(t, "algorithm design", RejoinHyphenation("algo-\nrithm design"))
	assert.Equal(t, "algorithm", RejoinHyphenation("algo-  \n  rithm"))
	assert.Equal(t, "Well-\nKnown", RejoinHyphenation("Well-\nKnown"))
	assert.Equal(t, "x -\n\ny", RejoinHyphenation("x -\n\ny"))
}

func TestCleanStrayPipes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"inline pipe", "alpha | beta", "alpha beta"},
		{"pipe only line", "a\n| |\nb", "a\nb"},
		{"full row kept", "| x | y |", "| x | y |"},
		{"table block kept", "[TABLE]\n|x\n[/TABLE]", "[TABLE]\n|x\n[/TABLE]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanStrayPipes(tt.in))
		})
	}
}

func TestDedupePunctuation(t *testing.T) {
	assert.Equal(t, "Wait, what? No!", DedupePunctuation("Wait,, what?? No!!!"))
	assert.Equal(t, "std::vector...", DedupePunctuation("std::vector..."))
}

func TestPDFPipeline(t *testing.T) {
	in := "Course Notes\nIntro to algo-\nrithms is fun\nCourse Notes\nx=y+z\nCourse Notes\nName  Score\nAnn  90\nBob  85\nCourse Notes\n7"
	want := "Intro to algorithms is fun\n$$\nx = y+z\n$$\n[TABLE]\n| Name | Score |\n| Ann | 90 |\n| Bob | 85 |\n[/TABLE]"

	assert.Equal(t, want, NewPDFPipeline(nil).Run(in, &Context{}))
}
