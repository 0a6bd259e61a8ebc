package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCaption(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Table 1: Results", true},
		{"TABLE 2. Summary", true},
		{"Tab. 3: Errors", true},
		{"table IV: Ablation", true},
		{"The table shows", false},
		{"Table of contents", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCaption(tt.line))
		})
	}
}

func TestDetectScientificTables(t *testing.T) {
	d := NewDetector(DefaultOptions(), nil)
	in := "Overview\nTable 1: Scores\nModel    Score\nBaseline    71.2\nOurs    80.5\nDone."
	want := "Overview\nTable 1: Scores\n[TABLE]\n| Model | Score |\n| Baseline | 71.2 |\n| Ours | 80.5 |\n[/TABLE]\nDone."

	assert.Equal(t, want, d.DetectScientificTables(in))
	assert.Equal(t, want, d.DetectAll(in))
}

func TestDetectScientificTables_RewritesByPosition(t *testing.T) {
	d := NewDetector(DefaultOptions(), nil)
	in := "Model    Score\nOurs    80.5\nPrelude.\nTable 2: Again\nModel    Score\nOurs    80.5"
	want := "Model    Score\nOurs    80.5\nPrelude.\nTable 2: Again\n[TABLE]\n| Model | Score |\n| Ours | 80.5 |\n[/TABLE]"

	assert.Equal(t, want, d.DetectScientificTables(in))
}

func TestDetectScientificTables_NoCaption(t *testing.T) {
	d := NewDetector(DefaultOptions(), nil)
	in := "a    b\nc    d"
	assert.Equal(t, in, d.DetectScientificTables(in))
}

func TestDetectScientificTables_MultipleCaptions(t *testing.T) {
	d := NewDetector(DefaultOptions(), nil)
	in := "Table 1: A\nx    y\n1    2\nTable 2: B\nk    v\n3    4"
	want := "Table 1: A\n[TABLE]\n| x | y |\n| 1 | 2 |\n[/TABLE]\nTable 2: B\n[TABLE]\n| k | v |\n| 3 | 4 |\n[/TABLE]"

	assert.Equal(t, want, d.DetectScientificTables(in))
}
