package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func repeatWith(line string, n int, body ...string) string {
	var parts []string
	for i := 0; i < n; i++ {
		parts = append(parts, line)
		if i < len(body) {
			parts = append(parts, body[i])
		}
	}
	return strings.Join(parts, "\n")
}

func TestRemoveRepeatingLines(t *testing.T) {
	t.Run("more than three removed", func(t *testing.T) {
		in := repeatWith("CS101 Notes", 4, "A", "B", "C", "D")
		assert.Equal(t, "A\nB\nC\nD", RemoveRepeatingLines(in))
	})

	t.Run("three kept", func(t *testing.T) {
		in := repeatWith("CS101 Notes", 3, "A", "B", "C")
		assert.Equal(t, in, RemoveRepeatingLines(in))
	})

	t.Run("protected headings kept", func(t *testing.T) {
		for _, line := range []string{"Introduction", "Chapter 2", "| a | b |"} {
			in := repeatWith(line, 5, "x", "y", "z", "w", "v")
			assert.Equal(t, in, RemoveRepeatingLines(in), line)
		}
	})

	t.Run("block contents not counted", func(t *testing.T) {
		in := "[TABLE]\n| 1 |\n| 1 |\n| 1 |\n| 1 |\n[/TABLE]\n[TABLE]\n[/TABLE]"
		assert.Equal(t, in, RemoveRepeatingLines(in))
	})
}

func TestRemoveBoilerplate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "page stamps repeated",
			in:   "Page 1\nA\nPage 2\nB\nPage 3\nC\nPage 4 of 4\nD",
			want: "A\nB\nC\nD",
		},
		{
			name: "page stamps below threshold",
			in:   "Page 1\nA\nPage 2\nB\nPage 3\nC",
			want: "Page 1\nA\nPage 2\nB\nPage 3\nC",
		},
		{
			name: "single copyright survives",
			in:   "© 2024 Someone\nBody",
			want: "© 2024 Someone\nBody",
		},
		{
			name: "dates and institutions",
			in:   "University of Somewhere\n01/02/2024\nx\nUniversity of Somewhere\n02/02/2024\ny\nUniversity of Somewhere\n03/02/2024\nz\nUniversity of Somewhere\n04/02/2024",
			want: "x\ny\nz",
		},
		{
			name: "initials signatures",
			in:   "J.D.\na\nJ. D.\nb\nJ.D.\nc\nJ.D.",
			want: "a\nb\nc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveBoilerplate(tt.in))
		})
	}
}
