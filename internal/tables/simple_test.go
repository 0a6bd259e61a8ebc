package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSimpleTables(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "three rows",
			in:   "Prices\nApple  1.00\nPear  2.50\nPlum  0.75\nEnd",
			want: "Prices\n[TABLE]\n| Apple | 1.00 |\n| Pear | 2.50 |\n| Plum | 0.75 |\n[/TABLE]\nEnd",
		},
		{
			name: "two rows left alone",
			in:   "Apple  1.00\nPear  2.50\nEnd",
			want: "Apple  1.00\nPear  2.50\nEnd",
		},
		{
			name: "existing table untouched",
			in:   "[TABLE]\n| a  b |\n| c  d |\n| e  f |\n[/TABLE]",
			want: "[TABLE]\n| a  b |\n| c  d |\n| e  f |\n[/TABLE]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSimpleTables(tt.in))
		})
	}
}

func TestFormatRows(t *testing.T) {
	assert.Equal(t, "[TABLE]\n[/TABLE]", FormatRows(nil))
	assert.Equal(t, "[TABLE]\n| a | b |\n| 1 |  |\n[/TABLE]", FormatRows([][]string{{"a", "b"}, {"1", ""}}))
	assert.Equal(t, "| x |", FormatRow([]string{"x"}))
}
