package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixMathSpacing(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x=y+1", "x = y+1"},
		{"a = b", "a = b"},
		{"a<=b", "a<=b"},
		{"if a==b", "if a==b"},
		{"x ^ 2", "x^2"},
		{"x_ 1", "x_1"},
		{"a≤b", "a ≤ b"},
		{"A∪B  ∩C", "A ∪ B ∩ C"},
		{"= 5", "= 5"},
		{"| a=b |", "| a=b |"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FixMathSpacing(tt.in))
		})
	}
}

func TestIsFormulaLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"E = mc^2", true},
		{"y = sin x", true},
		{"f(x) = x_1 / 2", true},
		{"x = 5", false},
		{"no equals + here", false},
		{"http://a.com?x=1+2", false},
		{"The value of the function is equal = to something large and interesting when considered carefully overall + more", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFormulaLine(tt.line))
		})
	}
}

func TestWrapFormulas(t *testing.T) {
	in := "Intro\na = b + c\nd = e * f\nEnd\ng = h - i"
	want := "Intro\n$$\na = b + c\nd = e * f\n$$\nEnd\n$$\ng = h - i\n$$"

	out := WrapFormulas(in)
	assert.Equal(t, want, out)
	assert.Equal(t, out, WrapFormulas(out))
}
