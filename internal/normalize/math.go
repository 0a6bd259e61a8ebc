package normalize

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

// spacedOperators get exactly one space on each side.
var spacedOperators = map[rune]bool{
	'=': true, '≠': true, '≤': true, '≥': true, '≈': true, '≡': true,
	'±': true, '×': true, '÷': true, '→': true, '⇒': true, '⇔': true,
	'∈': true, '∉': true, '⊂': true, '⊆': true, '∪': true, '∩': true,
}

var (
	reScriptSpacing = regexp.MustCompile(`[ \t]*([\^_])[ \t]*`)
	reFormulaOp     = regexp.MustCompile(`[+\-*/^×÷·]`)
	reMathTerm      = regexp.MustCompile(`\b(?:sin|cos|tan|log|ln|exp|lim|sum|int|sqrt)\b|[∑∫√∂]|\w\^\w|\w_\w`)
	reProseWord     = regexp.MustCompile(`^[A-Za-z]{4,}[.,;:!?]?$`)
)

// maxProseWords bounds how many long words a formula line may contain.
const maxProseWords = 8

func isComparison(r rune) bool {
	return strings.ContainsRune("=<>!:", r)
}

// FixMathSpacing puts single spaces around relation and set operators and
// removes spaces around superscript and subscript markers. Operators that
// are part of ==, <=, >=, != or := are left alone.
func FixMathSpacing(text string) string {
	return mapUnprotected(text, func(line string) (string, bool) {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			return line, true
		}
		return reScriptSpacing.ReplaceAllString(spaceOperators(line), "$1"), true
	})
}

func spaceOperators(line string) string {
	runes := []rune(line)
	out := make([]rune, 0, len(runes)+8)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !spacedOperators[r] || !standalone(runes, i) {
			out = append(out, r)
			continue
		}
		for len(out) > 0 && (out[len(out)-1] == ' ' || out[len(out)-1] == '\t') {
			out = out[:len(out)-1]
		}
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, r)
		j := i + 1
		for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
			j++
		}
		if j < len(runes) {
			out = append(out, ' ')
		}
		i = j - 1
	}
	return string(out)
}

// standalone reports whether runes[i] is not part of a compound operator.
func standalone(runes []rune, i int) bool {
	if runes[i] != '=' {
		return true
	}
	if i > 0 && isComparison(runes[i-1]) {
		return false
	}
	if i+1 < len(runes) && isComparison(runes[i+1]) {
		return false
	}
	return true
}

// IsFormulaLine reports whether line reads as an equation: it contains "="
// together with an arithmetic operator or a math term, and is not prose.
func IsFormulaLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" || strings.HasPrefix(t, "|") || strings.Contains(t, "://") || !strings.Contains(t, "=") {
		return false
	}
	withoutEq := strings.ReplaceAll(t, "=", " ")
	if !reFormulaOp.MatchString(withoutEq) && !reMathTerm.MatchString(t) {
		return false
	}
	prose := 0
	for _, tok := range strings.Fields(t) {
		if reProseWord.MatchString(tok) {
			prose++
		}
	}
	return prose <= maxProseWords
}

// WrapFormulas wraps each run of consecutive formula lines in $$ fences.
func WrapFormulas(text string) string {
	lines := textutil.SplitLines(text)
	blocks := textutil.ProtectedMask(lines)
	out := make([]string, 0, len(lines))

	inRun := false
	for i, line := range lines {
		formula := !blocks[i] && IsFormulaLine(line)
		switch {
		case formula && !inRun:
			out = append(out, textutil.FormulaFence)
			inRun = true
		case !formula && inRun:
			out = append(out, textutil.FormulaFence)
			inRun = false
		}
		out = append(out, line)
	}
	if inRun {
		out = append(out, textutil.FormulaFence)
	}
	return textutil.JoinLines(out)
}
