// Package textutil holds the low-level string helpers shared by the table
// detector, the normalizer and the metadata classifier.
package textutil

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Block markers emitted into normalized content.
const (
	TableStart   = "[TABLE]"
	TableEnd     = "[/TABLE]"
	FormulaFence = "$$"

	NoSlideTextMarker = "[No text content in this slide]"
)

// SlideErrorMarker is emitted in place of a slide whose XML cannot be parsed.
func SlideErrorMarker(n int) string {
	return "[Error parsing slide " + strconv.Itoa(n) + "]"
}

var reCRLF = regexp.MustCompile(`\r\n?`)

// EscapeRegex quotes every regular-expression metacharacter in s so it can be
// embedded in a pattern and matched literally.
func EscapeRegex(s string) string {
	return regexp.QuoteMeta(s)
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return reCRLF.ReplaceAllString(s, "\n")
}

// FoldLigatures replaces typographic ligatures (U+FB00..U+FB06) with their
// compatibility decomposition and non-breaking spaces with plain spaces.
// Other characters, superscripts included, are left alone.
func FoldLigatures(s string) string {
	if !strings.ContainsFunc(s, needsFold) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0xFB00 && r <= 0xFB06:
			b.WriteString(norm.NFKC.String(string(r)))
		case r == '\u00a0' || r == '\u202f':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsFold(r rune) bool {
	return (r >= 0xFB00 && r <= 0xFB06) || r == '\u00a0' || r == '\u202f'
}

// SplitLines splits s on LF. An empty string yields a single empty line.
func SplitLines(s string) []string {
	return strings.Split(s, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FirstNonBlankLine returns the first line of s that is not blank, trimmed.
func FirstNonBlankLine(s string) string {
	for _, line := range SplitLines(s) {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

// CountWords counts whitespace-separated tokens.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	if n == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return string(r)
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

// StartsWithLower reports whether the first non-space rune of s is a lowercase letter.
func StartsWithLower(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		return unicode.IsLower(r)
	}
	return false
}

// EndsWithWordChar reports whether the last non-space rune of s is a letter,
// digit or underscore.
func EndsWithWordChar(s string) bool {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsMarker reports whether a trimmed line is one of the block markers.
func IsMarker(line string) bool {
	t := strings.TrimSpace(line)
	return t == TableStart || t == TableEnd || t == FormulaFence
}

// ProtectedMask marks every line that belongs to a [TABLE]…[/TABLE] or $$…$$
// block, markers included. Stages use it to leave already-structured content
// untouched. An unterminated block extends to the end of the text.
func ProtectedMask(lines []string) []bool {
	mask := make([]bool, len(lines))
	inTable, inFormula := false, false
	for i, line := range lines {
		t := strings.TrimSpace(line)
		switch {
		case inTable:
			mask[i] = true
			if t == TableEnd {
				inTable = false
			}
		case inFormula:
			mask[i] = true
			if t == FormulaFence {
				inFormula = false
			}
		case t == TableStart:
			mask[i] = true
			inTable = true
		case t == FormulaFence:
			mask[i] = true
			inFormula = true
		}
	}
	return mask
}
