package normalize

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

var (
	reHyphenBreak  = regexp.MustCompile(`([a-z])-[ \t]*\n[ \t]*([a-z])`)
	rePipeOnly     = regexp.MustCompile(`^[\s|]+$`)
	rePipeRow      = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	reStrayPipe    = regexp.MustCompile(`[ \t]*\|[ \t]*`)
	reRepeatedMark = regexp.MustCompile(`,{2,}|;{2,}|!{2,}|\?{2,}`)
)

// RejoinHyphenation joins words split by a hyphen at a line end
// ("algo-\nrithm" becomes "algorithm").
func RejoinHyphenation(text string) string {
	return reHyphenBreak.ReplaceAllString(text, "$1$2")
}

// CleanStrayPipes removes pipe characters left behind by column rules.
// Lines inside table blocks and lines that are complete "| … |" rows are kept.
func CleanStrayPipes(text string) string {
	return mapUnprotected(text, func(line string) (string, bool) {
		if !strings.Contains(line, "|") {
			return line, true
		}
		if rePipeOnly.MatchString(line) {
			return "", false
		}
		if rePipeRow.MatchString(line) {
			return line, true
		}
		return reStrayPipe.ReplaceAllString(line, " "), true
	})
}

// DedupePunctuation collapses repeated commas, semicolons and marks.
func DedupePunctuation(text string) string {
	return mapUnprotected(text, func(line string) (string, bool) {
		return reRepeatedMark.ReplaceAllStringFunc(line, func(m string) string { return m[:1] }), true
	})
}

// mapUnprotected applies fn to every line outside table and formula blocks.
// fn returns false to drop the line.
func mapUnprotected(text string, fn func(string) (string, bool)) string {
	lines := textutil.SplitLines(text)
	blocks := textutil.ProtectedMask(lines)
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if blocks[i] {
			out = append(out, line)
			continue
		}
		if mapped, keep := fn(line); keep {
			out = append(out, mapped)
		}
	}
	return textutil.JoinLines(out)
}
