package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

var (
	rePageOfPage   = regexp.MustCompile(`(?i)\b(?:page|slide)\s+\d+\s+of\s+\d+\b`)
	rePageNumber   = regexp.MustCompile(`^\s*\d{1,4}\s*$`)
	reManyNewlines = regexp.MustCompile(`\n{3,}`)
)

// RemoveRedundantLineBreaks is the generic finalization: it drops page
// numbers and "Page X of Y" stamps, joins sentences broken across a single
// line break and collapses runs of blank lines. Table and formula blocks
// keep their line structure. The function is idempotent.
func RemoveRedundantLineBreaks(text string) string {
	text = textutil.NormalizeNewlines(text)
	for {
		next := lineBreakPass(text)
		if next == text {
			return next
		}
		text = next
	}
}

// lineBreakPass strictly shortens its input (counting newlines) whenever it
// changes it, so iterating it reaches a fixpoint.
func lineBreakPass(text string) string {
	lines := textutil.SplitLines(text)
	protected := textutil.ProtectedMask(lines)

	kept := make([]string, 0, len(lines))
	keptProtected := make([]bool, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if !protected[i] {
			if rePageOfPage.MatchString(line) {
				line = strings.TrimRightFunc(rePageOfPage.ReplaceAllString(line, ""), unicode.IsSpace)
				if strings.TrimSpace(line) == "" {
					continue
				}
			}
			if rePageNumber.MatchString(line) {
				continue
			}
		}
		kept = append(kept, line)
		keptProtected = append(keptProtected, protected[i])
	}

	merged := make([]string, 0, len(kept))
	for i := 0; i < len(kept); i++ {
		line := kept[i]
		for !keptProtected[i] && i+1 < len(kept) && !keptProtected[i+1] && shouldJoin(line, kept[i+1]) {
			line = line + " " + strings.TrimSpace(kept[i+1])
			i++
		}
		merged = append(merged, line)
	}

	out := reManyNewlines.ReplaceAllString(textutil.JoinLines(merged), "\n\n")
	return strings.TrimSpace(out)
}

func shouldJoin(cur, next string) bool {
	return textutil.EndsWithWordChar(cur) && textutil.StartsWithLower(next)
}
