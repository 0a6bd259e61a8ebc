package normalize

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

// repeatThreshold is the occurrence count a line (or boilerplate pattern)
// must exceed before it is treated as a running header or footer.
const repeatThreshold = 3

var protectedLines = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^introduction$`),
	regexp.MustCompile(`(?i)^chapter\b`),
	regexp.MustCompile(`^Slide \d+:`),
	regexp.MustCompile(`^\|`),
}

func isProtectedLine(trimmed string) bool {
	if textutil.IsMarker(trimmed) {
		return true
	}
	for _, re := range protectedLines {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// RemoveRepeatingLines drops every line whose trimmed text occurs more than
// three times, unless it is a section heading, a slide header or part of a
// table or formula block.
func RemoveRepeatingLines(text string) string {
	lines := textutil.SplitLines(text)
	blocks := textutil.ProtectedMask(lines)

	counts := make(map[string]int)
	for i, line := range lines {
		if blocks[i] {
			continue
		}
		if t := strings.TrimSpace(line); t != "" {
			counts[t]++
		}
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if !blocks[i] && counts[t] > repeatThreshold && !isProtectedLine(t) {
			continue
		}
		out = append(out, line)
	}
	return textutil.JoinLines(out)
}

type boilerplatePattern struct {
	name string
	re   *regexp.Regexp
}

var boilerplatePatterns = []boilerplatePattern{
	{"institution", regexp.MustCompile(`(?i)^(?:the\s+)?(?:university|college|institute|department|school|faculty)\s+of\s+\S.{0,80}$`)},
	{"page-stamp", regexp.MustCompile(`(?i)^page\s+\d+(?:\s*(?:of|/)\s*\d+)?$`)},
	{"initials", regexp.MustCompile(`^(?:[-–—]\s*)?[A-Z]\.\s?[A-Z]\.(?:\s?[A-Z]\.)?$`)},
	{"copyright", regexp.MustCompile(`(?i)^(?:©|\(c\)|copyright\b).*$`)},
	{"numeric-date", regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}$`)},
	{"written-date", regexp.MustCompile(`(?i)^(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}$`)},
}

// RemoveBoilerplate removes institution headers, page stamps, initial
// signatures, copyright notices and date stamps. A pattern only fires when
// it matches more than three lines, so a single dated title slide survives.
func RemoveBoilerplate(text string) string {
	lines := textutil.SplitLines(text)
	blocks := textutil.ProtectedMask(lines)

	matched := make([]int, len(lines))
	for i := range matched {
		matched[i] = -1
	}
	hits := make([]int, len(boilerplatePatterns))
	for i, line := range lines {
		if blocks[i] {
			continue
		}
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		for p, bp := range boilerplatePatterns {
			if bp.re.MatchString(t) {
				matched[i] = p
				hits[p]++
				break
			}
		}
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if p := matched[i]; p >= 0 && hits[p] > repeatThreshold {
			continue
		}
		out = append(out, line)
	}
	return textutil.JoinLines(out)
}
