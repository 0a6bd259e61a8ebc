// Package metadata infers course and lecture identifiers and a difficulty
// level from normalized lecture text.
package metadata

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/constants"
)

var (
	reCourseID      = regexp.MustCompile(`([A-Z]{2,4})[-_ ]?(\d{3,4}[A-Z]?)`)
	reCourseIDLoose = regexp.MustCompile(`([A-Z]{2})[-_ ]?(\d{3})`)
	reLectureID     = regexp.MustCompile(`(?i)(lecture|week|session|unit)\s+(\d+|[IVX]+)`)
	reWeekNumber    = regexp.MustCompile(`(?i)\bweek[-_ ]?(\d{1,2})\b`)
)

// ExtractCourseID returns the first course code in text with separators
// removed ("CS 101" becomes "CS101"), or "Unknown".
func ExtractCourseID(text string) string {
	for _, re := range []*regexp.Regexp{reCourseID, reCourseIDLoose} {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1] + m[2]
		}
	}
	return constants.Unknown
}

// ExtractLectureID returns the first "Lecture 3" / "Week IV" style label with
// a capitalized prefix, or "Unknown".
func ExtractLectureID(text string) string {
	m := reLectureID.FindStringSubmatch(text)
	if m == nil {
		return constants.Unknown
	}
	prefix := strings.ToLower(m[1])
	return strings.ToUpper(prefix[:1]) + prefix[1:] + " " + strings.ToUpper(m[2])
}

// ExtractWeekFromTitle looks for a "week NN" label in a deck title.
func ExtractWeekFromTitle(title string) string {
	m := reWeekNumber.FindStringSubmatch(title)
	if m == nil {
		return constants.Unknown
	}
	return "Week " + strings.TrimLeft(m[1], "0")
}

// IsUnknown reports whether id is empty or the Unknown sentinel.
func IsUnknown(id string) bool {
	return id == "" || id == constants.Unknown
}
