package normalize

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

var (
	reBareSlideRef   = regexp.MustCompile(`(?i)\b(?:slide|page)\s+\d+\b(\s*:)?`)
	reSlideErrMarker = regexp.MustCompile(`^\[Error parsing slide \d+\]$`)
	reInnerSpaces    = regexp.MustCompile(`[ \t]{2,}`)
)

// StripTitleFooter drops lines identical to the document title, which decks
// repeat as a footer on every slide. A title read from the body is left alone.
func StripTitleFooter(text string, sc *Context) string {
	title := strings.TrimSpace(sc.Title)
	if title == "" || sc.TitleInBody {
		return text
	}
	return mapUnprotected(text, func(line string) (string, bool) {
		return line, strings.TrimSpace(line) != title
	})
}

// StripBareSlideRefs removes "Slide N" and "Page N" mentions, including
// "Slide X of Y" stamps, while keeping the "Slide N:" section headers and
// the per-slide diagnostic markers.
func StripBareSlideRefs(text string) string {
	return mapUnprotected(text, func(line string) (string, bool) {
		if IsSlideMarker(line) || !reBareSlideRef.MatchString(line) {
			return line, true
		}
		cleaned := rePageOfPage.ReplaceAllString(line, "")
		cleaned = reBareSlideRef.ReplaceAllStringFunc(cleaned, func(m string) string {
			if strings.HasSuffix(m, ":") {
				return m
			}
			return ""
		})
		if cleaned == line {
			return line, true
		}
		cleaned = strings.TrimSpace(reInnerSpaces.ReplaceAllString(cleaned, " "))
		return cleaned, cleaned != ""
	})
}

// DropSlideMarkers removes the empty-slide and parse-error markers when the
// context asks for it.
func DropSlideMarkers(text string, sc *Context) string {
	if !sc.DropSlideMarkers {
		return text
	}
	return mapUnprotected(text, func(line string) (string, bool) {
		return line, !IsSlideMarker(line)
	})
}

// IsSlideMarker reports whether line is one of the per-slide diagnostic markers.
func IsSlideMarker(line string) bool {
	t := strings.TrimSpace(line)
	return t == textutil.NoSlideTextMarker || reSlideErrMarker.MatchString(t)
}
