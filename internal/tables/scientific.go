package tables

import (
	"regexp"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

var reCaption = regexp.MustCompile(`(?i)^\s*(?:table|tab\.)\s*(?:\d+|[ivx]+)\s*[:.]`)

// IsCaption reports whether line opens a formal "Table N:" caption.
func IsCaption(line string) bool {
	return reCaption.MatchString(line)
}

// captionIndices returns the caption line indices in document order,
// skipping lines inside already-marked blocks.
func captionIndices(lines []string) []int {
	protected := textutil.ProtectedMask(lines)
	var idx []int
	for i, line := range lines {
		if !protected[i] && IsCaption(line) {
			idx = append(idx, i)
		}
	}
	return idx
}

// DetectScientificTables runs the generic detector with default options over
// the body of each captioned section: the lines after a caption up to the
// next caption or the end of the text. Caption lines are kept verbatim.
// Sections are rebuilt by line index, so identical bodies elsewhere in the
// document are never touched.
func (d *Detector) DetectScientificTables(text string) string {
	lines := textutil.SplitLines(text)
	captions := captionIndices(lines)
	if len(captions) == 0 {
		return text
	}
	d.logger.Debug("tables.scientific.captions", "count", len(captions))

	body := NewDetector(DefaultOptions(), d.logger)
	out := make([]string, 0, len(lines))
	out = append(out, lines[:captions[0]]...)
	for k, c := range captions {
		end := len(lines)
		if k+1 < len(captions) {
			end = captions[k+1]
		}
		out = append(out, lines[c])
		out = append(out, body.detectLines(lines[c+1:end])...)
	}
	return textutil.JoinLines(out)
}
