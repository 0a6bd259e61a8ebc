package pipeline

import (
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

// ContentStats summarizes the structure of normalized content.
type ContentStats struct {
	Characters int
	Words      int
	Tables     int
	Formulas   int
	Slides     int
}

// Stats counts table blocks, formula blocks and slide headers in content.
func Stats(content string) ContentStats {
	s := ContentStats{
		Characters: utf8.RuneCountInString(content),
		Words:      textutil.CountWords(content),
	}
	fences := 0
	for _, line := range textutil.SplitLines(content) {
		t := strings.TrimSpace(line)
		switch {
		case t == textutil.TableStart:
			s.Tables++
		case t == textutil.FormulaFence:
			fences++
		case strings.HasPrefix(t, "Slide ") && strings.HasSuffix(t, ":"):
			s.Slides++
		}
	}
	s.Formulas = fences / 2
	return s
}
