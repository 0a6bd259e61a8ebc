package pptx

import (
	"strings"

	"github.com/joseph-ayodele/lecture-processor/internal/tables"
)

// Visitor receives the leaves of a shape tree. Groups are descended into
// by Walk and never reach the visitor.
type Visitor interface {
	VisitText(*TextShape)
	VisitTable(*TableFrame)
}

// Walk visits nodes depth-first in document order.
func Walk(nodes []Node, v Visitor) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *TextShape:
			v.VisitText(n)
		case *GroupShape:
			Walk(n.Children, v)
		case *TableFrame:
			v.VisitTable(n)
		}
	}
}

// slideFlattener accumulates one slide's text and tables separately so the
// tables can follow the text.
type slideFlattener struct {
	text   []string
	tables []string
	title  string
}

func (f *slideFlattener) VisitText(s *TextShape) {
	t := s.Text()
	if t == "" {
		return
	}
	if f.title == "" && s.IsTitle() {
		f.title = strings.ReplaceAll(t, "\n", " ")
	}
	f.text = append(f.text, t)
}

func (f *slideFlattener) VisitTable(t *TableFrame) {
	f.tables = append(f.tables, tables.FormatRows(t.Rows))
}

// render produces the slide section starting with its "Slide N:" header.
func (f *slideFlattener) render(header string) string {
	parts := make([]string, 0, 2+len(f.text)+len(f.tables))
	parts = append(parts, header)
	parts = append(parts, f.text...)
	if len(f.text) == 0 && len(f.tables) == 0 {
		parts = append(parts, noSlideText)
	}
	parts = append(parts, f.tables...)
	return strings.Join(parts, "\n")
}
