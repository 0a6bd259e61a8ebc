package pptx

import (
	"encoding/xml"
	"strings"
)

// Node is one element of a slide's shape tree: *TextShape, *GroupShape or
// *TableFrame.
type Node interface {
	isNode()
}

// TextShape is a shape carrying paragraphs of text.
type TextShape struct {
	Placeholder string // "title", "ctrTitle", "body", … or ""
	Paragraphs  []Paragraph
}

// GroupShape nests other shapes to any depth.
type GroupShape struct {
	Children []Node
}

// TableFrame is a graphic frame holding a table. Each cell is the text of
// its runs, trimmed and joined by single spaces.
type TableFrame struct {
	Rows [][]string
}

func (*TextShape) isNode()  {}
func (*GroupShape) isNode() {}
func (*TableFrame) isNode() {}

// IsTitle reports whether the shape is a title placeholder.
func (s *TextShape) IsTitle() bool {
	return s.Placeholder == "title" || s.Placeholder == "ctrTitle"
}

// Text returns the non-empty paragraphs joined by newlines.
func (s *TextShape) Text() string {
	lines := make([]string, 0, len(s.Paragraphs))
	for _, p := range s.Paragraphs {
		if t := strings.TrimSpace(p.Text); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}

// Paragraph is the concatenated text of its runs and fields; line breaks
// inside the paragraph become newlines. Runs keeps each run's text.
type Paragraph struct {
	Text string
	Runs []string
}

// UnmarshalXML keeps runs, fields and breaks in document order.
func (p *Paragraph) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	var b strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r", "fld":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				b.WriteString(r.T)
				p.Runs = append(p.Runs, r.T)
			case "br":
				b.WriteString("\n")
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			p.Text = b.String()
			return nil
		}
	}
}

// shapeList decodes the children of spTree or grpSp in document order.
type shapeList []Node

func (l *shapeList) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node, err := decodeShape(d, t)
			if err != nil {
				return err
			}
			if node != nil {
				*l = append(*l, node)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func decodeShape(d *xml.Decoder, start xml.StartElement) (Node, error) {
	switch start.Name.Local {
	case "sp":
		var sp spXML
		if err := d.DecodeElement(&sp, &start); err != nil {
			return nil, err
		}
		shape := &TextShape{}
		if ph := sp.NvSpPr.NvPr.Ph; ph != nil {
			shape.Placeholder = ph.Type
		}
		if sp.TxBody != nil {
			shape.Paragraphs = sp.TxBody.P
		}
		return shape, nil
	case "grpSp":
		var children shapeList
		if err := d.DecodeElement(&children, &start); err != nil {
			return nil, err
		}
		return &GroupShape{Children: children}, nil
	case "graphicFrame":
		var gf graphicFrameXML
		if err := d.DecodeElement(&gf, &start); err != nil {
			return nil, err
		}
		if gf.Graphic.GraphicData.Tbl == nil {
			return nil, nil
		}
		return tableFrame(gf.Graphic.GraphicData.Tbl), nil
	default:
		return nil, d.Skip()
	}
}

func tableFrame(tbl *tblXML) *TableFrame {
	frame := &TableFrame{Rows: make([][]string, 0, len(tbl.Tr))}
	for _, tr := range tbl.Tr {
		row := make([]string, 0, len(tr.Tc))
		for _, tc := range tr.Tc {
			row = append(row, cellText(tc.TxBody))
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame
}

func cellText(body *txBodyXML) string {
	if body == nil {
		return ""
	}
	var words []string
	for _, p := range body.P {
		for _, r := range p.Runs {
			words = append(words, strings.Fields(r)...)
		}
	}
	return strings.Join(words, " ")
}
