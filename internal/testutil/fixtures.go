// Package testutil builds minimal PDF and PPTX documents for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// PDF assembles a one-page PDF with Helvetica text lines and an optional
// Info dictionary, computing the xref offsets.
func PDF(title string, lines ...string) []byte {
	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n72 720 Td\n")
	for i, l := range lines {
		if i > 0 {
			content.WriteString("T*\n")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", l)
	}
	content.WriteString("ET\n")
	stream := content.String()

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	if title != "" {
		objs = append(objs, fmt.Sprintf("<< /Title (%s) /Subject (Lecture notes) >>", title))
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	trailer := fmt.Sprintf("<< /Size %d /Root 1 0 R", len(objs)+1)
	if title != "" {
		trailer += fmt.Sprintf(" /Info %d 0 R", len(objs))
	}
	trailer += " >>"
	fmt.Fprintf(&b, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", trailer, xref)
	return b.Bytes()
}

// PPTX builds a deck with one slide per entry; each line of an entry becomes
// a text shape. An empty entry is a slide without text.
func PPTX(slides ...string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, body := range slides {
		var x strings.Builder
		x.WriteString(`<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><p:cSld><p:spTree>`)
		for _, para := range strings.Split(body, "\n") {
			if para == "" {
				continue
			}
			x.WriteString(`<p:sp><p:txBody><a:p><a:r><a:t>` + para + `</a:t></a:r></a:p></p:txBody></p:sp>`)
		}
		x.WriteString(`</p:spTree></p:cSld></p:sld>`)
		w, err := zw.Create(fmt.Sprintf("ppt/slides/slide%d.xml", i+1))
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(x.String())); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
