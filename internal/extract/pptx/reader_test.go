package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slideNS = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`

func buildDeck(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func slideDoc(shapes ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:sld ` + slideNS + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/></p:nvGrpSpPr><p:grpSpPr/>` +
		strings.Join(shapes, "") + `</p:spTree></p:cSld></p:sld>`
}

func paragraphs(paras ...string) string {
	var b strings.Builder
	for _, p := range paras {
		b.WriteString(`<a:p><a:r><a:rPr lang="en-US"/><a:t>` + p + `</a:t></a:r></a:p>`)
	}
	return b.String()
}

func textShape(ph string, paras ...string) string {
	nvPr := `<p:nvPr/>`
	if ph != "" {
		nvPr = `<p:nvPr><p:ph type="` + ph + `"/></p:nvPr>`
	}
	return `<p:sp><p:nvSpPr><p:cNvPr id="2" name="s"/><p:cNvSpPr/>` + nvPr + `</p:nvSpPr><p:spPr/>` +
		`<p:txBody><a:bodyPr/><a:lstStyle/>` + paragraphs(paras...) + `</p:txBody></p:sp>`
}

func group(children ...string) string {
	return `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="9" name="g"/></p:nvGrpSpPr><p:grpSpPr/>` + strings.Join(children, "") + `</p:grpSp>`
}

func tableFrameXML(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="4" name="t"/></p:nvGraphicFramePr>`)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblGrid/>`)
	for _, row := range rows {
		b.WriteString(`<a:tr h="100">`)
		for _, cell := range row {
			b.WriteString(`<a:tc><a:txBody><a:bodyPr/>` + paragraphs(strings.Split(cell, "/")...) + `</a:txBody></a:tc>`)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return b.String()
}

func TestExtract_NumericSlideOrder(t *testing.T) {
	files := map[string]string{}
	for i := 1; i <= 10; i++ {
		files[fmt.Sprintf("ppt/slides/slide%d.xml", i)] = slideDoc(textShape("body", fmt.Sprintf("Content %d", i)))
	}
	files["ppt/slides/_rels/slide1.xml.rels"] = `<Relationships/>`

	doc, err := Extract(buildDeck(t, files))
	require.NoError(t, err)
	assert.Equal(t, 10, doc.Slides)

	last := -1
	for i := 1; i <= 10; i++ {
		idx := strings.Index(doc.Text, fmt.Sprintf("Slide %d:\nContent %d\n", i, i))
		if i == 10 {
			idx = strings.Index(doc.Text, "Slide 10:\nContent 10")
		}
		require.GreaterOrEqual(t, idx, 0, "slide %d missing", i)
		assert.Greater(t, idx, last, "slide %d out of order", i)
		last = idx
	}
}

func TestExtract_EmptySlideMarker(t *testing.T) {
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slideDoc(textShape("title", "Intro"), textShape("body", "Cells are alive")),
		"ppt/slides/slide2.xml": slideDoc(),
	})

	doc, err := Extract(data)
	require.NoError(t, err)
	assert.Equal(t, "Slide 1:\nIntro\nCells are alive\n\nSlide 2:\n[No text content in this slide]", doc.Text)
	assert.Equal(t, "Intro", doc.Title)
}

func TestExtract_BadSlideContinues(t *testing.T) {
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slideDoc(textShape("", "one")),
		"ppt/slides/slide2.xml": `<p:sld><p:cSld><p:spTree>`,
		"ppt/slides/slide3.xml": slideDoc(textShape("", "three")),
	})

	doc, err := Extract(data)
	require.NoError(t, err)
	assert.Equal(t, "Slide 1:\none\n\n[Error parsing slide 2]\n\nSlide 3:\nthree", doc.Text)
	assert.Len(t, doc.Warnings, 1)
}

func TestExtract_GroupsAndTables(t *testing.T) {
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slideDoc(
			tableFrameXML([]string{"Name", "Score"}, []string{"Ann", "9/0"}),
			group(textShape("", "outer"), group(textShape("", "inner"), tableFrameXML())),
			textShape("", "last"),
		),
	})

	doc, err := Extract(data)
	require.NoError(t, err)
	want := "Slide 1:\nouter\ninner\nlast\n" +
		"[TABLE]\n| Name | Score |\n| Ann | 9 0 |\n[/TABLE]\n" +
		"[TABLE]\n[/TABLE]"
	assert.Equal(t, want, doc.Text)
}

func TestExtract_TableCellRunsAreSpaceJoined(t *testing.T) {
	cell := `<a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>Total</a:t></a:r><a:r><a:t>Cost</a:t></a:r></a:p>` +
		`<a:p><a:r><a:t>  (USD) </a:t></a:r></a:p></a:txBody></a:tc>`
	frame := `<p:graphicFrame><a:graphic><a:graphicData><a:tbl><a:tr>` + cell + `<a:tc/></a:tr></a:tbl></a:graphicData></a:graphic></p:graphicFrame>`
	shape := `<p:sp><p:txBody><a:p><a:r><a:t>Hello </a:t></a:r><a:r><a:t>world</a:t></a:r></a:p></p:txBody></p:sp>`
	data := buildDeck(t, map[string]string{"ppt/slides/slide1.xml": slideDoc(shape, frame)})

	doc, err := Extract(data)
	require.NoError(t, err)
	assert.Equal(t, "Slide 1:\nHello world\n[TABLE]\n| Total Cost (USD) |  |\n[/TABLE]", doc.Text)
}

func TestExtract_TableOnlySlideHasNoMarker(t *testing.T) {
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slideDoc(tableFrameXML([]string{"a", "b"})),
	})

	doc, err := Extract(data)
	require.NoError(t, err)
	assert.Equal(t, "Slide 1:\n[TABLE]\n| a | b |\n[/TABLE]", doc.Text)
}

func TestExtract_ParagraphBreaksAndFields(t *testing.T) {
	shape := `<p:sp><p:nvSpPr><p:cNvPr id="2" name="s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:txBody><a:bodyPr/>` +
		`<a:p><a:r><a:t>Hello </a:t></a:r><a:r><a:t>world</a:t></a:r><a:br/><a:r><a:t>again</a:t></a:r></a:p>` +
		`<a:p><a:fld id="{1}" type="slidenum"><a:t>7</a:t></a:fld></a:p>` +
		`<a:p></a:p></p:txBody></p:sp>`
	data := buildDeck(t, map[string]string{"ppt/slides/slide1.xml": slideDoc(shape)})

	doc, err := Extract(data)
	require.NoError(t, err)
	assert.Equal(t, "Slide 1:\nHello world\nagain\n7", doc.Text)
}

func TestExtract_TitleResolution(t *testing.T) {
	slide := slideDoc(textShape("ctrTitle", "Slide Heading"))
	core := func(title string) string {
		return `<?xml version="1.0"?><cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">` +
			`<dc:title>` + title + `</dc:title><dc:subject>Biology</dc:subject></cp:coreProperties>`
	}
	app := `<?xml version="1.0"?><Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
		`<Company>State University</Company>` +
		`<HeadingPairs><vt:vector size="4" baseType="variant">` +
		`<vt:variant><vt:lpstr>Fonts Used</vt:lpstr></vt:variant><vt:variant><vt:i4>2</vt:i4></vt:variant>` +
		`<vt:variant><vt:lpstr>Slide Titles</vt:lpstr></vt:variant><vt:variant><vt:i4>1</vt:i4></vt:variant>` +
		`</vt:vector></HeadingPairs>` +
		`<TitlesOfParts><vt:vector size="3" baseType="lpstr"><vt:lpstr>Arial</vt:lpstr><vt:lpstr>Calibri</vt:lpstr><vt:lpstr>Week 04 Genetics</vt:lpstr></vt:vector></TitlesOfParts>` +
		`</Properties>`

	tests := []struct {
		name      string
		files     map[string]string
		want      string
		fromSlide bool
	}{
		{
			name:  "core title",
			files: map[string]string{"docProps/core.xml": core("BIO 110 Cells"), "docProps/app.xml": app},
			want:  "BIO 110 Cells",
		},
		{
			name:  "placeholder falls back to titles of parts",
			files: map[string]string{"docProps/core.xml": core("PowerPoint Presentation"), "docProps/app.xml": app},
			want:  "Week 04 Genetics",
		},
		{
			name:      "slide title placeholder",
			files:     map[string]string{},
			want:      "Slide Heading",
			fromSlide: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.files["ppt/slides/slide1.xml"] = slide
			doc, err := Extract(buildDeck(t, tt.files))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Title)
			assert.Equal(t, tt.fromSlide, doc.TitleFromSlide)
		})
	}

	doc, err := Extract(buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slide,
		"docProps/core.xml":     core(""),
		"docProps/app.xml":      app,
	}))
	require.NoError(t, err)
	assert.Equal(t, "Biology", doc.Subject)
	assert.Equal(t, "State University", doc.Company)
}

func TestExtract_Errors(t *testing.T) {
	_, err := Extract([]byte("not a zip"))
	assert.Error(t, err)

	_, err = Extract(buildDeck(t, map[string]string{"docProps/core.xml": "<x/>"}))
	assert.ErrorIs(t, err, ErrNoSlides)
}

type countingVisitor struct {
	texts, tables int
}

func (c *countingVisitor) VisitText(*TextShape)   { c.texts++ }
func (c *countingVisitor) VisitTable(*TableFrame) { c.tables++ }

func TestWalkDescendsNestedGroups(t *testing.T) {
	tree := []Node{
		&TextShape{},
		&GroupShape{Children: []Node{
			&GroupShape{Children: []Node{&GroupShape{Children: []Node{&TextShape{}, &TableFrame{}}}}},
			&TableFrame{},
		}},
	}
	v := &countingVisitor{}
	Walk(tree, v)
	assert.Equal(t, 2, v.texts)
	assert.Equal(t, 2, v.tables)
}
