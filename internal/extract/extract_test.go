package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/testutil"
)

func TestPDFExtractor_Extract(t *testing.T) {
	e := NewPDFExtractor(0, nil)
	doc, err := e.Extract(context.Background(), testutil.PDF("CS101 Lecture 2", "Sorting algorithms", "Merge sort"))
	require.NoError(t, err)

	assert.Equal(t, constants.PDF, doc.SourceType)
	assert.Equal(t, 1, doc.Pages)
	assert.Equal(t, "CS101 Lecture 2", doc.Title)
	assert.Equal(t, "Lecture notes", doc.Subject)
	assert.Contains(t, doc.Text, "Sorting algorithms")
	assert.Contains(t, doc.Text, "Merge sort")
}

func TestPDFExtractor_TitleFromFirstLine(t *testing.T) {
	e := NewPDFExtractor(0, nil)
	doc, err := e.Extract(context.Background(), testutil.PDF("", "Week 3 Graphs", "Breadth first search"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.Title, "Week 3 Graphs"), doc.Title)
}

func TestPDFExtractor_Errors(t *testing.T) {
	e := NewPDFExtractor(0, nil)

	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = e.Extract(context.Background(), []byte("%PDF-1.4\nthis is not really a pdf"))
	assert.Error(t, err)

	valid := testutil.PDF("T", "x")
	_, err = e.Extract(context.Background(), valid[:len(valid)/2])
	assert.Error(t, err)
}

func TestPDFExtractor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPDFExtractor(0, nil).Extract(ctx, testutil.PDF("T", "x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPPTXAdapter_Extract(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("ppt/slides/slide1.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<p:sld xmlns:p="p" xmlns:a="a"><p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>Hello</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	a := NewPPTXAdapter(nil)
	doc, err := a.Extract(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Slide 1:\nHello", doc.Text)
	assert.Equal(t, constants.PPTX, doc.SourceType)
	assert.Equal(t, 1, doc.Pages)

	_, err = a.Extract(context.Background(), []byte("PK garbage"))
	assert.Error(t, err)
}

func TestRawDocument_MetadataText(t *testing.T) {
	assert.Equal(t, "", RawDocument{}.MetadataText())
	assert.Equal(t, "Deck Bio 2 Uni", RawDocument{Title: "Deck", Subject: " Bio 2 ", Company: "Uni"}.MetadataText())
	assert.Equal(t, "Uni", RawDocument{Company: "Uni"}.MetadataText())
}
