package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

// ErrEmptyDocument is returned for a zero-length buffer.
var ErrEmptyDocument = errors.New("empty document")

// PDFExtractor pulls the text layer out of a PDF.
type PDFExtractor struct {
	MaxPages int // 0 = no limit
	logger   *slog.Logger
}

func NewPDFExtractor(maxPages int, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{MaxPages: maxPages, logger: logger}
}

// Extract decodes every page and concatenates the plain text. The title comes
// from the Info dictionary, else from the first non-blank line. Panics raised
// by the PDF decoder on malformed input are returned as errors.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (doc RawDocument, err error) {
	start := time.Now()
	doc.SourceType = constants.PDF
	if len(data) == 0 {
		return doc, ErrEmptyDocument
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
		doc.Duration = time.Since(start)
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return doc, fmt.Errorf("open pdf: %w", err)
	}

	pages := reader.NumPage()
	if e.MaxPages > 0 && pages > e.MaxPages {
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("truncated to %d of %d pages", e.MaxPages, pages))
		pages = e.MaxPages
	}

	fonts := make(map[string]*pdf.Font)
	var b strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return doc, err
		}
		text, perr := pageText(reader, i, fonts)
		if perr != nil {
			e.logger.Warn("extract.pdf.page_failed", "page", i, "err", perr)
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("page %d: %v", i, perr))
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}

	doc.Pages = pages
	doc.Text = textutil.NormalizeNewlines(b.String())
	doc.Title = infoString(reader, "Title")
	doc.Subject = infoString(reader, "Subject")
	if doc.Title == "" {
		doc.Title = textutil.FirstNonBlankLine(doc.Text)
	}
	e.logger.Debug("extract.pdf.ok", "pages", pages, "chars", len(doc.Text), "warnings", len(doc.Warnings))
	return doc, nil
}

// pageText extracts one page, isolating decoder panics to that page.
func pageText(r *pdf.Reader, i int, fonts map[string]*pdf.Font) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("decode page: %v", rec)
		}
	}()
	p := r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	for _, name := range p.Fonts() {
		if _, ok := fonts[name]; !ok {
			f := p.Font(name)
			fonts[name] = &f
		}
	}
	return p.GetPlainText(fonts)
}

func infoString(r *pdf.Reader, key string) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	return strings.TrimSpace(r.Trailer().Key("Info").Key(key).Text())
}
