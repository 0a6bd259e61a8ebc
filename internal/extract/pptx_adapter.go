package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/extract/pptx"
)

// PPTXAdapter exposes the pptx package as an Extractor.
type PPTXAdapter struct {
	logger *slog.Logger
}

func NewPPTXAdapter(logger *slog.Logger) *PPTXAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PPTXAdapter{logger: logger}
}

func (a *PPTXAdapter) Extract(ctx context.Context, data []byte) (RawDocument, error) {
	start := time.Now()
	if len(data) == 0 {
		return RawDocument{SourceType: constants.PPTX}, ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return RawDocument{SourceType: constants.PPTX}, err
	}
	d, err := pptx.Extract(data)
	raw := RawDocument{
		Text:       d.Text,
		Title:      d.Title,
		Subject:    d.Subject,
		Company:    d.Company,
		Pages:      d.Slides,
		SourceType: constants.PPTX,
		Duration:   time.Since(start),
		Warnings:   d.Warnings,
	}
	raw.TitleFromContent = d.TitleFromSlide
	if err != nil {
		return raw, err
	}
	for _, w := range d.Warnings {
		a.logger.Warn("extract.pptx.warning", "detail", w)
	}
	a.logger.Debug("extract.pptx.ok", "slides", d.Slides, "chars", len(d.Text))
	return raw, nil
}
