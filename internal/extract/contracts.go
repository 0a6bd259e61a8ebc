package extract

import (
	"context"
	"strings"
	"time"
)

// Extractor is the first stage: document bytes -> raw text and title hints.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (RawDocument, error)
}

// RawDocument is the unnormalized output of a format extractor.
type RawDocument struct {
	Text       string
	Title      string // empty when the container carries no usable title
	Subject    string
	Company    string
	Pages      int // pages for PDF, slides for PPTX
	SourceType string
	Duration   time.Duration
	Warnings   []string
	// TitleFromContent marks a title taken from the document body itself.
	TitleFromContent bool
}

// MetadataText concatenates the document properties used as a fallback
// source for course and lecture identifiers.
func (d RawDocument) MetadataText() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{d.Title, d.Subject, d.Company} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
