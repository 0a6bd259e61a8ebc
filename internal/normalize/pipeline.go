// Package normalize cleans extracted lecture text. Each cleanup step is a
// named Stage; a Pipeline runs an ordered list of stages.
package normalize

import (
	"log/slog"
	"unicode/utf8"
)

// Context carries per-document values stages may consult.
type Context struct {
	// Title is the resolved document title.
	Title string
	// TitleInBody marks a title read from the body text; lines equal to it
	// are content, not a repeated footer.
	TitleInBody bool
	// DropSlideMarkers removes the per-slide diagnostic markers.
	DropSlideMarkers bool
}

// Stage is one named text transformation. Apply must be a pure function of
// its arguments.
type Stage struct {
	Name  string
	Apply func(text string, sc *Context) string
}

// Pipeline runs stages in order.
type Pipeline struct {
	stages []Stage
	logger *slog.Logger
}

// NewPipeline builds a pipeline over the given stages.
func NewPipeline(logger *slog.Logger, stages ...Stage) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{stages: stages, logger: logger}
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, st := range p.stages {
		names[i] = st.Name
	}
	return names
}

// Run applies every stage to text.
func (p *Pipeline) Run(text string, sc *Context) string {
	if sc == nil {
		sc = &Context{}
	}
	for _, st := range p.stages {
		before := utf8.RuneCountInString(text)
		text = st.Apply(text, sc)
		p.logger.Debug("normalize.stage",
			"stage", st.Name,
			"chars_in", before,
			"chars_out", utf8.RuneCountInString(text),
		)
	}
	return text
}
