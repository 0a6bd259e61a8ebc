package normalize

import (
	"log/slog"

	"github.com/joseph-ayodele/lecture-processor/internal/tables"
)

// Stage names.
const (
	StageRemoveRepeatingLines = "remove-repeating-lines"
	StageRejoinHyphenation    = "rejoin-hyphenation"
	StageRemoveBoilerplate    = "remove-boilerplate"
	StageCleanStrayPipes      = "clean-stray-pipes"
	StageDedupePunctuation    = "dedupe-punctuation"
	StageFixMathSpacing       = "fix-math-spacing"
	StageWrapFormulas         = "wrap-formulas"
	StageDetectSimpleTables   = "detect-simple-tables"
	StageStripTitleFooter     = "strip-title-footer"
	StageStripBareSlideRefs   = "strip-bare-slide-refs"
	StageDropSlideMarkers     = "drop-slide-markers"
	StageRemoveLineBreaks     = "remove-redundant-line-breaks"
)

func textOnly(fn func(string) string) func(string, *Context) string {
	return func(text string, _ *Context) string { return fn(text) }
}

// GenericStages is the finalization applied to every document type.
func GenericStages() []Stage {
	return []Stage{
		{Name: StageRemoveLineBreaks, Apply: textOnly(RemoveRedundantLineBreaks)},
	}
}

// PDFStages returns the PDF cleanup followed by simple-table detection and
// the generic finalization. Table markers are produced before line breaks
// are collapsed.
func PDFStages() []Stage {
	stages := []Stage{
		{Name: StageRemoveRepeatingLines, Apply: textOnly(RemoveRepeatingLines)},
		{Name: StageRejoinHyphenation, Apply: textOnly(RejoinHyphenation)},
		{Name: StageRemoveBoilerplate, Apply: textOnly(RemoveBoilerplate)},
		{Name: StageCleanStrayPipes, Apply: textOnly(CleanStrayPipes)},
		{Name: StageDedupePunctuation, Apply: textOnly(DedupePunctuation)},
		{Name: StageFixMathSpacing, Apply: textOnly(FixMathSpacing)},
		{Name: StageWrapFormulas, Apply: textOnly(WrapFormulas)},
		{Name: StageDetectSimpleTables, Apply: textOnly(tables.DetectSimpleTables)},
	}
	return append(stages, GenericStages()...)
}

// PPTXStages returns the slide-deck cleanup followed by the generic finalization.
func PPTXStages() []Stage {
	stages := []Stage{
		{Name: StageStripTitleFooter, Apply: StripTitleFooter},
		{Name: StageStripBareSlideRefs, Apply: textOnly(StripBareSlideRefs)},
		{Name: StageDropSlideMarkers, Apply: DropSlideMarkers},
	}
	return append(stages, GenericStages()...)
}

// NewPDFPipeline is NewPipeline over PDFStages.
func NewPDFPipeline(logger *slog.Logger) *Pipeline {
	return NewPipeline(logger, PDFStages()...)
}

// NewPPTXPipeline is NewPipeline over PPTXStages.
func NewPPTXPipeline(logger *slog.Logger) *Pipeline {
	return NewPipeline(logger, PPTXStages()...)
}
