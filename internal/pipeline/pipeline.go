package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/extract"
	"github.com/joseph-ayodele/lecture-processor/internal/metadata"
	"github.com/joseph-ayodele/lecture-processor/internal/normalize"
	"github.com/joseph-ayodele/lecture-processor/internal/tables"
	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

// Options configures a Pipeline.
type Options struct {
	// DetectTables runs the caption-anchored and line-heuristic table passes
	// on PDF text before cleanup.
	DetectTables bool
	// DropSlideMarkers removes the empty-slide and parse-error markers from PPTX content.
	DropSlideMarkers bool
	Tables           tables.Options
	// MaxPages limits PDF decoding; 0 = no limit.
	MaxPages int
	Rules    *metadata.DifficultyRules
}

// Pipeline is stateless between documents and safe for concurrent use.
type Pipeline struct {
	opts       Options
	logger     *slog.Logger
	extractors map[string]extract.Extractor
	detector   *tables.Detector
	pdfNorm    *normalize.Pipeline
	pptxNorm   *normalize.Pipeline
	classifier *metadata.Classifier
}

func New(opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	rules := metadata.DefaultDifficultyRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	return &Pipeline{
		opts:   opts,
		logger: logger,
		extractors: map[string]extract.Extractor{
			constants.PDF:  extract.NewPDFExtractor(opts.MaxPages, logger),
			constants.PPTX: extract.NewPPTXAdapter(logger),
		},
		detector:   tables.NewDetector(opts.Tables, logger),
		pdfNorm:    normalize.NewPDFPipeline(logger),
		pptxNorm:   normalize.NewPPTXPipeline(logger),
		classifier: metadata.NewClassifier(rules),
	}
}

// WithExtractor replaces the extractor used for a format.
func (p *Pipeline) WithExtractor(format string, e extract.Extractor) *Pipeline {
	p.extractors[format] = e
	return p
}

// Process returns the ExtractedData for req. It fails only for an
// unsupported file type or a canceled ctx; unreadable documents yield a
// degraded record.
func (p *Pipeline) Process(ctx context.Context, req Request) (ExtractedData, error) {
	res, err := p.Run(ctx, req)
	return res.Data, err
}

// Run is Process with processing details.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	hint := req.FileType
	if strings.TrimSpace(hint) == "" {
		hint = path.Ext(req.Key)
	}
	format := constants.MapExtToFormat(hint)
	if format == "" {
		p.logger.Warn("pipeline.unsupported_format", "file_type", hint, "key", req.Key)
		return Result{}, common.UnsupportedFormatError(hint)
	}
	fileType := constants.NormalizeExt(hint)
	fileName := ""
	if req.Key != "" {
		fileName = path.Base(req.Key)
	}

	raw, err := p.extractors[format].Extract(ctx, req.Data)
	if err != nil && ctx.Err() != nil {
		return Result{}, fmt.Errorf("extract %s: %w", format, ctx.Err())
	}
	if err != nil {
		p.logger.Warn("pipeline.extract.degraded", "format", format, "key", req.Key, "err", err)
		return Result{
			Data:     degraded(format, fileName, fileType, err),
			Degraded: true,
			Warnings: raw.Warnings,
			Duration: time.Since(start),
		}, nil
	}

	data := p.normalize(format, raw)
	data.FileName = fileName
	data.FileType = fileType
	fillFromKey(&data, req.Key)

	p.logger.Info("pipeline.extract.ok",
		"format", format,
		"key", req.Key,
		"course_id", data.CourseID,
		"lecture_id", data.LectureID,
		"difficulty", data.Difficulty,
		"chars", len(data.Content),
	)
	return Result{
		Data:     data,
		Pages:    raw.Pages,
		Warnings: raw.Warnings,
		Duration: time.Since(start),
	}, nil
}

func (p *Pipeline) normalize(format string, raw extract.RawDocument) ExtractedData {
	text := textutil.FoldLigatures(textutil.NormalizeNewlines(raw.Text))
	title := strings.TrimSpace(raw.Title)

	var content string
	switch format {
	case constants.PDF:
		if p.opts.DetectTables {
			text = p.detector.DetectAll(text)
		}
		content = p.pdfNorm.Run(text, &normalize.Context{Title: title})
	case constants.PPTX:
		content = p.pptxNorm.Run(text, &normalize.Context{Title: title, TitleInBody: raw.TitleFromContent, DropSlideMarkers: p.opts.DropSlideMarkers})
	}
	if strings.TrimSpace(content) == "" {
		content = fmt.Sprintf("[No extractable text content in this %s]", format)
	}
	if title == "" {
		title = untitled(format)
	}

	data := ExtractedData{
		Title:      title,
		Content:    content,
		CourseID:   metadata.ExtractCourseID(content),
		LectureID:  metadata.ExtractLectureID(content),
		Difficulty: p.classifier.Classify(content),
	}

	meta := raw.MetadataText()
	if metadata.IsUnknown(data.CourseID) && meta != "" {
		data.CourseID = metadata.ExtractCourseID(meta)
	}
	if metadata.IsUnknown(data.LectureID) && meta != "" {
		data.LectureID = metadata.ExtractLectureID(meta)
	}
	if metadata.IsUnknown(data.LectureID) && raw.Title != "" {
		data.LectureID = metadata.ExtractWeekFromTitle(raw.Title)
	}
	return data
}

// fillFromKey borrows course and lecture ids from a
// ".../course/lecture/file.ext" key when the content gave none.
func fillFromKey(data *ExtractedData, key string) {
	if key == "" {
		return
	}
	segs := strings.Split(strings.Trim(path.Clean(strings.ReplaceAll(key, "\\", "/")), "/"), "/")
	if len(segs) < 3 {
		return
	}
	course, lecture := segs[len(segs)-3], segs[len(segs)-2]
	if metadata.IsUnknown(data.CourseID) && usableSegment(course) {
		data.CourseID = course
	}
	if metadata.IsUnknown(data.LectureID) && usableSegment(lecture) {
		data.LectureID = lecture
	}
}

func usableSegment(s string) bool {
	return s != "" && s != "." && s != ".."
}

func untitled(format string) string {
	return "Untitled " + format
}

// degraded is the well-formed record returned when a container cannot be read.
func degraded(format, fileName, fileType string, err error) ExtractedData {
	return ExtractedData{
		CourseID:   constants.Unknown,
		LectureID:  constants.Unknown,
		Title:      untitled(format),
		Content:    fmt.Sprintf("Error extracting %s content: %v", format, err),
		Difficulty: constants.Medium,
		FileName:   fileName,
		FileType:   fileType,
	}
}
