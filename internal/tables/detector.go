package tables

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

var reNumericToken = regexp.MustCompile(`^[-+(]?[$€£]?\d[\d.,]*%?\)?$`)

// Detector runs the line-heuristic and caption-anchored table passes.
// A Detector holds no per-document state and is safe for concurrent use.
type Detector struct {
	opts   Options
	logger *slog.Logger
}

// NewDetector builds a detector; zero option fields take their defaults.
func NewDetector(opts Options, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{opts: opts.withDefaults(), logger: logger}
}

// Options returns the effective options.
func (d *Detector) Options() Options {
	return d.opts
}

// IsTableLike reports whether a single line looks like a table row.
func (d *Detector) IsTableLike(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" || textutil.IsMarker(t) {
		return false
	}
	if gapCount(t) >= max(1, d.opts.MinColumns-1) {
		return true
	}
	if strings.ContainsAny(t, "|+") {
		return true
	}
	tokens := strings.Fields(t)
	numeric := 0
	for _, tok := range tokens {
		if reNumericToken.MatchString(tok) {
			numeric++
		}
	}
	if numeric >= d.opts.MinColumns {
		return true
	}
	return len(tokens) >= d.opts.LineThreshold
}

// isFiller marks short blank-ish lines that may sit inside a table run.
func isFiller(line string) bool {
	return len(strings.TrimSpace(line)) <= 2
}

// FindRegions returns the accepted table regions of lines. Lines inside
// existing [TABLE] or $$ blocks are never part of a region.
func (d *Detector) FindRegions(lines []string) []Region {
	protected := textutil.ProtectedMask(lines)
	var regions []Region

	start, last, rows := -1, -1, 0
	flush := func() {
		if start >= 0 && rows >= d.opts.MinRows {
			regions = append(regions, Region{Start: start, End: last})
		}
		start, last, rows = -1, -1, 0
	}

	for i, line := range lines {
		switch {
		case protected[i]:
			flush()
		case d.IsTableLike(line):
			if start < 0 {
				start = i
			}
			last = i
			rows++
		case start >= 0 && isFiller(line):
			// tolerated inside a run; trailing filler is trimmed by last
		default:
			flush()
		}
	}
	flush()
	return regions
}

// renderRegion converts the lines of one region into a table block.
func renderRegion(lines []string) []string {
	for _, line := range lines {
		if strings.Contains(line, "|") {
			return formatBlock(pipeRows(lines))
		}
	}
	return formatBlock(alignedRows(lines))
}

// rewrite replaces each region in lines with its rendered block.
func rewrite(lines []string, regions []Region) []string {
	if len(regions) == 0 {
		return lines
	}
	out := make([]string, 0, len(lines)+2*len(regions))
	next := 0
	for _, r := range regions {
		out = append(out, lines[next:r.Start]...)
		out = append(out, renderRegion(lines[r.Start:r.End+1])...)
		next = r.End + 1
	}
	return append(out, lines[next:]...)
}

func (d *Detector) detectLines(lines []string) []string {
	regions := d.FindRegions(lines)
	if len(regions) > 0 {
		d.logger.Debug("tables.generic.regions", "count", len(regions))
	}
	return rewrite(lines, regions)
}

// DetectTablesInPdfText runs the generic line-heuristic pass. Text without
// table-like lines is returned unchanged, as is text whose tables are
// already marked.
func (d *Detector) DetectTablesInPdfText(text string) string {
	lines := textutil.SplitLines(text)
	regions := d.FindRegions(lines)
	if len(regions) == 0 {
		return text
	}
	d.logger.Debug("tables.generic.regions", "count", len(regions))
	return textutil.JoinLines(rewrite(lines, regions))
}

// DetectAll runs the caption-anchored pass followed by the generic pass.
func (d *Detector) DetectAll(text string) string {
	return d.DetectTablesInPdfText(d.DetectScientificTables(text))
}
