// Package tables finds tabular regions in extracted plain text and re-renders
// them as pipe-delimited rows wrapped in [TABLE] markers.
package tables

// Options tunes how eagerly lines are classified as table rows.
type Options struct {
	// MinRows is the number of table-like lines a region needs to be accepted.
	MinRows int
	// MinColumns is the number of columns a line needs to look tabular.
	MinColumns int
	// LineThreshold is the whitespace-token count above which a line counts as tabular.
	LineThreshold int
}

const (
	DefaultMinRows       = 2
	DefaultMinColumns    = 2
	DefaultLineThreshold = 3
)

// DefaultOptions returns the detector defaults.
func DefaultOptions() Options {
	return Options{
		MinRows:       DefaultMinRows,
		MinColumns:    DefaultMinColumns,
		LineThreshold: DefaultLineThreshold,
	}
}

// withDefaults replaces zero or negative fields with their defaults.
func (o Options) withDefaults() Options {
	if o.MinRows <= 0 {
		o.MinRows = DefaultMinRows
	}
	if o.MinColumns <= 0 {
		o.MinColumns = DefaultMinColumns
	}
	if o.LineThreshold <= 0 {
		o.LineThreshold = DefaultLineThreshold
	}
	return o
}

// Region is an inclusive line range [Start, End] classified as tabular.
type Region struct {
	Start int
	End   int
}

// Len returns the number of lines the region spans.
func (r Region) Len() int {
	return r.End - r.Start + 1
}
