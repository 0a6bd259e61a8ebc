package constants

import (
	"sort"
	"strings"
)

// Formats stored in extract_jobs.format.
const (
	PDF  = "PDF"
	PPTX = "PPTX"
)

// FileTypes holds the allowed values for the format column of extract_jobs.
var FileTypes = []string{PDF, PPTX}

// AllowedExtensions holds the file extensions accepted for lecture ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"pptx": {},
	"ppt":  {},
}

// AllowedExtensionList returns the accepted extensions in sorted order.
func AllowedExtensionList() []string {
	out := make([]string, 0, len(AllowedExtensions))
	for ext := range AllowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Unknown is the sentinel used when a course or lecture id cannot be inferred.
const Unknown = "Unknown"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// MapExtToFormat maps an extension (with or without dot) or a file-type hint to a job format.
// Returns "" for anything unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "pptx", "ppt":
		return PPTX
	default:
		return ""
	}
}
