package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/constants"
)

// AllowedExt checks if a file extension is in the allowed set (pdf, pptx, ppt).
func AllowedExt(ext string) bool {
	_, ok := constants.AllowedExtensions[constants.NormalizeExt(ext)]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
// Office lock files ("~$deck.pptx") count as hidden.
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$")
}
