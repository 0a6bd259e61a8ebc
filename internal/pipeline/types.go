// Package pipeline turns a lecture document into ExtractedData: format
// extraction, table detection, cleanup and metadata inference, in that order.
package pipeline

import (
	"time"

	"github.com/joseph-ayodele/lecture-processor/constants"
)

// ExtractedData is the normalized record handed to summarization and quiz
// generation. Content is never empty and Difficulty is always set.
type ExtractedData struct {
	CourseID   string               `json:"courseId"`
	LectureID  string               `json:"lectureId"`
	Title      string               `json:"title"`
	Content    string               `json:"content"`
	Difficulty constants.Difficulty `json:"difficulty"`
	FileName   string               `json:"fileName,omitempty"`
	// FileType is the lower-case extension hint: "pdf", "pptx" or "ppt".
	FileType string `json:"fileType,omitempty"`
}

// Request is one document to process.
type Request struct {
	Data []byte
	// FileType is a hint: "pdf", "pptx", "ppt" (any case, dot optional).
	// When empty the extension of Key is used.
	FileType string
	// Key is the storage path; its base name becomes FileName and a
	// ".../course/lecture/file.ext" layout fills ids the text does not give.
	Key string
}

// Result wraps ExtractedData with processing details.
type Result struct {
	Data     ExtractedData
	Degraded bool
	Pages    int
	Warnings []string
	Duration time.Duration
}
