package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/lecture-processor/constants"
)

// Lecture is a stored, normalized lecture document.
type Lecture struct {
	ID          uuid.UUID            `json:"id"`
	CourseID    string               `json:"course_id"`
	LectureID   string               `json:"lecture_id"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Difficulty  constants.Difficulty `json:"difficulty"`
	FileName    string               `json:"file_name"`
	FileType    string               `json:"file_type"`
	SourcePath  string               `json:"source_path"`
	ContentHash string               `json:"content_hash"`
	Pages       int                  `json:"pages"`
	Characters  int                  `json:"characters"`
	Tables      int                  `json:"tables"`
	Formulas    int                  `json:"formulas"`
	Degraded    bool                 `json:"degraded"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
