package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/lecture-processor/constants"
)

// ExtractJob records one processing attempt of a source file.
type ExtractJob struct {
	ID           uuid.UUID           `json:"id"`
	LectureID    *uuid.UUID          `json:"lecture_id,omitempty"`
	SourcePath   string              `json:"source_path"`
	Format       string              `json:"format"`
	Status       constants.JobStatus `json:"status"`
	StartedAt    time.Time           `json:"started_at"`
	FinishedAt   *time.Time          `json:"finished_at,omitempty"`
	ErrorMessage *string             `json:"error_message,omitempty"`
	Warnings     []string            `json:"warnings,omitempty"`
}
