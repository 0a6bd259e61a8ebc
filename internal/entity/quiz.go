package entity

import (
	"time"

	"github.com/google/uuid"
)

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation,omitempty"`
}

// Quiz is the generated summary and question set of a lecture.
type Quiz struct {
	ID        uuid.UUID      `json:"id"`
	LectureID uuid.UUID      `json:"lecture_id"`
	Model     string         `json:"model"`
	Summary   string         `json:"summary"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
}
