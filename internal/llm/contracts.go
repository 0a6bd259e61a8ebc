package llm

import (
	"context"

	"github.com/joseph-ayodele/lecture-processor/internal/pipeline"
)

// Summary is the normalized shape we want from the summarization call.
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// Question is one multiple-choice question; AnswerIndex points into Options.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation,omitempty"`
}

type Quiz struct {
	Questions []Question `json:"questions"`
}

type SummaryRequest struct {
	Lecture pipeline.ExtractedData
	// MaxWords bounds the summary length; 0 = 200.
	MaxWords int
	// ContentBudget bounds the lecture characters sent; 0 = DefaultContentBudget.
	ContentBudget int
}

type QuizRequest struct {
	Lecture       pipeline.ExtractedData
	NumQuestions  int
	Summary       string
	ContentBudget int
}

// Summarizer and QuizGenerator are what the processing service depends on.
// Both return the validated raw JSON alongside the decoded value.
type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (Summary, []byte, error)
}

type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req QuizRequest) (Quiz, []byte, error)
}
