package llm

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/pipeline"
	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

// DefaultContentBudget is the number of content characters sent per call.
const DefaultContentBudget = 12000

// BuildSummarySystemPrompt composes the system message for summarization.
func BuildSummarySystemPrompt(req SummaryRequest) string {
	maxWords := req.MaxWords
	if maxWords <= 0 {
		maxWords = 200
	}
	parts := []string{
		"You summarize university lecture material for students. Return ONLY JSON that matches the provided JSON Schema.",
		fmt.Sprintf("Write 'summary' in at most %d words, in plain prose, in the language of the lecture.", maxWords),
		"List up to 8 'key_points', each a single short sentence.",
		"Content between [TABLE] and [/TABLE] is a table with '|' separated cells; content between $$ lines is a formula. Refer to them by what they show.",
		"Audience guidance: " + audienceRubric(req.Lecture.Difficulty),
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildQuizSystemPrompt composes the system message for quiz generation.
func BuildQuizSystemPrompt(req QuizRequest) string {
	n := req.NumQuestions
	if n <= 0 {
		n = 5
	}
	parts := []string{
		"You write multiple-choice quizzes from university lecture material. Return ONLY JSON that matches the provided JSON Schema.",
		fmt.Sprintf("Write exactly %d questions with exactly 4 options each.", n),
		"'answer_index' is the zero-based index of the single correct option.",
		"Every question must be answerable from the lecture content alone; do not test trivia such as slide numbers or file names.",
		"Keep a short 'explanation' that cites the concept from the lecture.",
		"Difficulty guidance: " + audienceRubric(req.Lecture.Difficulty),
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

func audienceRubric(d constants.Difficulty) string {
	switch d {
	case constants.Easy:
		return "introductory material; favour definitions and recognition of core terms."
	case constants.Hard:
		return "advanced material; favour derivations, reasoning about formulas and comparing methods."
	default:
		return "intermediate material; favour applying methods and interpreting tables or examples."
	}
}

// BuildUserPrompt packages the lecture header and the content, truncated to
// budget characters without cutting through a table or formula block.
func BuildUserPrompt(lecture pipeline.ExtractedData, budget int, extra string) string {
	if budget <= 0 {
		budget = DefaultContentBudget
	}
	var b strings.Builder
	header := []struct{ k, v string }{
		{"Title", lecture.Title},
		{"Course", lecture.CourseID},
		{"Lecture", lecture.LectureID},
		{"Difficulty", string(lecture.Difficulty)},
	}
	for _, h := range header {
		v := strings.TrimSpace(h.v)
		if v == "" || v == constants.Unknown {
			continue
		}
		b.WriteString(h.k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}
	if s := strings.TrimSpace(extra); s != "" {
		b.WriteString("\nSummary:\n")
		b.WriteString(s)
		b.WriteString("\n")
	}

	content, truncated := TruncateContent(lecture.Content, budget)
	b.WriteString(fmt.Sprintf("\nLecture content (first ~%d chars):\n", budget))
	b.WriteString(content)
	if truncated {
		b.WriteString("\n…(truncated)")
	}
	return b.String()
}

// TruncateContent returns at most budget bytes of content cut on a line
// boundary. A table or formula block that does not fit is dropped whole.
func TruncateContent(content string, budget int) (string, bool) {
	if len(content) <= budget {
		return content, false
	}
	lines := textutil.SplitLines(content)

	var inTable, inFormula bool
	size, keep, start := 0, 0, -1
	for i, line := range lines {
		t := strings.TrimSpace(line)
		switch {
		case inTable:
			inTable = t != textutil.TableEnd
		case inFormula:
			inFormula = t != textutil.FormulaFence
		case t == textutil.TableStart:
			inTable, start = true, i
		case t == textutil.FormulaFence:
			inFormula, start = true, i
		default:
			start = -1
		}
		size += len(line) + 1
		if size > budget {
			if start >= 0 {
				keep = start
			}
			break
		}
		keep = i + 1
		if !inTable && !inFormula {
			start = -1
		}
	}
	return strings.TrimRight(textutil.JoinLines(lines[:keep]), "\n"), true
}
