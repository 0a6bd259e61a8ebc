package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// NormalizeQuizJSON
// - Renames known synonyms (items -> questions, choices -> options, correct_index -> answer_index)
// - Coerces the answer from an index string, a letter ("B") or the option text
// - Drops questions without a usable question, options or answer
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeQuizJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("normalize quiz: decode: %w", err)
	}

	var dropped []string
	rename(m, &dropped, "items", "questions")
	rename(m, &dropped, "quiz", "questions")

	list, _ := m["questions"].([]any)
	clean := make([]any, 0, len(list))
	for i, item := range list {
		q, ok := item.(map[string]any)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("questions[%d](type)", i))
			continue
		}
		if nq, ok := normalizeQuestion(q); ok {
			clean = append(clean, nq)
		} else {
			dropped = append(dropped, fmt.Sprintf("questions[%d](unusable)", i))
		}
	}
	out, err := json.Marshal(map[string]any{"questions": clean})
	if err != nil {
		return nil, dropped, fmt.Errorf("normalize quiz: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.quiz.normalize", "dropped", dropped)
	}
	return out, dropped, nil
}

func normalizeQuestion(q map[string]any) (map[string]any, bool) {
	var ignored []string
	rename(q, &ignored, "prompt", "question")
	rename(q, &ignored, "text", "question")
	rename(q, &ignored, "choices", "options")
	rename(q, &ignored, "answers", "options")
	rename(q, &ignored, "correct_index", "answer_index")
	rename(q, &ignored, "correct", "answer_index")
	rename(q, &ignored, "answer", "answer_index")

	question, _ := q["question"].(string)
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, false
	}

	rawOpts, _ := q["options"].([]any)
	opts := make([]string, 0, len(rawOpts))
	for _, o := range rawOpts {
		if s, ok := o.(string); ok && strings.TrimSpace(s) != "" {
			opts = append(opts, strings.TrimSpace(s))
		}
	}
	if len(opts) < 2 {
		return nil, false
	}

	idx, ok := answerIndex(q["answer_index"], opts)
	if !ok {
		return nil, false
	}

	out := map[string]any{
		"question":     question,
		"options":      opts,
		"answer_index": idx,
	}
	if e, ok := q["explanation"].(string); ok && strings.TrimSpace(e) != "" {
		out["explanation"] = strings.TrimSpace(e)
	}
	return out, true
}

// answerIndex resolves the many ways models encode the correct option.
func answerIndex(v any, opts []string) (int, bool) {
	valid := func(i int) (int, bool) { return i, i >= 0 && i < len(opts) }
	switch t := v.(type) {
	case float64:
		return valid(int(t))
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return valid(n)
		}
		if len(s) == 1 {
			c := strings.ToUpper(s)[0]
			if c >= 'A' && c <= 'Z' {
				return valid(int(c - 'A'))
			}
		}
		for i, o := range opts {
			if strings.EqualFold(o, s) {
				return i, true
			}
		}
	}
	return -1, false
}

// NormalizeSummaryJSON trims the summary, drops empty key points and unknown keys.
func NormalizeSummaryJSON(raw []byte) ([]byte, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("normalize summary: decode: %w", err)
	}
	var ignored []string
	rename(m, &ignored, "keyPoints", "key_points")
	rename(m, &ignored, "bullets", "key_points")

	out := map[string]any{}
	if s, ok := m["summary"].(string); ok {
		out["summary"] = strings.TrimSpace(s)
	}
	if list, ok := m["key_points"].([]any); ok {
		var points []string
		for _, p := range list {
			if s, ok := p.(string); ok && strings.TrimSpace(s) != "" {
				points = append(points, strings.TrimSpace(s))
			}
		}
		if len(points) > 0 {
			out["key_points"] = points
		}
	}
	return json.Marshal(out)
}

// rename moves m[from] to m[to] unless to is already present.
func rename(m map[string]any, log *[]string, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	if _, exists := m[to]; !exists {
		m[to] = v
	}
	delete(m, from)
	*log = append(*log, from+"->"+to)
}
