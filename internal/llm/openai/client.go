package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/llm"
)

var (
	_ llm.Summarizer    = (*Client)(nil)
	_ llm.QuizGenerator = (*Client)(nil)
)

// Summarize implements llm.Summarizer using chat/completions in JSON mode.
func (c *Client) Summarize(ctx context.Context, req llm.SummaryRequest) (llm.Summary, []byte, error) {
	ctx, rid := common.EnsureRequestID(ctx)
	c.logger.Info("llm.summary.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"title", req.Lecture.Title,
		"content_len", len(req.Lecture.Content),
	)

	schema := llm.BuildSummaryJSONSchema()
	sys := llm.BuildSummarySystemPrompt(req)
	user := llm.BuildUserPrompt(req.Lecture, req.ContentBudget, "")

	content, err := c.complete(ctx, "summary", sys, user, schema, func(raw []byte) ([]byte, error) {
		return llm.NormalizeSummaryJSON(raw)
	})
	if err != nil {
		return llm.Summary{}, content, err
	}

	var out llm.Summary
	if err := json.Unmarshal(content, &out); err != nil {
		return llm.Summary{}, content, fmt.Errorf("unmarshal summary: %w", err)
	}
	c.logger.Info("llm.summary.ok", "req_id", rid, "words", len(strings.Fields(out.Summary)), "key_points", len(out.KeyPoints))
	return out, content, nil
}

// GenerateQuiz implements llm.QuizGenerator.
func (c *Client) GenerateQuiz(ctx context.Context, req llm.QuizRequest) (llm.Quiz, []byte, error) {
	ctx, rid := common.EnsureRequestID(ctx)
	if req.NumQuestions <= 0 {
		req.NumQuestions = 5
	}
	c.logger.Info("llm.quiz.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"title", req.Lecture.Title,
		"questions", req.NumQuestions,
		"difficulty", req.Lecture.Difficulty,
	)

	schema := llm.BuildQuizJSONSchema(req.NumQuestions)
	sys := llm.BuildQuizSystemPrompt(req)
	user := llm.BuildUserPrompt(req.Lecture, req.ContentBudget, req.Summary)

	content, err := c.complete(ctx, "quiz", sys, user, schema, func(raw []byte) ([]byte, error) {
		cleaned, _, err := llm.NormalizeQuizJSON(raw, c.logger)
		return cleaned, err
	})
	if err != nil {
		return llm.Quiz{}, content, err
	}

	var out llm.Quiz
	if err := json.Unmarshal(content, &out); err != nil {
		return llm.Quiz{}, content, fmt.Errorf("unmarshal quiz: %w", err)
	}
	c.logger.Info("llm.quiz.ok", "req_id", rid, "questions", len(out.Questions))
	return out, content, nil
}

// complete runs one JSON-mode chat call and returns content that validates
// against schema, trying normalize once when strict validation fails.
func (c *Client) complete(ctx context.Context, op, sys, user string, schema map[string]any, normalize func([]byte) ([]byte, error)) ([]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key missing: %w", common.ErrLLMUnavailable)
	}
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": sys},
			{"role": "user", "content": user + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		var he *llm.HTTPError
		c.logger.Error("llm."+op+".http_error",
			"req_id", rid, "error", err,
			"retryable", errors.As(err, &he) && he.Retryable(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm."+op+".decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm."+op+".no_choices", "req_id", rid, "raw", string(raw))
		return raw, fmt.Errorf("no choices in openai response")
	}
	content := llm.ExtractJSONObject(cc.Choices[0].Message.Content)

	verr := llm.ValidateJSONAgainstSchema(schema, content)
	if verr == nil {
		return content, nil
	}
	if !c.cfg.Lenient {
		c.logger.Error("llm."+op+".schema_validation_failed", "req_id", rid, "error", verr)
		return content, fmt.Errorf("schema validation failed: %w", verr)
	}
	cleaned, nerr := normalize(content)
	if nerr != nil {
		c.logger.Error("llm."+op+".normalize_failed", "req_id", rid, "error", nerr)
		return content, fmt.Errorf("normalize failed: %w", nerr)
	}
	if verr := llm.ValidateJSONAgainstSchema(schema, cleaned); verr != nil {
		c.logger.Error("llm."+op+".schema_validation_failed", "req_id", rid, "error", verr)
		return cleaned, fmt.Errorf("schema validation failed: %w", verr)
	}
	c.logger.Warn("llm."+op+".lenient_normalize_applied", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
	return cleaned, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
