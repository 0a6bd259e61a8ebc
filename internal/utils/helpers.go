package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/lecture-processor/internal/entity"
	"github.com/joseph-ayodele/lecture-processor/internal/ingest"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// LectureFields flattens a lecture for a structpb payload. Content is left
// out when withContent is false so listings stay small.
func LectureFields(l *entity.Lecture, withContent bool) map[string]any {
	m := map[string]any{
		"id":          l.ID.String(),
		"course_id":   l.CourseID,
		"lecture_id":  l.LectureID,
		"title":       l.Title,
		"difficulty":  string(l.Difficulty),
		"file_name":   l.FileName,
		"file_type":   l.FileType,
		"source_path": l.SourcePath,
		"pages":       l.Pages,
		"characters":  l.Characters,
		"tables":      l.Tables,
		"formulas":    l.Formulas,
		"degraded":    l.Degraded,
		"created_at":  formatTime(l.CreatedAt),
		"updated_at":  formatTime(l.UpdatedAt),
	}
	if withContent {
		m["content"] = l.Content
	}
	return m
}

func QuizFields(q *entity.Quiz) map[string]any {
	questions := make([]any, 0, len(q.Questions))
	for _, qq := range q.Questions {
		opts := make([]any, len(qq.Options))
		for i, o := range qq.Options {
			opts[i] = o
		}
		questions = append(questions, map[string]any{
			"question":     qq.Question,
			"options":      opts,
			"answer_index": qq.AnswerIndex,
			"explanation":  qq.Explanation,
		})
	}
	return map[string]any{
		"id":         q.ID.String(),
		"lecture_id": q.LectureID.String(),
		"model":      q.Model,
		"summary":    q.Summary,
		"questions":  questions,
		"created_at": formatTime(q.CreatedAt),
	}
}

func IngestionFields(r ingest.IngestionResult) map[string]any {
	return map[string]any{
		"source_path":  r.SourcePath,
		"lecture_id":   r.LectureID,
		"job_id":       r.JobID,
		"deduplicated": r.Deduplicated,
		"degraded":     r.Degraded,
		"error":        r.Err,
	}
}

// ToStruct converts fields into a protobuf Struct.
func ToStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode struct: %w", err)
	}
	return s, nil
}

// StringField returns the trimmed string value at key, or "".
func StringField(s *structpb.Struct, key string) string {
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(v.GetStringValue())
}

// BoolField returns the bool at key, or def when the key is absent.
func BoolField(s *structpb.Struct, key string, def bool) bool {
	v, ok := s.GetFields()[key]
	if !ok {
		return def
	}
	if _, isBool := v.GetKind().(*structpb.Value_BoolValue); !isBool {
		return def
	}
	return v.GetBoolValue()
}

// IntField returns the number at key truncated to int, or def.
func IntField(s *structpb.Struct, key string, def int) int {
	v, ok := s.GetFields()[key]
	if !ok {
		return def
	}
	if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum {
		return def
	}
	return int(v.GetNumberValue())
}

// ParseUUIDField parses the id at key.
func ParseUUIDField(s *structpb.Struct, key string) (uuid.UUID, error) {
	raw := StringField(s, key)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%s is required", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a UUID", key)
	}
	return id, nil
}

func JobFields(j *entity.ExtractJob) map[string]any {
	m := map[string]any{
		"id":          j.ID.String(),
		"source_path": j.SourcePath,
		"format":      j.Format,
		"status":      string(j.Status),
		"started_at":  formatTime(j.StartedAt),
	}
	if j.LectureID != nil {
		m["lecture_id"] = j.LectureID.String()
	}
	if j.FinishedAt != nil {
		m["finished_at"] = formatTime(*j.FinishedAt)
	}
	if j.ErrorMessage != nil {
		m["error"] = *j.ErrorMessage
	}
	if len(j.Warnings) > 0 {
		w := make([]any, len(j.Warnings))
		for i, s := range j.Warnings {
			w[i] = s
		}
		m["warnings"] = w
	}
	return m
}
