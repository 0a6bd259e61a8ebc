package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/entity"
)

func TestFieldAccessors(t *testing.T) {
	id := uuid.New()
	s, err := structpb.NewStruct(map[string]any{
		"path":  "  /tmp/a.pdf ",
		"force": true,
		"limit": 25,
		"id":    id.String(),
		"bad":   "nope",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/a.pdf", StringField(s, "path"))
	assert.Equal(t, "", StringField(s, "missing"))
	assert.True(t, BoolField(s, "force", false))
	assert.True(t, BoolField(s, "missing", true))
	assert.True(t, BoolField(s, "path", true))
	assert.Equal(t, 25, IntField(s, "limit", 100))
	assert.Equal(t, 100, IntField(s, "path", 100))

	got, err := ParseUUIDField(s, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	_, err = ParseUUIDField(s, "bad")
	assert.Error(t, err)
	_, err = ParseUUIDField(s, "missing")
	assert.EqualError(t, err, "missing is required")
}

func TestLectureAndJobFields(t *testing.T) {
	lec := &entity.Lecture{
		ID:         uuid.New(),
		CourseID:   "CS101",
		Title:      "Graphs",
		Content:    "BFS",
		Difficulty: constants.Easy,
		Pages:      2,
		CreatedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	s, err := ToStruct(LectureFields(lec, false))
	require.NoError(t, err)
	_, hasContent := s.GetFields()["content"]
	assert.False(t, hasContent)
	assert.Equal(t, "2024-01-02T03:04:05Z", s.GetFields()["created_at"].GetStringValue())
	assert.Equal(t, "", s.GetFields()["updated_at"].GetStringValue())
	assert.EqualValues(t, 2, s.GetFields()["pages"].GetNumberValue())
	assert.Equal(t, "BFS", LectureFields(lec, true)["content"])

	msg := "boom"
	job := &entity.ExtractJob{ID: uuid.New(), Status: constants.JobStatusFailed, ErrorMessage: &msg, Warnings: []string{"w"}}
	js, err := ToStruct(JobFields(job))
	require.NoError(t, err)
	assert.Equal(t, "FAILED", js.GetFields()["status"].GetStringValue())
	assert.Equal(t, "boom", js.GetFields()["error"].GetStringValue())
	_, hasLecture := js.GetFields()["lecture_id"]
	assert.False(t, hasLecture)
}
