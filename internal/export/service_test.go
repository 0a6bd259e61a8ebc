package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/entity"
	"github.com/joseph-ayodele/lecture-processor/internal/repository"
)

type fakeLectures struct {
	repository.LectureRepository
	byCourse map[string][]*entity.Lecture
	all      []*entity.Lecture
	err      error
}

func (f *fakeLectures) ListByCourse(_ context.Context, courseID string) ([]*entity.Lecture, error) {
	return f.byCourse[courseID], f.err
}

func (f *fakeLectures) List(_ context.Context, _, _ int) ([]*entity.Lecture, error) {
	return f.all, f.err
}

func lecture(course, lec, title string) *entity.Lecture {
	return &entity.Lecture{
		ID:         uuid.New(),
		CourseID:   course,
		LectureID:  lec,
		Title:      title,
		Difficulty: constants.Hard,
		FileName:   "deck.pptx",
		FileType:   constants.PPTX,
		Characters: 1200,
		Tables:     2,
		Formulas:   1,
		UpdatedAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func openRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func TestExportLecturesXLSX_ByCourse(t *testing.T) {
	repo := &fakeLectures{byCourse: map[string][]*entity.Lecture{
		"PHYS201": {lecture("PHYS201", "Lecture 3", "Quantum tunnelling"), lecture("PHYS201", "Lecture 4", "Spin")},
	}}
	data, err := NewService(repo, nil).ExportLecturesXLSX(context.Background(), " PHYS201 ")
	require.NoError(t, err)

	rows := openRows(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{
		"PHYS201", "Lecture 3", "Quantum tunnelling", "Hard", "deck.pptx", "PPTX",
		"1200", "2", "1", "FALSE", "2024-03-01T10:00:00Z",
	}, rows[1])
}

func TestExportLecturesXLSX_AllAndEmpty(t *testing.T) {
	repo := &fakeLectures{all: []*entity.Lecture{lecture("A", "1", strings.Repeat("x", 200))}}
	data, err := NewService(repo, nil).ExportLecturesXLSX(context.Background(), "")
	require.NoError(t, err)
	rows := openRows(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, 140, len([]rune(rows[1][2])))
	assert.True(t, strings.HasSuffix(rows[1][2], "…"))

	data, err = NewService(&fakeLectures{}, nil).ExportLecturesXLSX(context.Background(), "none")
	require.NoError(t, err)
	assert.Len(t, openRows(t, data), 1)
}

func TestExportLecturesXLSX_RepoError(t *testing.T) {
	_, err := NewService(&fakeLectures{err: errors.New("db down")}, nil).ExportLecturesXLSX(context.Background(), "")
	assert.ErrorContains(t, err, "query lectures")
}
