package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/entity"
	"github.com/joseph-ayodele/lecture-processor/internal/pipeline"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	store, err := Open(ctx, Config{DSN: "sqlite::memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.Migrate(ctx))
	return store
}

func sampleData(course, lecture string) pipeline.ExtractedData {
	return pipeline.ExtractedData{
		CourseID:   course,
		LectureID:  lecture,
		Title:      "Sorting",
		Content:    "Merge sort\n[TABLE]\n| a | b |\n[/TABLE]\n$$\nT(n) = 2T(n/2) + n\n$$",
		Difficulty: constants.Medium,
		FileName:   "sorting.pdf",
		FileType:   constants.PDF,
	}
}

func TestOpen_RejectsUnknownDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{DSN: "mysql://x"}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestStore_HealthCheck(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background(), 0))
	assert.Equal(t, "sqlite3", store.Dialect())
}

func TestLectureRepository_UpsertDedupByHash(t *testing.T) {
	ctx := context.Background()
	repo := NewLectureRepository(newTestStore(t), nil)

	first, err := repo.Upsert(ctx, UpsertLectureRequest{Data: sampleData("CS101", "Lecture 1"), SourcePath: "/in/a.pdf", ContentHash: "h1", Pages: 3})
	require.NoError(t, err)
	assert.Equal(t, "CS101", first.CourseID)
	assert.Equal(t, 1, first.Tables)
	assert.Equal(t, 1, first.Formulas)
	assert.Equal(t, 3, first.Pages)

	updated := sampleData("CS101", "Lecture 2")
	second, err := repo.Upsert(ctx, UpsertLectureRequest{Data: updated, SourcePath: "/in/b.pdf", ContentHash: "h1", Degraded: true})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Lecture 2", second.LectureID)
	assert.Equal(t, "/in/b.pdf", second.SourcePath)
	assert.True(t, second.Degraded)

	all, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLectureRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := NewLectureRepository(newTestStore(t), nil)

	for i, c := range []struct{ course, lecture, hash string }{
		{"CS101", "Lecture 2", "a"},
		{"CS101", "Lecture 1", "b"},
		{"BIO200", "Week 1", "c"},
	} {
		_, err := repo.Upsert(ctx, UpsertLectureRequest{Data: sampleData(c.course, c.lecture), ContentHash: c.hash, Pages: i})
		require.NoError(t, err)
	}

	cs, err := repo.ListByCourse(ctx, "CS101")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "Lecture 1", cs[0].LectureID)

	page, err := repo.List(ctx, 2, 1)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	byHash, err := repo.GetByHash(ctx, "c")
	require.NoError(t, err)
	got, err := repo.GetByID(ctx, byHash.ID)
	require.NoError(t, err)
	assert.Equal(t, "BIO200", got.CourseID)
	assert.Equal(t, constants.Medium, got.Difficulty)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, common.IsNotFound(err))

	_, err = repo.Upsert(ctx, UpsertLectureRequest{Data: sampleData("X", "Y")})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestExtractJobRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	jobs := NewExtractJobRepository(store, nil)
	lectures := NewLectureRepository(store, nil)

	job, err := jobs.Start(ctx, "/in/a.pdf", constants.PDF)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusRunning, job.Status)

	lec, err := lectures.Upsert(ctx, UpsertLectureRequest{Data: sampleData("CS101", "Lecture 1"), ContentHash: "h"})
	require.NoError(t, err)
	require.NoError(t, jobs.FinishSuccess(ctx, job.ID, lec.ID, constants.JobStatusExtracted, []string{"page 2: bad font"}))

	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusExtracted, got.Status)
	require.NotNil(t, got.LectureID)
	assert.Equal(t, lec.ID, *got.LectureID)
	require.NotNil(t, got.FinishedAt)
	assert.Equal(t, []string{"page 2: bad font"}, got.Warnings)

	failed, err := jobs.Start(ctx, "/in/b.pptx", constants.PPTX)
	require.NoError(t, err)
	require.NoError(t, jobs.FinishFailure(ctx, failed.ID, "boom"))
	got, err = jobs.GetByID(ctx, failed.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFailed, got.Status)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "boom", *got.ErrorMessage)
	assert.Nil(t, got.LectureID)

	_, err = jobs.GetByID(ctx, uuid.New())
	assert.True(t, common.IsNotFound(err))
}

func TestQuizRepository_SaveAndLatest(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	lec, err := NewLectureRepository(store, nil).Upsert(ctx, UpsertLectureRequest{Data: sampleData("CS101", "Lecture 1"), ContentHash: "h"})
	require.NoError(t, err)

	quizzes := NewQuizRepository(store, nil)
	_, err = quizzes.GetByLecture(ctx, lec.ID)
	assert.True(t, common.IsNotFound(err))

	q := &entity.Quiz{
		LectureID: lec.ID,
		Model:     "gpt-4o-mini",
		Summary:   "Divide and conquer.",
		Questions: []entity.QuizQuestion{{Question: "Merge sort is?", Options: []string{"O(n)", "O(n log n)"}, AnswerIndex: 1}},
	}
	saved, err := quizzes.Save(ctx, q)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)

	got, err := quizzes.GetByLecture(ctx, lec.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, q.Questions, got.Questions)

	_, err = quizzes.Save(ctx, &entity.Quiz{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestInitDatabase_InMemory(t *testing.T) {
	cfg := common.LoadConfig()
	store, err := InitDatabase(context.Background(), cfg, true, nil)
	require.NoError(t, err)
	defer store.Close()

	_, err = NewLectureRepository(store, nil).List(context.Background(), 10, 0)
	assert.NoError(t, err)
}

func TestOpen_FileDSN(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "lectures.db")
	store, err := Open(ctx, Config{DSN: dsn}, nil)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Migrate(ctx))

	_, err = NewLectureRepository(store, nil).Upsert(ctx, UpsertLectureRequest{Data: sampleData("BIO1", "Week 1"), ContentHash: "f1"})
	assert.NoError(t, err)
}
