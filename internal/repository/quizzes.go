package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/entity"
)

type QuizRepository interface {
	Save(ctx context.Context, quiz *entity.Quiz) (*entity.Quiz, error)
	// GetByLecture returns the most recent quiz of a lecture.
	GetByLecture(ctx context.Context, lectureID uuid.UUID) (*entity.Quiz, error)
}

type quizRepo struct {
	store  *Store
	logger *slog.Logger
}

func NewQuizRepository(store *Store, logger *slog.Logger) QuizRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &quizRepo{store: store, logger: logger}
}

func (r *quizRepo) Save(ctx context.Context, quiz *entity.Quiz) (*entity.Quiz, error) {
	if quiz == nil || quiz.LectureID == uuid.Nil {
		return nil, fmt.Errorf("quiz lecture id is required: %w", common.ErrInvalidInput)
	}
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	out := *quiz
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	q, args := r.store.builder().Insert(QuizzesTable.Name).
		Columns("id", "model", "summary", "questions", "created_at", "lecture_ref").
		Values(out.ID, out.Model, out.Summary, string(questions), out.CreatedAt, out.LectureID).
		Query()
	if err := r.store.drv.Exec(ctx, q, args, nil); err != nil {
		r.logger.Error("failed to save quiz", "lecture_id", quiz.LectureID, "error", err)
		return nil, fmt.Errorf("%w: save quiz: %w", common.ErrDatabase, err)
	}
	r.logger.Info("quiz stored", "quiz_id", out.ID, "lecture_id", out.LectureID, "questions", len(out.Questions))
	return &out, nil
}

func (r *quizRepo) GetByLecture(ctx context.Context, lectureID uuid.UUID) (*entity.Quiz, error) {
	b := r.store.builder()
	q, args := b.Select("id", "model", "summary", "questions", "created_at", "lecture_ref").
		From(b.Table(QuizzesTable.Name)).
		Where(entsql.EQ("lecture_ref", lectureID)).
		OrderBy("created_at").
		Query()

	var latest *entity.Quiz
	err := queryRows(ctx, r.store.drv, q, args, func(rows *entsql.Rows) error {
		var (
			qz        entity.Quiz
			questions string
		)
		if err := rows.Scan(&qz.ID, &qz.Model, &qz.Summary, &questions, &qz.CreatedAt, &qz.LectureID); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(questions), &qz.Questions); err != nil {
			return fmt.Errorf("decode questions: %w", err)
		}
		latest = &qz
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get quiz: %w", common.ErrDatabase, err)
	}
	if latest == nil {
		return nil, fmt.Errorf("quiz for lecture %s: %w", lectureID, common.ErrNotFound)
	}
	return latest, nil
}
