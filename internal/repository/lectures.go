package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/entity"
	"github.com/joseph-ayodele/lecture-processor/internal/pipeline"
)

// UpsertLectureRequest wraps a pipeline result and its source.
type UpsertLectureRequest struct {
	Data        pipeline.ExtractedData
	SourcePath  string
	ContentHash string
	Pages       int
	Degraded    bool
}

type LectureRepository interface {
	// Upsert stores a lecture keyed by the hash of its source bytes. A second
	// upload of the same bytes refreshes the existing row.
	Upsert(ctx context.Context, req UpsertLectureRequest) (*entity.Lecture, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lecture, error)
	GetByHash(ctx context.Context, hash string) (*entity.Lecture, error)
	ListByCourse(ctx context.Context, courseID string) ([]*entity.Lecture, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Lecture, error)
}

type lectureRepo struct {
	store  *Store
	logger *slog.Logger
}

func NewLectureRepository(store *Store, logger *slog.Logger) LectureRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &lectureRepo{store: store, logger: logger}
}

var lectureColumns = []string{
	"id", "course_id", "lecture_id", "title", "content", "difficulty", "file_name", "file_type",
	"source_path", "content_hash", "pages", "characters", "tables", "formulas", "degraded",
	"created_at", "updated_at",
}

func scanLecture(rows *entsql.Rows) (*entity.Lecture, error) {
	var (
		l          entity.Lecture
		difficulty string
	)
	err := rows.Scan(
		&l.ID, &l.CourseID, &l.LectureID, &l.Title, &l.Content, &difficulty, &l.FileName, &l.FileType,
		&l.SourcePath, &l.ContentHash, &l.Pages, &l.Characters, &l.Tables, &l.Formulas, &l.Degraded,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan lecture: %w", err)
	}
	l.Difficulty = constants.Difficulty(difficulty)
	return &l, nil
}

func (r *lectureRepo) selectLectures(ctx context.Context, db dialect.ExecQuerier, sel *entsql.Selector) ([]*entity.Lecture, error) {
	q, args := sel.Query()
	var out []*entity.Lecture
	err := queryRows(ctx, db, q, args, func(rows *entsql.Rows) error {
		l, err := scanLecture(rows)
		if err != nil {
			return err
		}
		out = append(out, l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDatabase, err)
	}
	return out, nil
}

func (r *lectureRepo) one(ctx context.Context, db dialect.ExecQuerier, pred *entsql.Predicate, what string) (*entity.Lecture, error) {
	b := r.store.builder()
	list, err := r.selectLectures(ctx, db, b.Select(lectureColumns...).From(b.Table(LecturesTable.Name)).Where(pred).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("lecture %s: %w", what, common.ErrNotFound)
	}
	return list[0], nil
}

func (r *lectureRepo) Upsert(ctx context.Context, req UpsertLectureRequest) (*entity.Lecture, error) {
	if req.ContentHash == "" {
		return nil, fmt.Errorf("content hash is required: %w", common.ErrInvalidInput)
	}
	d := req.Data
	format := constants.MapExtToFormat(d.FileType)
	if format == "" {
		return nil, fmt.Errorf("file type %q: %w", d.FileType, common.ErrInvalidInput)
	}
	stats := pipeline.Stats(d.Content)
	now := time.Now().UTC()

	var out *entity.Lecture
	err := r.store.inTx(ctx, func(tx dialect.Tx) error {
		existing, err := r.one(ctx, tx, entsql.EQ("content_hash", req.ContentHash), "hash "+req.ContentHash)
		if err != nil && !common.IsNotFound(err) {
			return err
		}

		b := r.store.builder()
		if existing != nil {
			q, args := b.Update(LecturesTable.Name).
				Set("course_id", d.CourseID).
				Set("lecture_id", d.LectureID).
				Set("title", d.Title).
				Set("content", d.Content).
				Set("difficulty", string(d.Difficulty)).
				Set("file_name", d.FileName).
				Set("file_type", format).
				Set("source_path", req.SourcePath).
				Set("pages", req.Pages).
				Set("characters", stats.Characters).
				Set("tables", stats.Tables).
				Set("formulas", stats.Formulas).
				Set("degraded", req.Degraded).
				Set("updated_at", now).
				Where(entsql.EQ("id", existing.ID)).
				Query()
			if err := tx.Exec(ctx, q, args, nil); err != nil {
				return fmt.Errorf("%w: update lecture: %w", common.ErrDatabase, err)
			}
			r.logger.Info("lecture refreshed", "id", existing.ID, "hash", req.ContentHash)
			out, err = r.one(ctx, tx, entsql.EQ("id", existing.ID), existing.ID.String())
			return err
		}

		id := uuid.New()
		q, args := b.Insert(LecturesTable.Name).
			Columns(lectureColumns...).
			Values(
				id, d.CourseID, d.LectureID, d.Title, d.Content, string(d.Difficulty), d.FileName, format,
				req.SourcePath, req.ContentHash, req.Pages, stats.Characters, stats.Tables, stats.Formulas, req.Degraded,
				now, now,
			).
			Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("%w: insert lecture: %w", common.ErrDatabase, err)
		}
		r.logger.Info("lecture stored", "id", id, "course_id", d.CourseID, "lecture_id", d.LectureID)
		out, err = r.one(ctx, tx, entsql.EQ("id", id), id.String())
		return err
	})
	if err != nil {
		r.logger.Error("failed to upsert lecture", "source_path", req.SourcePath, "error", err)
		return nil, err
	}
	return out, nil
}

func (r *lectureRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lecture, error) {
	return r.one(ctx, r.store.drv, entsql.EQ("id", id), id.String())
}

func (r *lectureRepo) GetByHash(ctx context.Context, hash string) (*entity.Lecture, error) {
	return r.one(ctx, r.store.drv, entsql.EQ("content_hash", hash), "hash "+hash)
}

func (r *lectureRepo) ListByCourse(ctx context.Context, courseID string) ([]*entity.Lecture, error) {
	b := r.store.builder()
	sel := b.Select(lectureColumns...).
		From(b.Table(LecturesTable.Name)).
		Where(entsql.EQ("course_id", courseID)).
		OrderBy("lecture_id", "created_at")
	list, err := r.selectLectures(ctx, r.store.drv, sel)
	if err != nil {
		r.logger.Error("failed to list lectures", "course_id", courseID, "error", err)
		return nil, err
	}
	return list, nil
}

func (r *lectureRepo) List(ctx context.Context, limit, offset int) ([]*entity.Lecture, error) {
	b := r.store.builder()
	sel := b.Select(lectureColumns...).
		From(b.Table(LecturesTable.Name)).
		OrderBy("course_id", "lecture_id", "created_at")
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	if offset > 0 {
		sel = sel.Offset(offset)
	}
	return r.selectLectures(ctx, r.store.drv, sel)
}
