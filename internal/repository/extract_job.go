package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/entity"
)

type ExtractJobRepository interface {
	Start(ctx context.Context, sourcePath, format string) (*entity.ExtractJob, error)
	// FinishSuccess links the job to its lecture; status is EXTRACT_OK,
	// DEGRADED or QUIZ_OK.
	FinishSuccess(ctx context.Context, jobID, lectureID uuid.UUID, status constants.JobStatus, warnings []string) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ExtractJob, error)
}

type extractJobRepo struct {
	store *Store
	log   *slog.Logger
}

func NewExtractJobRepository(store *Store, log *slog.Logger) ExtractJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &extractJobRepo{store: store, log: log}
}

func (r *extractJobRepo) Start(ctx context.Context, sourcePath, format string) (*entity.ExtractJob, error) {
	job := &entity.ExtractJob{
		ID:         uuid.New(),
		SourcePath: sourcePath,
		Format:     format,
		Status:     constants.JobStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	q, args := r.store.builder().Insert(ExtractJobsTable.Name).
		Columns("id", "source_path", "format", "status", "started_at").
		Values(job.ID, job.SourcePath, job.Format, string(job.Status), job.StartedAt).
		Query()
	if err := r.store.drv.Exec(ctx, q, args, nil); err != nil {
		r.log.Error("extract_job start failed", "source_path", sourcePath, "err", err)
		return nil, fmt.Errorf("%w: start job: %w", common.ErrDatabase, err)
	}
	r.log.Info("extract_job started", "job_id", job.ID, "source_path", sourcePath, "format", format)
	return job, nil
}

func (r *extractJobRepo) FinishSuccess(ctx context.Context, jobID, lectureID uuid.UUID, status constants.JobStatus, warnings []string) error {
	var warn any
	if len(warnings) > 0 {
		b, err := json.Marshal(warnings)
		if err != nil {
			return fmt.Errorf("encode warnings: %w", err)
		}
		warn = string(b)
	}
	q, args := r.store.builder().Update(ExtractJobsTable.Name).
		Set("status", string(status)).
		Set("finished_at", time.Now().UTC()).
		Set("lecture_ref", lectureID).
		Set("warnings", warn).
		Where(entsql.EQ("id", jobID)).
		Query()
	if err := r.store.drv.Exec(ctx, q, args, nil); err != nil {
		r.log.Error("extract_job finish(OK) failed", "job_id", jobID, "err", err)
		return fmt.Errorf("%w: finish job: %w", common.ErrDatabase, err)
	}
	r.log.Info("extract_job finished", "job_id", jobID, "status", status, "lecture_id", lectureID)
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	q, args := r.store.builder().Update(ExtractJobsTable.Name).
		Set("status", string(constants.JobStatusFailed)).
		Set("finished_at", time.Now().UTC()).
		Set("error_message", message).
		Where(entsql.EQ("id", jobID)).
		Query()
	if err := r.store.drv.Exec(ctx, q, args, nil); err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return fmt.Errorf("%w: finish job: %w", common.ErrDatabase, err)
	}
	r.log.Warn("extract_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ExtractJob, error) {
	b := r.store.builder()
	q, args := b.Select("id", "source_path", "format", "status", "started_at", "finished_at", "error_message", "warnings", "lecture_ref").
		From(b.Table(ExtractJobsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var job *entity.ExtractJob
	err := queryRows(ctx, r.store.drv, q, args, func(rows *entsql.Rows) error {
		var (
			j        entity.ExtractJob
			status   string
			finished sql.NullTime
			errMsg   sql.NullString
			warnings sql.NullString
			lecture  uuid.NullUUID
		)
		if err := rows.Scan(&j.ID, &j.SourcePath, &j.Format, &status, &j.StartedAt, &finished, &errMsg, &warnings, &lecture); err != nil {
			return err
		}
		j.Status = constants.JobStatus(status)
		if finished.Valid {
			j.FinishedAt = &finished.Time
		}
		if errMsg.Valid {
			j.ErrorMessage = &errMsg.String
		}
		if lecture.Valid {
			j.LectureID = &lecture.UUID
		}
		if warnings.Valid && warnings.String != "" {
			if err := json.Unmarshal([]byte(warnings.String), &j.Warnings); err != nil {
				return fmt.Errorf("decode warnings: %w", err)
			}
		}
		job = &j
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get job: %w", common.ErrDatabase, err)
	}
	if job == nil {
		return nil, fmt.Errorf("extract job %s: %w", id, common.ErrNotFound)
	}
	return job, nil
}
