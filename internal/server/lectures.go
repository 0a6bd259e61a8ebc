package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/async"
	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/core"
	"github.com/joseph-ayodele/lecture-processor/internal/entity"
	"github.com/joseph-ayodele/lecture-processor/internal/ingest"
	"github.com/joseph-ayodele/lecture-processor/internal/repository"
	"github.com/joseph-ayodele/lecture-processor/internal/utils"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Processor is the part of core.Processor the service calls.
type Processor interface {
	Process(ctx context.Context, req core.ProcessRequest) (core.Result, error)
	GenerateQuizByID(ctx context.Context, lectureID uuid.UUID) (*entity.Quiz, error)
}

// Exporter renders lecture workbooks.
type Exporter interface {
	ExportLecturesXLSX(ctx context.Context, courseID string) ([]byte, error)
}

// Deps wires the service. Queue, Ingestor and Exporter may be nil; the
// matching methods then answer Unimplemented.
type Deps struct {
	Processor Processor
	Lectures  repository.LectureRepository
	Jobs      repository.ExtractJobRepository
	Quizzes   repository.QuizRepository
	Exporter  Exporter
	Ingestor  ingest.Ingestor
	Queue     async.Queue
}

type LectureServer struct {
	deps   Deps
	logger *slog.Logger
}

var _ LectureServiceServer = (*LectureServer)(nil)

func NewLectureServer(deps Deps, logger *slog.Logger) *LectureServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LectureServer{deps: deps, logger: logger}
}

func respond(fields map[string]any) (*structpb.Struct, error) {
	out, err := utils.ToStruct(fields)
	if err != nil {
		return nil, common.InternalError(err.Error())
	}
	return out, nil
}

// checkPath validates a document path and the optional file_type hint.
func checkPath(req *structpb.Struct) (string, error) {
	path := utils.StringField(req, "path")
	v := common.NewValidator().Field("path", path, common.Required)
	if ft := utils.StringField(req, "file_type"); ft != "" {
		v.Field("file_type", ft, common.FileType)
		if !v.HasErrors() && constants.MapExtToFormat(ft) != constants.MapExtToFormat(filepath.Ext(path)) {
			return "", common.InvalidArgumentErrorf("file_type %q does not match %s", ft, filepath.Base(path))
		}
	}
	if err := common.ValidateAndReturnError(v); err != nil {
		return "", err
	}
	if constants.MapExtToFormat(filepath.Ext(path)) == "" {
		return "", common.ToStatus(common.UnsupportedFormatError(filepath.Ext(path)))
	}
	return path, nil
}

// ExtractDocument processes one file synchronously and returns the stored
// lecture with its content.
func (s *LectureServer) ExtractDocument(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	path, err := checkPath(req)
	if err != nil {
		return nil, err
	}
	res, err := s.deps.Processor.Process(ctx, core.ProcessRequest{
		Path:     path,
		Force:    utils.BoolField(req, "force", false),
		WithQuiz: utils.BoolField(req, "with_quiz", false),
	})
	if err != nil {
		s.logger.Error("server.extract.failed", "path", path, "err", err)
		return nil, common.ToStatus(err)
	}

	out := map[string]any{
		"deduplicated": res.Deduplicated,
		"degraded":     res.Degraded,
		"lecture":      utils.LectureFields(res.Lecture, true),
	}
	if res.JobID != uuid.Nil {
		out["job_id"] = res.JobID.String()
	}
	if res.Quiz != nil {
		out["quiz"] = utils.QuizFields(res.Quiz)
	}
	return respond(out)
}

// EnqueueDocument hands a file to the background workers.
func (s *LectureServer) EnqueueDocument(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.deps.Queue == nil {
		return nil, status.Error(codes.Unimplemented, "background processing is not enabled")
	}
	path, err := checkPath(req)
	if err != nil {
		return nil, err
	}
	job := async.Job{
		Path:        path,
		Force:       utils.BoolField(req, "force", false),
		WithQuiz:    utils.BoolField(req, "with_quiz", false),
		SubmittedAt: time.Now().UTC(),
		TraceID:     common.RequestIDFromContext(ctx),
	}
	if err := s.deps.Queue.Enqueue(ctx, job); err != nil {
		if errors.Is(err, async.ErrQueueClosed) {
			return nil, status.Error(codes.Unavailable, err.Error())
		}
		return nil, status.FromContextError(err).Err()
	}
	return respond(map[string]any{"accepted": true, "path": path, "trace_id": job.TraceID})
}

func (s *LectureServer) IngestDirectory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.deps.Ingestor == nil {
		return nil, status.Error(codes.Unimplemented, "directory ingest is not enabled")
	}
	root := utils.StringField(req, "root_path")
	if root == "" {
		return nil, common.InvalidArgumentError("root_path is required")
	}
	skipHidden := utils.BoolField(req, "skip_hidden", true)

	results, stats, err := s.deps.Ingestor.IngestDirectory(ctx, root, skipHidden)
	if err != nil {
		return nil, common.ToStatus(err)
	}
	items := make([]any, 0, len(results))
	for _, r := range results {
		items = append(items, utils.IngestionFields(r))
	}
	return respond(map[string]any{
		"scanned":      int(stats.Scanned),
		"matched":      int(stats.Matched),
		"succeeded":    int(stats.Succeeded),
		"deduplicated": int(stats.Deduplicated),
		"degraded":     int(stats.Degraded),
		"failed":       int(stats.Failed),
		"results":      items,
	})
}

func (s *LectureServer) GetLecture(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := utils.ParseUUIDField(req, "id")
	if err != nil {
		return nil, common.InvalidArgumentError(err.Error())
	}
	lec, err := s.deps.Lectures.GetByID(ctx, id)
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]any{"lecture": utils.LectureFields(lec, true)})
}

// ListLectures lists one course, or every lecture page by page when
// course_id is empty. Content is omitted.
func (s *LectureServer) ListLectures(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	courseID := utils.StringField(req, "course_id")
	var (
		lecs []*entity.Lecture
		err  error
	)
	if courseID != "" {
		lecs, err = s.deps.Lectures.ListByCourse(ctx, courseID)
	} else {
		limit := utils.IntField(req, "limit", defaultListLimit)
		if limit <= 0 || limit > maxListLimit {
			return nil, common.InvalidArgumentErrorf("limit must be between 1 and %d", maxListLimit)
		}
		offset := utils.IntField(req, "offset", 0)
		if offset < 0 {
			return nil, common.InvalidArgumentError("offset must not be negative")
		}
		lecs, err = s.deps.Lectures.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, common.ToStatus(err)
	}
	items := make([]any, 0, len(lecs))
	for _, l := range lecs {
		items = append(items, utils.LectureFields(l, false))
	}
	return respond(map[string]any{"lectures": items})
}

func (s *LectureServer) GetJob(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := utils.ParseUUIDField(req, "id")
	if err != nil {
		return nil, common.InvalidArgumentError(err.Error())
	}
	job, err := s.deps.Jobs.GetByID(ctx, id)
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]any{"job": utils.JobFields(job)})
}

func (s *LectureServer) GenerateQuiz(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := utils.ParseUUIDField(req, "lecture_id")
	if err != nil {
		return nil, common.InvalidArgumentError(err.Error())
	}
	quiz, err := s.deps.Processor.GenerateQuizByID(ctx, id)
	if err != nil {
		s.logger.Error("server.quiz.failed", "lecture_id", id, "err", err)
		return nil, common.ToStatus(err)
	}
	return respond(map[string]any{"quiz": utils.QuizFields(quiz)})
}

func (s *LectureServer) GetQuiz(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := utils.ParseUUIDField(req, "lecture_id")
	if err != nil {
		return nil, common.InvalidArgumentError(err.Error())
	}
	quiz, err := s.deps.Quizzes.GetByLecture(ctx, id)
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]any{"quiz": utils.QuizFields(quiz)})
}

// ExportLectures returns the XLSX workbook as bytes (base64 in the Struct).
func (s *LectureServer) ExportLectures(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.deps.Exporter == nil {
		return nil, status.Error(codes.Unimplemented, "export is not enabled")
	}
	courseID := utils.StringField(req, "course_id")
	data, err := s.deps.Exporter.ExportLecturesXLSX(ctx, courseID)
	if err != nil {
		return nil, common.ToStatus(err)
	}
	name := "lectures.xlsx"
	if courseID != "" {
		name = fmt.Sprintf("lectures_%s.xlsx", courseID)
	}
	return respond(map[string]any{"filename": name, "xlsx": data})
}
