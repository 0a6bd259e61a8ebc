package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/entity"
	"github.com/joseph-ayodele/lecture-processor/internal/llm"
	"github.com/joseph-ayodele/lecture-processor/internal/pipeline"
	"github.com/joseph-ayodele/lecture-processor/internal/repository"
)

// ProcessRequest names a file on disk to run through the pipeline.
type ProcessRequest struct {
	Path string
	// Root is the directory Path was found under. Course and lecture ids
	// are borrowed from a course/lecture/file layout below it; without a
	// Root only the file name is passed on.
	Root string
	// Force reprocesses bytes already stored under the same content hash.
	Force bool
	// WithQuiz also summarizes the lecture and stores a generated quiz.
	WithQuiz bool
}

// Result reports what happened to one file.
type Result struct {
	JobID        uuid.UUID
	Lecture      *entity.Lecture
	Quiz         *entity.Quiz
	Deduplicated bool
	Degraded     bool
}

// Processor coordinates extraction (pipeline) then the optional LLM stage
// (summary + quiz) and keeps extract_jobs current.
type Processor struct {
	logger        *slog.Logger
	pipe          *pipeline.Pipeline
	lectures      repository.LectureRepository
	jobs          repository.ExtractJobRepository
	quizzes       repository.QuizRepository
	summarizer    llm.Summarizer
	quizGen       llm.QuizGenerator
	quizQuestions int
	model         string
}

func NewProcessor(
	logger *slog.Logger,
	pipe *pipeline.Pipeline,
	lectures repository.LectureRepository,
	jobs repository.ExtractJobRepository,
	quizzes repository.QuizRepository,
	summarizer llm.Summarizer,
	quizGen llm.QuizGenerator,
	quizQuestions int,
	model string,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if pipe == nil {
		pipe = pipeline.New(pipeline.Options{DetectTables: true}, logger)
	}
	if quizQuestions <= 0 {
		quizQuestions = 5
	}
	return &Processor{
		logger:        logger,
		pipe:          pipe,
		lectures:      lectures,
		jobs:          jobs,
		quizzes:       quizzes,
		summarizer:    summarizer,
		quizGen:       quizGen,
		quizQuestions: quizQuestions,
		model:         model,
	}
}

// ProcessFile extracts and stores one lecture file.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	return p.Process(ctx, ProcessRequest{Path: path})
}

// ProcessFileWithQuiz extracts, stores, summarizes and quizzes one file.
func (p *Processor) ProcessFileWithQuiz(ctx context.Context, path string) (Result, error) {
	return p.Process(ctx, ProcessRequest{Path: path, WithQuiz: true})
}

func (p *Processor) Process(ctx context.Context, req ProcessRequest) (Result, error) {
	format := constants.MapExtToFormat(filepath.Ext(req.Path))
	if format == "" {
		return Result{}, common.UnsupportedFormatError(filepath.Ext(req.Path))
	}
	if req.WithQuiz && (p.summarizer == nil || p.quizGen == nil) {
		return Result{}, fmt.Errorf("quiz requested: %w", common.ErrLLMUnavailable)
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", req.Path, err)
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if !req.Force {
		existing, err := p.lectures.GetByHash(ctx, hash)
		switch {
		case err == nil:
			p.logger.Info("processor.skip.duplicate", "path", req.Path, "lecture_id", existing.ID)
			res := Result{Lecture: existing, Deduplicated: true, Degraded: existing.Degraded}
			if req.WithQuiz {
				return p.attachQuiz(ctx, res)
			}
			return res, nil
		case !common.IsNotFound(err):
			return Result{}, err
		}
	}

	job, err := p.jobs.Start(ctx, req.Path, format)
	if err != nil {
		return Result{}, err
	}
	res := Result{JobID: job.ID}

	out, err := p.pipe.Run(ctx, pipeline.Request{Data: data, FileType: filepath.Ext(req.Path), Key: storageKey(req.Path, req.Root)})
	if err != nil {
		p.fail(ctx, job.ID, err)
		return res, fmt.Errorf("extract: %w", err)
	}

	lec, err := p.lectures.Upsert(ctx, repository.UpsertLectureRequest{
		Data:        out.Data,
		SourcePath:  req.Path,
		ContentHash: hash,
		Pages:       out.Pages,
		Degraded:    out.Degraded,
	})
	if err != nil {
		p.fail(ctx, job.ID, err)
		return res, fmt.Errorf("store lecture: %w", err)
	}
	res.Lecture = lec
	res.Degraded = out.Degraded

	status := constants.JobStatusExtracted
	if out.Degraded {
		status = constants.JobStatusDegraded
	}
	if req.WithQuiz {
		res, err = p.attachQuiz(ctx, res)
		if err != nil {
			p.fail(ctx, job.ID, err)
			return res, err
		}
		status = constants.JobStatusQuizOK
	}
	if err := p.jobs.FinishSuccess(ctx, job.ID, lec.ID, status, out.Warnings); err != nil {
		return res, err
	}

	p.logger.Info("processor.file.ok",
		"job_id", job.ID,
		"lecture_id", lec.ID,
		"course_id", lec.CourseID,
		"difficulty", lec.Difficulty,
		"status", status,
		"elapsed_ms", out.Duration.Milliseconds(),
	)
	return res, nil
}

func (p *Processor) attachQuiz(ctx context.Context, res Result) (Result, error) {
	quiz, err := p.GenerateQuiz(ctx, res.Lecture)
	if err != nil {
		return res, err
	}
	res.Quiz = quiz
	return res, nil
}

// GenerateQuizByID loads a stored lecture and generates its quiz.
func (p *Processor) GenerateQuizByID(ctx context.Context, lectureID uuid.UUID) (*entity.Quiz, error) {
	lec, err := p.lectures.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	return p.GenerateQuiz(ctx, lec)
}

// GenerateQuiz summarizes lec, asks for a quiz grounded on the summary and
// the content, and stores both.
func (p *Processor) GenerateQuiz(ctx context.Context, lec *entity.Lecture) (*entity.Quiz, error) {
	if p.summarizer == nil || p.quizGen == nil {
		return nil, common.ErrLLMUnavailable
	}
	if lec.Degraded {
		return nil, fmt.Errorf("lecture %s has no extracted content: %w", lec.ID, common.ErrInvalidInput)
	}
	data := ToExtractedData(lec)

	summary, _, err := p.summarizer.Summarize(ctx, llm.SummaryRequest{Lecture: data})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	quiz, _, err := p.quizGen.GenerateQuiz(ctx, llm.QuizRequest{
		Lecture:      data,
		NumQuestions: p.quizQuestions,
		Summary:      summary.Summary,
	})
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	stored, err := p.quizzes.Save(ctx, &entity.Quiz{
		LectureID: lec.ID,
		Model:     p.model,
		Summary:   summary.Summary,
		Questions: toQuestions(quiz.Questions),
	})
	if err != nil {
		return nil, err
	}
	p.logger.Info("processor.quiz.ok", "lecture_id", lec.ID, "questions", len(stored.Questions))
	return stored, nil
}

func (p *Processor) fail(ctx context.Context, jobID uuid.UUID, cause error) {
	// record the failure even when ctx is what failed
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if err := p.jobs.FinishFailure(ctx, jobID, cause.Error()); err != nil {
		p.logger.Error("processor.job.finish_failed", "job_id", jobID, "err", err)
	}
}

// storageKey is path relative to root in slash form, or the base name when
// path is not below root.
func storageKey(path, root string) string {
	base := filepath.Base(path)
	if root == "" {
		return base
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return base
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return base
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return base
	}
	return filepath.ToSlash(rel)
}

// ToExtractedData rebuilds the pipeline record of a stored lecture.
func ToExtractedData(l *entity.Lecture) pipeline.ExtractedData {
	return pipeline.ExtractedData{
		CourseID:   l.CourseID,
		LectureID:  l.LectureID,
		Title:      l.Title,
		Content:    l.Content,
		Difficulty: l.Difficulty,
		FileName:   l.FileName,
		FileType:   strings.ToLower(l.FileType),
	}
}

func toQuestions(in []llm.Question) []entity.QuizQuestion {
	out := make([]entity.QuizQuestion, len(in))
	for i, q := range in {
		out[i] = entity.QuizQuestion{
			Question:    q.Question,
			Options:     q.Options,
			AnswerIndex: q.AnswerIndex,
			Explanation: q.Explanation,
		}
	}
	return out
}
