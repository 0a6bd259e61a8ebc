package core

import (
	"log/slog"

	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/llm"
	"github.com/joseph-ayodele/lecture-processor/internal/llm/openai"
	"github.com/joseph-ayodele/lecture-processor/internal/pipeline"
	"github.com/joseph-ayodele/lecture-processor/internal/repository"
)

// Services is the set of repositories and the processor built over one store.
type Services struct {
	Lectures  repository.LectureRepository
	Jobs      repository.ExtractJobRepository
	Quizzes   repository.QuizRepository
	Processor *Processor
	// LLM is nil when no API key is configured.
	LLM *openai.Client
}

// Wire builds the processing services from cfg.
func Wire(cfg *common.Config, store *repository.Store, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Services{
		Lectures: repository.NewLectureRepository(store, logger),
		Jobs:     repository.NewExtractJobRepository(store, logger),
		Quizzes:  repository.NewQuizRepository(store, logger),
	}

	var (
		summarizer llm.Summarizer
		quizGen    llm.QuizGenerator
	)
	if cfg.LLM.APIKey != "" {
		s.LLM = openai.NewClient(openai.ConfigFromApp(cfg.LLM), logger)
		summarizer, quizGen = s.LLM, s.LLM
		logger.Info("OpenAI client initialized", "model", s.LLM.Model())
	} else {
		logger.Warn("OpenAI API key not configured, quiz generation disabled")
	}

	pipe := pipeline.New(pipeline.Options{DetectTables: cfg.Ingest.DetectTables}, logger)
	s.Processor = NewProcessor(logger, pipe, s.Lectures, s.Jobs, s.Quizzes, summarizer, quizGen, cfg.LLM.QuizQuestions, cfg.LLM.Model)
	return s
}
