package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/core"
	repo "github.com/joseph-ayodele/lecture-processor/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: quizgen <lecture_id> [questions]")
		os.Exit(2)
	}
	lectureID, err := uuid.Parse(os.Args[1])
	if err != nil {
		logger.Error("invalid lecture_id", "arg", os.Args[1], "error", err)
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if len(os.Args) >= 3 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
			cfg.LLM.QuizQuestions = n
		}
	}
	if err := cfg.ValidateLLM(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.LLM.Timeout+30*time.Second)
	defer cancel()

	store, err := repo.InitDatabase(ctx, cfg, false, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := core.Wire(cfg, store, logger)

	start := time.Now()
	quiz, err := svc.Processor.GenerateQuizByID(ctx, lectureID)
	if err != nil {
		logger.Error("quiz generation failed", "lecture_id", lectureID, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}
	logger.Info("quiz generated",
		"lecture_id", lectureID,
		"quiz_id", quiz.ID,
		"questions", len(quiz.Questions),
		"duration_ms", time.Since(start).Milliseconds())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(quiz); err != nil {
		logger.Error("encode quiz", "error", err)
		os.Exit(1)
	}
}
