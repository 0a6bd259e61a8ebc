package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/core"
	"github.com/joseph-ayodele/lecture-processor/internal/export"
	"github.com/joseph-ayodele/lecture-processor/internal/ingest"
	repo "github.com/joseph-ayodele/lecture-processor/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		inmem      = flag.Bool("inmem", false, "use in-memory SQLite database")
		dir        = flag.String("dir", "", "directory to process lectures from (required)")
		out        = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		course     = flag.String("course", "", "only export this course id")
		workers    = flag.Int("workers", 4, "number of files processed concurrently")
		force      = flag.Bool("force", false, "reprocess files already stored")
		withQuiz   = flag.Bool("quiz", false, "also generate a quiz per lecture (needs OPENAI_API_KEY)")
		skipHidden = flag.Bool("skip-hidden", true, "skip hidden files and directories")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *workers <= 0 {
		printError("Error: --workers must be positive\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(filepath.Clean(*dir)), "lectures.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := common.LoadConfig()
	if *withQuiz {
		if err := cfg.ValidateLLM(); err != nil {
			logger.Error("quiz generation unavailable", "error", err)
			os.Exit(1)
		}
	}

	store, err := repo.InitDatabase(ctx, cfg, *inmem, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := core.Wire(cfg, store, logger)

	paths, stats, err := ingest.Discover(*dir, *skipHidden)
	if err != nil {
		logger.Error("failed to scan directory", "error", err)
		os.Exit(1)
	}
	logger.Info("scan complete", "dir", *dir, "scanned", stats.Scanned, "matched", stats.Matched)

	var processed, deduplicated, degraded, failures atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			res, err := svc.Processor.Process(gctx, core.ProcessRequest{Path: path, Root: *dir, Force: *force, WithQuiz: *withQuiz})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Error("failed to process file", "path", path, "error", err)
				failures.Add(1)
				return nil
			}
			processed.Add(1)
			if res.Deduplicated {
				deduplicated.Add(1)
			}
			if res.Degraded {
				degraded.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("batch interrupted", "error", err)
		os.Exit(1)
	}

	logger.Info("exporting to XLSX", "output", *out)
	xlsxBytes, err := export.NewService(svc.Lectures, logger).ExportLecturesXLSX(ctx, *course)
	if err != nil {
		logger.Error("failed to export lectures", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0o644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("batch processing complete",
		"files_matched", len(paths),
		"files_processed", processed.Load(),
		"deduplicated", deduplicated.Load(),
		"degraded", degraded.Load(),
		"failures", failures.Load(),
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files matched: %d\n", len(paths))
	fmt.Printf("- Files processed: %d (%d already stored, %d degraded)\n", processed.Load(), deduplicated.Load(), degraded.Load())
	fmt.Printf("- Failures: %d\n", failures.Load())
	fmt.Printf("- Output: %s\n", *out)
	if failures.Load() > 0 {
		os.Exit(1)
	}
}
