package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/lecture-processor/internal/async"
	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/core"
	"github.com/joseph-ayodele/lecture-processor/internal/export"
	"github.com/joseph-ayodele/lecture-processor/internal/ingest"
	repo "github.com/joseph-ayodele/lecture-processor/internal/repository"
	"github.com/joseph-ayodele/lecture-processor/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repo.InitDatabase(ctx, cfg, false, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("DB health OK", "dialect", store.Dialect())

	svc := core.Wire(cfg, store, logger)
	withQuiz := svc.LLM != nil

	queue := async.NewProcessorQueue(svc.Processor, logger,
		async.WithWorkers(cfg.Ingest.Workers),
		async.WithQueueSize(cfg.Ingest.QueueSize),
		async.WithProcessTimeout(cfg.Ingest.JobTimeout),
	)

	if cfg.Ingest.WatchDir != "" {
		events, _, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{cfg.Ingest.WatchDir},
			InitialScan: true,
			SkipHidden:  cfg.Ingest.SkipHidden,
			Debounce:    500 * time.Millisecond,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("failed to start watcher", "dir", cfg.Ingest.WatchDir, "error", err)
			os.Exit(1)
		}
		go ingest.Pump(ctx, events, func(ctx context.Context, path string) error {
			return queue.Enqueue(ctx, async.Job{Path: path, Root: cfg.Ingest.WatchDir, WithQuiz: withQuiz, SubmittedAt: time.Now().UTC()})
		}, logger)
	}

	grpcServer, hs := server.NewGRPCServer(server.Deps{
		Processor: svc.Processor,
		Lectures:  svc.Lectures,
		Jobs:      svc.Jobs,
		Quizzes:   svc.Quizzes,
		Exporter:  export.NewService(svc.Lectures, logger),
		Ingestor:  ingest.NewFSIngestor(svc.Processor, withQuiz, logger),
		Queue:     queue,
	}, logger)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("listen", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	logger.Info("gRPC serving", "addr", lis.Addr().String(), "watch_dir", cfg.Ingest.WatchDir, "workers", cfg.Ingest.Workers)

	serveErr := make(chan error, 1)
	go func() { serveErr <- grpcServer.Serve(lis) }()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		logger.Error("grpc serve", "error", err)
	}

	logger.Info("shutting down...")
	hs.Shutdown()
	grpcServer.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}
