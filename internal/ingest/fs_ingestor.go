package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/lecture-processor/internal/common"
	"github.com/joseph-ayodele/lecture-processor/internal/core"
)

// FileProcessor is the part of core.Processor the ingestor drives.
type FileProcessor interface {
	Process(ctx context.Context, req core.ProcessRequest) (core.Result, error)
}

// FSIngestor reads lecture files from the local filesystem.
type FSIngestor struct {
	proc     FileProcessor
	logger   *slog.Logger
	withQuiz bool
}

var _ Ingestor = (*FSIngestor)(nil)

func NewFSIngestor(proc FileProcessor, withQuiz bool, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{proc: proc, logger: logger, withQuiz: withQuiz}
}

// IngestPath processes one file outside any course layout, so ids come only
// from the document itself.
func (i *FSIngestor) IngestPath(ctx context.Context, path string) (IngestionResult, error) {
	return i.ingestFile(ctx, path, "")
}

func (i *FSIngestor) ingestFile(ctx context.Context, path, root string) (IngestionResult, error) {
	out := IngestionResult{SourcePath: path}
	abs, err := filepath.Abs(path)
	if err != nil {
		return out, fmt.Errorf("abs path: %w", err)
	}
	out.SourcePath = abs

	if !AllowedExt(filepath.Ext(abs)) {
		i.logger.Warn("ingest.unsupported_extension", "path", abs)
		return out, common.UnsupportedFormatError(filepath.Ext(abs))
	}

	res, err := i.proc.Process(ctx, core.ProcessRequest{Path: abs, Root: root, WithQuiz: i.withQuiz})
	if res.JobID != uuid.Nil {
		out.JobID = res.JobID.String()
	}
	if err != nil {
		return out, err
	}
	out.LectureID = res.Lecture.ID.String()
	out.Deduplicated = res.Deduplicated
	out.Degraded = res.Degraded
	return out, nil
}

// Discover walks root and returns the lecture files it would ingest.
func Discover(root string, skipHidden bool) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, fmt.Errorf("root_path is required: %w", common.ErrInvalidInput)
	}
	var (
		paths []string
		stats DirStats
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk: %w", err)
	}
	return paths, stats, nil
}

// IngestDirectory walks root, skips hidden entries if requested, and ingests
// each lecture file. A failing file is recorded and the walk continues.
func (i *FSIngestor) IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]IngestionResult, DirStats, error) {
	paths, stats, err := Discover(root, skipHidden)
	if err != nil {
		return nil, stats, err
	}

	results := make([]IngestionResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, stats, err
		}
		r, err := i.ingestFile(ctx, path, root)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return results, stats, err
			}
			i.logger.Error("ingest.file.failed", "path", path, "error", err)
			r.Err = err.Error()
			results = append(results, r)
			stats.Failed++
			continue
		}
		results = append(results, r)
		stats.Succeeded++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		if r.Degraded {
			stats.Degraded++
		}
	}
	i.logger.Info("ingest.directory.done",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
	)
	return results, stats, nil
}
