package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/lecture-processor/internal/pipeline"
)

func main() {
	var (
		detectTables = flag.Bool("tables", true, "detect tables in PDF text")
		fileType     = flag.String("type", "", "file type override (pdf, pptx); defaults to the extension")
		dropMarkers  = flag.Bool("drop-slide-markers", false, "remove \"Slide N:\" lines from PPTX content")
		pretty       = flag.Bool("pretty", false, "indent the JSON output")
		verbose      = flag.Bool("v", false, "debug logging on stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: lectures-extract [flags] <file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	// stdout carries the JSON document
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	p := pipeline.New(pipeline.Options{DetectTables: *detectTables, DropSlideMarkers: *dropMarkers}, logger)
	res, err := p.Run(ctx, pipeline.Request{Data: data, FileType: *fileType, Key: filepath.ToSlash(path)})
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}
	if res.Degraded {
		logger.Warn("extraction degraded", "path", path, "warnings", res.Warnings)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res.Data); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}
