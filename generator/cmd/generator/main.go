package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kinitsZ/HybridAI-System/generator/internal/config"
	"github.com/kinitsZ/HybridAI-System/generator/internal/report"
	"github.com/kinitsZ/HybridAI-System/pkg/dataset"
	"github.com/kinitsZ/HybridAI-System/pkg/metrics"
	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/synth"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults are used when empty)")
	records := flag.Int("n", 0, "number of records to generate (overrides config)")
	seed := flag.Int64("seed", 0, "random seed (overrides config)")
	outDir := flag.String("out", "", "output directory (overrides config)")
	input := flag.String("input", "", "score an existing unlabeled CSV instead of generating records")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Only flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Generator.Records = *records
		case "seed":
			cfg.Generator.Seed = *seed
		case "out":
			cfg.Generator.OutputDir = *outDir
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	g := cfg.Generator

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: g.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, g, *input); err != nil {
		slog.Error("generator failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, g config.GeneratorConfig, input string) error {
	rec := metrics.New()

	var records []types.WorkloadRecord
	if input != "" {
		slog.Info("reading records", "path", input)
		loaded, err := dataset.ReadFile(input)
		if err != nil {
			rec.ObserveError(err)
			return err
		}
		records = loaded
	} else {
		slog.Info("generating records", "records", g.Records, "seed", g.Seed)
		records = synth.New(g.Seed).Generate(g.Records)
	}

	start := time.Now()
	scored, err := stress.ScoreBatchConcurrent(ctx, records, g.Workers)
	if err != nil {
		rec.ObserveError(err)
		return fmt.Errorf("score records: %w", err)
	}
	rec.ObserveBatch("generator", start)
	rec.ObserveScored(scored...)
	slog.Debug("scored records", "records", len(scored), "workers", g.Workers, "elapsed", time.Since(start))

	labeled, unlabeled, err := dataset.WriteFiles(g.OutputDir, g.LabeledFile, g.UnlabeledFile, scored)
	if err != nil {
		return err
	}
	slog.Info("datasets written", "labeled", labeled, "unlabeled", unlabeled)

	if g.MetricsFile != "" {
		path := g.MetricsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(g.OutputDir, path)
		}
		if err := writeMetrics(rec, path); err != nil {
			return err
		}
		slog.Info("metrics snapshot written", "path", path)
	}

	return report.Write(os.Stdout, scored, g.PreviewRows)
}

func writeMetrics(rec *metrics.Recorder, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	if err := rec.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
