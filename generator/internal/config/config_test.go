package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Valid(t *testing.T) {
	yaml := `
generator:
  records: 500
  seed: 7
  output_dir: out
  labeled_file: labeled.csv
  unlabeled_file: plain.csv
  metrics_file: run.prom
  preview_rows: 5
  workers: 4
  log_level: debug
`
	cfg := loadFromString(t, yaml)
	g := cfg.Generator

	if g.Records != 500 {
		t.Errorf("records: got %d", g.Records)
	}
	if g.Seed != 7 {
		t.Errorf("seed: got %d", g.Seed)
	}
	if g.OutputDir != "out" || g.LabeledFile != "labeled.csv" || g.UnlabeledFile != "plain.csv" {
		t.Errorf("paths: got %q %q %q", g.OutputDir, g.LabeledFile, g.UnlabeledFile)
	}
	if g.MetricsFile != "run.prom" {
		t.Errorf("metrics_file: got %q", g.MetricsFile)
	}
	if g.Workers != 4 || g.PreviewRows != 5 {
		t.Errorf("workers/preview_rows: got %d/%d", g.Workers, g.PreviewRows)
	}
	if g.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel: got %v", g.SlogLevel())
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromString(t, "generator: {}\n")
	g := cfg.Generator

	if g.Records != 250 {
		t.Errorf("default records: got %d, want 250", g.Records)
	}
	if g.Seed != 42 {
		t.Errorf("default seed: got %d, want 42", g.Seed)
	}
	if g.LabeledFile != "dataset_with_labels.csv" || g.UnlabeledFile != "dataset.csv" {
		t.Errorf("default files: got %q, %q", g.LabeledFile, g.UnlabeledFile)
	}
	if g.OutputDir != DefaultOutputDir || g.PreviewRows != DefaultPreviewRows || g.Workers != DefaultWorkers {
		t.Errorf("defaults: got dir=%q preview=%d workers=%d", g.OutputDir, g.PreviewRows, g.Workers)
	}
	if g.MetricsFile != "" {
		t.Errorf("metrics_file should default to empty, got %q", g.MetricsFile)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative records", "generator:\n  records: -1\n"},
		{"too many records", "generator:\n  records: 2000000\n"},
		{"zero workers", "generator:\n  workers: 0\n"},
		{"same file names", "generator:\n  labeled_file: a.csv\n  unlabeled_file: a.csv\n"},
		{"empty output dir", "generator:\n  output_dir: \"\"\n"},
		{"unknown log level", "generator:\n  log_level: loud\n"},
		{"negative preview", "generator:\n  preview_rows: -2\n"},
		{"bad yaml", "generator: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadStringErr(t, tc.yaml); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
}

// --- helpers ---

func loadFromString(t *testing.T, content string) *Config {
	t.Helper()
	cfg, err := loadStringErr(t, content)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	return cfg
}

func loadStringErr(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "generator.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return Load(path)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "config", "generator.yaml"))
	if err != nil {
		t.Fatalf("Load example: %v", err)
	}
	if cfg.Generator.Records != 250 || cfg.Generator.Seed != 42 {
		t.Errorf("example: got records=%d seed=%d", cfg.Generator.Records, cfg.Generator.Seed)
	}
}
