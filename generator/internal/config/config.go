package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kinitsZ/HybridAI-System/pkg/dataset"
	"github.com/kinitsZ/HybridAI-System/pkg/synth"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultOutputDir   = "."
	DefaultPreviewRows = 10
	DefaultWorkers     = 1
	DefaultLogLevel    = "info"

	// MaxRecords caps a single run.
	MaxRecords = 1_000_000
)

// Config is the top-level generator configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
}

// GeneratorConfig holds all settings for one dataset generation run.
type GeneratorConfig struct {
	// Records is the number of synthetic records to generate.
	Records int `yaml:"records"`

	// Seed makes the run reproducible. The same seed yields the same dataset.
	Seed int64 `yaml:"seed"`

	// OutputDir is where both CSV files are written. Created if missing.
	OutputDir string `yaml:"output_dir"`

	// LabeledFile is the file name of the dataset with WSS and Stress_Level.
	LabeledFile string `yaml:"labeled_file"`

	// UnlabeledFile is the file name of the dataset in input format.
	UnlabeledFile string `yaml:"unlabeled_file"`

	// MetricsFile, when set, receives a Prometheus text snapshot of the run.
	// Relative paths are resolved against OutputDir.
	MetricsFile string `yaml:"metrics_file"`

	// PreviewRows is how many leading rows the report prints. 0 disables it.
	PreviewRows int `yaml:"preview_rows"`

	// Workers > 1 scores records concurrently.
	Workers int `yaml:"workers"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`
}

// SlogLevel converts LogLevel to a slog.Level. Unknown values map to info.
func (g GeneratorConfig) SlogLevel() slog.Level {
	switch g.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Records:       synth.DefaultRecords,
			Seed:          synth.DefaultSeed,
			OutputDir:     DefaultOutputDir,
			LabeledFile:   dataset.DefaultLabeledFile,
			UnlabeledFile: dataset.DefaultUnlabeledFile,
			PreviewRows:   DefaultPreviewRows,
			Workers:       DefaultWorkers,
			LogLevel:      DefaultLogLevel,
		},
	}
}

// Validate checks required fields and structural constraints. It is exported
// so callers can re-check after applying command-line overrides.
func Validate(cfg *Config) error {
	g := cfg.Generator
	if g.Records < 0 || g.Records > MaxRecords {
		return fmt.Errorf("generator.records %d is out of range [0, %d]", g.Records, MaxRecords)
	}
	if g.OutputDir == "" {
		return fmt.Errorf("generator.output_dir is required")
	}
	if g.LabeledFile == "" || g.UnlabeledFile == "" {
		return fmt.Errorf("generator.labeled_file and generator.unlabeled_file are required")
	}
	if g.LabeledFile == g.UnlabeledFile {
		return fmt.Errorf("generator.labeled_file and generator.unlabeled_file must differ")
	}
	if g.PreviewRows < 0 {
		return fmt.Errorf("generator.preview_rows must not be negative")
	}
	if g.Workers <= 0 {
		return fmt.Errorf("generator.workers must be positive")
	}
	switch g.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("generator.log_level %q unknown: want debug|info|warn|error", g.LogLevel)
	}
	return nil
}
