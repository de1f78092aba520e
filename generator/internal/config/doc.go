// Package config loads the generator configuration file (generator.yaml).
//
// Top-level types:
//   - Config{Generator} — full config tree parsed from YAML
//   - GeneratorConfig — records, seed, output_dir, labeled_file,
//     unlabeled_file, metrics_file, preview_rows, workers, log_level
//
// Load(path) reads the YAML file, applies defaults (250 records, seed 42,
// current directory, dataset_with_labels.csv / dataset.csv, 10 preview rows,
// 1 worker, info logging), then validates ranges and enums. Default() returns
// the same defaults without reading a file.
package config
