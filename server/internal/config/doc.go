// Package config loads the scoring server configuration from the `server:`
// section of server.yaml.
//
// Config fields:
//   - HTTPPort             — port for the REST API and /metrics (default 8080)
//   - LogLevel             — debug | info | warn | error (default info)
//   - Auth.Mode            — "apikey" or "none"
//   - Auth.KeyEnv          — environment variable holding the expected API key
//   - Auth.Header          — HTTP header name (default "x-api-key")
//   - Datasets.TTL         — how long a generated dataset stays available (default 30m)
//   - Datasets.MaxRecords  — upper bound for POST /api/v1/datasets (default 10000)
//   - Batch.MaxRecords     — upper bound for POST /api/v1/score/batch (default 10000)
//   - Batch.Workers        — goroutines used to score one batch (default 4)
//   - Stream.Interval      — /ws/stream push interval (default 5s)
//   - Alerts.Rules         — summary thresholds, e.g. "high_pct > 30"
//   - Alerts.Webhooks      — slack | teams | http targets, URL read from env
//
// Load(path) applies defaults before unmarshalling, then validates.
// Watch(ctx, path, onChange) reloads the file on change via fsnotify; the
// server applies only the log level from a reload.
package config
