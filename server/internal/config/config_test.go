package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "server.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	// The generator section may share the file; the server ignores it.
	p := writeConfig(t, `generator:
  records: 100
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Server
	if s.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", s.HTTPPort, DefaultHTTPPort)
	}
	if s.Datasets.TTL != DefaultDatasetTTL {
		t.Errorf("datasets.ttl: got %v, want %v", s.Datasets.TTL, DefaultDatasetTTL)
	}
	if s.Datasets.MaxRecords != DefaultDatasetMaxRecords {
		t.Errorf("datasets.max_records: got %d", s.Datasets.MaxRecords)
	}
	if s.Batch.MaxRecords != DefaultBatchMaxRecords || s.Batch.Workers != DefaultBatchWorkers {
		t.Errorf("batch: got %+v", s.Batch)
	}
	if s.Stream.Interval != DefaultStreamInterval {
		t.Errorf("stream.interval: got %v, want %v", s.Stream.Interval, DefaultStreamInterval)
	}
	if len(s.Alerts.Rules) != 0 {
		t.Errorf("alerts.rules: got %d, want none", len(s.Alerts.Rules))
	}
	if s.SlogLevel() != slog.LevelInfo {
		t.Errorf("log level: got %v", s.SlogLevel())
	}
}

func TestLoad_FullServer(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 9091
  log_level: warn
  auth:
    mode: apikey
    key_env: MY_KEY
    header: x-wss-key
  datasets:
    ttl: 10m
    max_records: 500
  batch:
    max_records: 50
    workers: 2
  stream:
    interval: 2s
  alerts:
    rules:
      - name: high-share
        condition: "high_pct > 30"
        severity: critical
        cooldown: 5m
    webhooks:
      - type: slack
        url_env: WSS_SLACK_URL
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Server
	if s.HTTPPort != 9091 {
		t.Errorf("http_port: got %d, want 9091", s.HTTPPort)
	}
	if s.SlogLevel() != slog.LevelWarn {
		t.Errorf("log level: got %v, want warn", s.SlogLevel())
	}
	if s.Auth.Mode != "apikey" {
		t.Errorf("auth.mode: got %q, want apikey", s.Auth.Mode)
	}
	if s.Auth.EffectiveHeader() != "x-wss-key" {
		t.Errorf("auth.header: got %q", s.Auth.EffectiveHeader())
	}
	if s.Datasets.TTL != 10*time.Minute || s.Datasets.MaxRecords != 500 {
		t.Errorf("datasets: got %+v", s.Datasets)
	}
	if s.Batch.MaxRecords != 50 || s.Batch.Workers != 2 {
		t.Errorf("batch: got %+v", s.Batch)
	}
	if s.Stream.Interval != 2*time.Second {
		t.Errorf("stream.interval: got %v, want 2s", s.Stream.Interval)
	}
	if len(s.Alerts.Rules) != 1 {
		t.Fatalf("alerts.rules: got %d, want 1", len(s.Alerts.Rules))
	}
	r := s.Alerts.Rules[0]
	if r.Name != "high-share" || r.Condition != "high_pct > 30" || r.Severity != "critical" || r.Cooldown != 5*time.Minute {
		t.Errorf("alerts.rules[0]: got %+v", r)
	}
	if len(s.Alerts.Webhooks) != 1 || s.Alerts.Webhooks[0].Type != "slack" {
		t.Errorf("alerts.webhooks: got %+v", s.Alerts.Webhooks)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"port zero", "server:\n  http_port: 0\n"},
		{"port too high", "server:\n  http_port: 70000\n"},
		{"unknown auth mode", "server:\n  auth:\n    mode: mtls\n"},
		{"unknown log level", "server:\n  log_level: trace\n"},
		{"zero ttl", "server:\n  datasets:\n    ttl: 0s\n"},
		{"zero dataset max", "server:\n  datasets:\n    max_records: 0\n"},
		{"zero batch max", "server:\n  batch:\n    max_records: 0\n"},
		{"negative workers", "server:\n  batch:\n    workers: -1\n"},
		{"zero stream interval", "server:\n  stream:\n    interval: 0s\n"},
		{"rule without name", "server:\n  alerts:\n    rules:\n      - condition: high_pct > 1\n"},
		{"rule bad condition", "server:\n  alerts:\n    rules:\n      - name: x\n        condition: high_pct\n"},
		{"rule bad severity", "server:\n  alerts:\n    rules:\n      - name: x\n        condition: high_pct > 1\n        severity: panic\n"},
		{"unknown webhook", "server:\n  alerts:\n    webhooks:\n      - type: pager\n"},
		{"bad yaml", "server: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.yaml)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAuthConfig_Key(t *testing.T) {
	t.Setenv("WSS_TEST_KEY", "supersecret")
	a := AuthConfig{Mode: "apikey", KeyEnv: "WSS_TEST_KEY"}
	if got := a.Key(); got != "supersecret" {
		t.Errorf("Key(): got %q, want supersecret", got)
	}
	if got := (AuthConfig{Mode: "apikey"}).Key(); got != "" {
		t.Errorf("Key() with no KeyEnv: got %q, want empty", got)
	}
}

func TestWebhookConfig_URL(t *testing.T) {
	t.Setenv("WSS_TEST_HOOK", "https://hooks.example.test/x")
	if got := (WebhookConfig{Type: "http", URLEnv: "WSS_TEST_HOOK"}).URL(); got != "https://hooks.example.test/x" {
		t.Errorf("URL(): got %q", got)
	}
	if got := (WebhookConfig{Type: "http"}).URL(); got != "" {
		t.Errorf("URL() with no URLEnv: got %q, want empty", got)
	}
}

func TestAuthConfig_DefaultHeader(t *testing.T) {
	if got := (AuthConfig{}).EffectiveHeader(); got != "x-api-key" {
		t.Errorf("EffectiveHeader: got %q", got)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	p := writeConfig(t, "server:\n  log_level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 64)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, p, func(c *Config) {
			select {
			case got <- c:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing. Keep rewriting until
	// an event arrives so a slow start does not flake the test.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-got:
			// A truncate may be observed before the write lands.
			if c.Server.LogLevel != "debug" {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch returned %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(p, []byte("server:\n  log_level: debug\n"), 0o600); err != nil {
				t.Fatalf("rewrite config: %v", err)
			}
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), func(*Config) {})
	if err == nil {
		t.Fatal("expected error watching a missing file")
	}
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "config", "server.yaml"))
	if err != nil {
		t.Fatalf("Load example: %v", err)
	}
	if len(cfg.Server.Alerts.Rules) == 0 {
		t.Error("example config should carry alert rules")
	}
}
