package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kinitsZ/HybridAI-System/pkg/metrics"
	"github.com/kinitsZ/HybridAI-System/server/internal/alerts"
	"github.com/kinitsZ/HybridAI-System/server/internal/api"
	"github.com/kinitsZ/HybridAI-System/server/internal/auth"
	"github.com/kinitsZ/HybridAI-System/server/internal/config"
	"github.com/kinitsZ/HybridAI-System/server/internal/store"
	"github.com/kinitsZ/HybridAI-System/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Level is a LevelVar so hot reloads can change verbosity in place.
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("wss-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Server.SlogLevel())

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"dataset_ttl", cfg.Server.Datasets.TTL,
		"batch_max_records", cfg.Server.Batch.MaxRecords,
		"alert_rules", len(cfg.Server.Alerts.Rules),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rec := metrics.New()

	// Dataset store with background TTL eviction.
	st := store.New(cfg.Server.Datasets.TTL)
	go st.Run(ctx, func(held int) { rec.DatasetsHeld.Set(float64(held)) })

	// Only the log level is applied live; ports, auth and limits need a restart.
	go func() {
		err := config.Watch(ctx, *configPath, func(c *config.Config) {
			level.Set(c.Server.SlogLevel())
			slog.Info("log level updated", "level", c.Server.LogLevel)
		})
		if err != nil {
			slog.Warn("config watch disabled", "err", err)
		}
	}()

	// Alerts engine: evaluates rules on every generated dataset.
	alertEngine := alerts.New(cfg.Server.Alerts)

	// WebSocket hub: pushes the dataset list to UI clients.
	hub := ws.New(st, cfg.Server.Stream.Interval)
	go hub.Run(ctx)

	apiHandler := api.New(st, rec, alertEngine, api.Limits{
		BatchMaxRecords:   cfg.Server.Batch.MaxRecords,
		BatchWorkers:      cfg.Server.Batch.Workers,
		DatasetMaxRecords: cfg.Server.Datasets.MaxRecords,
	})
	requireKey := auth.APIKey(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
		"/api/v1/health",
	)
	if cfg.Server.Auth.Mode == "apikey" && cfg.Server.Auth.Key() == "" {
		slog.Warn("auth mode is apikey but no key is set; API is open", "key_env", cfg.Server.Auth.KeyEnv)
	}

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", requireKey(apiHandler))
	httpMux.Handle("/ws/stream", requireKey(hub))
	httpMux.Handle("/metrics", rec.Handler())

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("wss-server shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
	alertEngine.Wait()
}
