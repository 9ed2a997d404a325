// cmd/ingest/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github-org-board/internal/collector"
	"github-org-board/internal/config"
	"github-org-board/internal/github"
	"github-org-board/internal/ingest"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Ingestion run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)
	logger.Info("Configuration loaded successfully")

	// 3. Setup context so an interrupt stops the run cleanly
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 4. Initialize the fetcher and collector
	opts := github.DefaultFetchOptions()
	opts.RetryCount = cfg.RetryCount
	opts.BackoffFactor = cfg.RetryBackoff
	opts.Strict = cfg.StrictPages
	// Authenticated REST quota is 5000 requests/hour.
	opts.Limiter = rate.NewLimiter(rate.Every(time.Hour/5000), 10)

	client := github.NewClient(cfg.GithubToken, cfg.UserAgent, logger, opts)
	coll := collector.New(client, logger, cfg.APIBaseURL, cfg.OrgName)

	// 5. Run the pipeline
	pipeline := ingest.New(coll, logger, cfg.OrgName, cfg.DataDir, cfg.PublicOnly)
	return pipeline.Run(ctx)
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
