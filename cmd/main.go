package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/revsent/internal/app"
	"github.com/okian/revsent/internal/config"
	"github.com/okian/revsent/pkg/logger"
	"github.com/okian/revsent/pkg/metrics"
	"github.com/subosito/gotenv"
)

// envFile is loaded into the process environment when present.
const envFile = ".env"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one pipeline run and returns the process exit code.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	// Initialize logging with defaults until the config is known.
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		// Use plain output for initialization errors since logger isn't available yet
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return 1
	}
	log := logger.Get()

	if err := gotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn(ctx, "failed to read env file", logger.String("path", envFile), logger.Error(err))
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		return 1
	}

	if err := logger.Init(
		logger.WithWriter(stderr),
		logger.WithFormat(cfg.LogFormat),
		logger.WithLevel(cfg.LogLevel),
	); err != nil {
		log.Error(ctx, "invalid logging config", logger.Error(err))
		return 1
	}
	log = logger.Named("revsent")

	report, err := app.New(app.OptionsFromConfig(cfg, log)...).Run(ctx)
	if err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		return 1
	}
	if err := report.Write(stdout); err != nil {
		log.Error(ctx, "failed to write report", logger.Error(err))
		return 1
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error(ctx, "failed to write metrics", logger.String("path", cfg.MetricsFile), logger.Error(err))
			return 1
		}
		log.Info(ctx, "metrics written", logger.String("path", cfg.MetricsFile))
	}
	return 0
}
