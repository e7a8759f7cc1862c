package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/revsent/internal/reviewgen"
	"github.com/okian/revsent/pkg/logger"
)

func main() {
	defaults := reviewgen.DefaultConfig()
	var (
		numReviews = flag.Int("n", defaults.NumReviews, "Number of reviews to generate")
		seed       = flag.Int64("seed", defaults.Seed, "Random seed")
		workers    = flag.Int("workers", defaults.Workers, "Number of concurrent generators")
		noise      = flag.Float64("noise", defaults.NoiseRate, "Share of sentences drawn from the opposite polarity")
		output     = flag.String("output", "reviews.json", "Output file for generated reviews")
	)
	flag.Parse()

	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("gen-reviews")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := defaults
	cfg.NumReviews = *numReviews
	cfg.Seed = *seed
	cfg.Workers = *workers
	cfg.NoiseRate = *noise

	reviews, err := reviewgen.Generate(ctx, cfg)
	if err != nil {
		log.Error(ctx, "generation failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
	if err := reviewgen.WriteFile(*output, reviews); err != nil {
		log.Error(ctx, "write failed", logger.String("path", *output), logger.Error(err))
		stop()
		os.Exit(1)
	}
	log.Info(ctx, "reviews written", logger.String("path", *output), logger.Int("count", len(reviews)))
}
