package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/metrics"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.Configure(cfg)

	if cfg.Metrics.Enable {
		metrics.Register()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Starting availability worker.")

	if err := di.InitializeWorker().Run(ctx); err != nil {
		log.Error().Err(err).Msg("Worker stopped with error")
		stop()
		os.Exit(1) //nolint:gocritic
	}

	log.Info().Msg("Worker stopped.")
}
