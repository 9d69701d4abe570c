package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"
	"hotel/shared/metrics"

	"github.com/rs/zerolog/log"
)

// @title Hotel API
// @version 1.0
// @description Rooms, weekday pricing, bookings and guest check-in.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Runner(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("Automatic migration failed")
		}
	}

	if cfg.Metrics.Enable {
		metrics.Register()
	}

	http := di.InitializeService()
	http.Serve()
}
