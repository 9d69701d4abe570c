// Command reset deletes every booking and marks every room available.
package main

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.Configure(cfg)

	res, err := di.InitializeMaintenance().Reset(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Reset failed")
	}

	fmt.Printf("deleted %d bookings, freed %d rooms\n", res.BookingsDeleted, res.RoomsFreed)
}
