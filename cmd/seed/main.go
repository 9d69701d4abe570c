// Command seed loads demo room types, rooms, weekday prices and bookings. Running it twice adds nothing.
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

	res, err := di.InitializeMaintenance().Seed(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	fmt.Printf("created %d room types, %d rooms, %d prices, %d bookings; fixed %d room flags\n",
		res.RoomTypes, res.Rooms, res.Prices, res.Bookings, res.Reconcile.Fixed)
}
