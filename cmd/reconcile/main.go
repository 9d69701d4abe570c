// Command reconcile compares every room's stored availability with what its bookings imply.
// Pass "fix" to also correct the mismatches.
package main

import (
	"context"
	"fmt"
	"os"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

const argFix = "fix"

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.Configure(cfg)

	fix := len(os.Args) > 1 && os.Args[1] == argFix

	report, err := di.InitializeAvailability().Reconcile(context.Background(), fix)
	if err != nil {
		log.Fatal().Err(err).Msg("Reconciliation failed")
	}

	for _, mismatch := range report.Mismatches {
		fmt.Printf("room %d: stored available=%t, bookings imply available=%t\n",
			mismatch.RoomNumber, mismatch.Stored, mismatch.Derived)
	}

	fmt.Printf("mode=%s checked=%d mismatched=%d fixed=%d\n", report.Mode, report.Checked, report.Mismatched, report.Fixed)
}
