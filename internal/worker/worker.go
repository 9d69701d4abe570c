package worker

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	"hotel/shared/cache"
	gRepo "hotel/shared/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const minReconcileInterval = time.Minute

// Worker keeps stored room availability honest in the background: it applies booking events as
// they arrive and sweeps every room on a fixed interval to catch anything the events missed.
type Worker struct {
	cfg          *config.Config
	client       kafka.Client
	availability availabilityService.Availability
	transactor   gRepo.Transactor
	cache        cache.RedisCache
}

func New(
	cfg *config.Config,
	client kafka.Client,
	availability availabilityService.Availability,
	transactor gRepo.Transactor,
	cache cache.RedisCache,
) *Worker {
	return &Worker{
		cfg:          cfg,
		client:       client,
		availability: availability,
		transactor:   transactor,
		cache:        cache,
	}
}

// Run blocks until ctx is cancelled or the consumer fails.
func (w *Worker) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		w.reconcileLoop(ctx, w.interval())

		return nil
	})

	group.Go(func() error {
		topic := w.cfg.Kafka.Topics.BookingEvents
		handler := event.StatusChangedHandler(w.availability, w.transactor, w.cache)

		if err := w.client.Consume(ctx, w.cfg.Kafka.ConsumerGroup, topic, handler); err != nil {
			return fmt.Errorf("failed to consume %s: %w", topic, err)
		}

		return nil
	})

	return group.Wait() //nolint:wrapcheck
}

func (w *Worker) interval() time.Duration {
	interval := time.Duration(w.cfg.Worker.ReconcileIntervalMinutes) * time.Minute

	return max(interval, minReconcileInterval)
}

func (w *Worker) reconcileLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("reconcile sweep scheduled")

	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one fix-mode reconciliation. Failures are logged and retried on the next tick.
func (w *Worker) Sweep(ctx context.Context) {
	report, err := w.availability.Reconcile(ctx, true)
	if err != nil {
		log.Error().Err(err).Msg("reconcile sweep failed")

		return
	}

	log.Info().
		Int("checked", report.Checked).
		Int("mismatched", report.Mismatched).
		Int("fixed", report.Fixed).
		Msg("reconcile sweep finished")
}
