package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	availabilityModel "hotel/internal/domains/availability/model"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Publisher interface {
	StatusChanged(ctx context.Context, event model.StatusChangedEvent) error
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.Topics.BookingEvents,
		otel:   otel,
	}
}

// StatusChanged publishes the event keyed by room, so events of one room stay ordered.
func (p *publisherImpl) StatusChanged(ctx context.Context, event model.StatusChangedEvent) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".StatusChanged")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.RoomID, Value: event})
	if err != nil {
		return fmt.Errorf("failed to publish booking status change: %w", err)
	}

	return nil
}

// StatusChangedHandler re-syncs the room named by each event. Syncing is idempotent, so redelivered
// or stale events are harmless. Cached room views are dropped once a flag actually moves.
func StatusChangedHandler(
	availability availabilityService.Availability,
	transactor gRepo.Transactor,
	redisCache cache.RedisCache,
) kafka.Handler {
	return func(ctx context.Context, message kafkaGo.Message) error {
		event, err := kafka.Decode[model.StatusChangedEvent](message)
		if err != nil {
			log.Error().Err(err).Str("key", string(message.Key)).Msg("dropping undecodable booking event")

			return nil
		}

		if event.RoomID == constant.Empty {
			return nil
		}

		var synced availabilityModel.SyncResult

		err = transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			var syncErr error

			synced, syncErr = availability.Sync(ctx, tx, event.RoomID)

			return syncErr //nolint:wrapcheck
		})
		if failure.IsNotFound(err) {
			log.Warn().Str("room_id", event.RoomID).Msg("booking event for a deleted room")

			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to sync room %s: %w", event.RoomID, err)
		}

		if synced.Changed {
			shared.InvalidateCaches(ctx, redisCache, constant.CachePrefixRoom)
		}

		return nil
	}
}
