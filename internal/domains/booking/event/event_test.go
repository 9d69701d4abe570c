package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	availabilityModel "hotel/internal/domains/availability/model"
	availabilityMocks "hotel/internal/domains/availability/service/mocks"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/failure"
	repoMocks "hotel/shared/repository/mocks"

	"github.com/jmoiron/sqlx"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPublisher_StatusChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingEvents = "booking.status_changed"

	evt := model.StatusChangedEvent{BookingID: "b1", RoomID: "r1", Status: model.StatusCheckedOut, RoomAvailable: true}

	client.EXPECT().SendMessages(gomock.Any(), "booking.status_changed", kafka.Message{Key: "r1", Value: evt}).Return(nil)

	publisher := event.NewPublisher(client, cfg, mocks.NewOtel())
	assert.NoError(t, publisher.StatusChanged(context.Background(), evt))

	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	assert.Error(t, publisher.StatusChanged(context.Background(), evt))
}

func message(t *testing.T, value any) kafkaGo.Message {
	t.Helper()

	raw, err := json.Marshal(value)
	assert.NoError(t, err)

	return kafkaGo.Message{Key: []byte("r1"), Value: raw}
}

func TestStatusChangedHandler(t *testing.T) {
	tests := []struct {
		name    string
		message func(t *testing.T) kafkaGo.Message
		syncErr error
		changed bool
		syncs   int
		wantErr bool
		cleared []string
	}{
		{
			name:    "syncs the room",
			message: func(t *testing.T) kafkaGo.Message { return message(t, model.StatusChangedEvent{RoomID: "r1"}) },
			syncs:   1,
		},
		{
			name:    "flag change drops cached room views",
			message: func(t *testing.T) kafkaGo.Message { return message(t, model.StatusChangedEvent{RoomID: "r1"}) },
			changed: true,
			syncs:   1,
			cleared: []string{"room:*"},
		},
		{
			name:    "garbage is dropped",
			message: func(*testing.T) kafkaGo.Message { return kafkaGo.Message{Value: []byte("{")} },
		},
		{
			name:    "event without room is dropped",
			message: func(t *testing.T) kafkaGo.Message { return message(t, model.StatusChangedEvent{BookingID: "b1"}) },
		},
		{
			name:    "deleted room is skipped",
			message: func(t *testing.T) kafkaGo.Message { return message(t, model.StatusChangedEvent{RoomID: "r1"}) },
			syncErr: failure.NotFound("room not found"),
			syncs:   1,
		},
		{
			name:    "storage error is retried",
			message: func(t *testing.T) kafkaGo.Message { return message(t, model.StatusChangedEvent{RoomID: "r1"}) },
			syncErr: errors.New("db down"),
			syncs:   1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			availability := availabilityMocks.NewMockAvailability(ctrl)
			transactor := repoMocks.NewMockTransactor(ctrl)

			transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
					return fn(ctx, nil)
				}).Times(tt.syncs)
			availability.EXPECT().Sync(gomock.Any(), gomock.Any(), "r1").
				Return(availabilityModel.SyncResult{RoomID: "r1", Changed: tt.changed}, tt.syncErr).Times(tt.syncs)

			var cleared []string

			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pattern string) error {
				cleared = append(cleared, pattern)

				return nil
			}).AnyTimes()

			err := event.StatusChangedHandler(availability, transactor, redisCache)(context.Background(), tt.message(t))
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.cleared, cleared)
		})
	}
}
