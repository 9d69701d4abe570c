package kafka_test

import (
	"context"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel/mocks"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusChanged struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "room-1", Value: statusChanged{BookingID: "b1", Status: "cancelled"}}

	raw, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("room-1"), raw.Key)

	decoded, err := kafka.Decode[statusChanged](raw)
	require.NoError(t, err)
	assert.Equal(t, statusChanged{BookingID: "b1", Status: "cancelled"}, decoded)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := kafka.Decode[statusChanged](kafkaGo.Message{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestToKafkaMessageRejectsUnmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	cfg := &config.Config{}
	client := kafka.New(cfg, mocks.NewOtel())

	assert.NoError(t, client.SendMessages(context.Background(), "booking.status_changed", kafka.Message{Key: "k", Value: 1}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.NoError(t, client.Consume(ctx, "", "booking.status_changed", func(context.Context, kafkaGo.Message) error { return nil }))
	assert.NoError(t, client.Close())
}
