package otel_test

import (
	"context"
	"errors"
	"testing"

	"hotel/config"
	"hotel/infras/otel"

	"github.com/stretchr/testify/assert"
)

func TestNewWithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "hotel-test"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.Test")
	assert.NotNil(t, ctx)

	scope.SetAttribute("room_number", 101)
	scope.SetAttributes(map[string]any{"available": true, "tags": []string{"a"}, "price": 2000.5})
	scope.AddEvent("checked")
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	assert.NoError(t, tracer.Shutdown(context.Background()))
}
