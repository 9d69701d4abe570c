package otel

import (
	"errors"
	"testing"

	"hotel/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordScope(t *testing.T, fn func(Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(t.Context(), "booking.Cancel")
	fn(NewScope(span))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestTraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvent  string
	}{
		{name: "missing booking is refused", err: failure.NotFound("booking not found"), wantStatus: codes.Unset, wantEvent: eventRefused},
		{name: "sold out is refused", err: failure.NoAvailability("no free room"), wantStatus: codes.Unset, wantEvent: eventRefused},
		{name: "storage error is a fault", err: errors.New("connection reset"), wantStatus: codes.Error, wantEvent: "exception"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := recordScope(t, func(scope Scope) {
				scope.TraceIfError(tt.err)
			})

			assert.Equal(t, tt.wantStatus, span.Status().Code)
			require.Len(t, span.Events(), 1)
			assert.Equal(t, tt.wantEvent, span.Events()[0].Name)
		})
	}
}

func TestSetAttribute(t *testing.T) {
	span := recordScope(t, func(scope Scope) {
		scope.SetAttribute("room_number", 101)
		scope.SetAttribute("nights", int64(3))
		scope.SetAttribute("total_price", decimal.RequireFromString("4300.00"))
	})

	values := map[string]string{}
	for _, kv := range span.Attributes() {
		values[string(kv.Key)] = kv.Value.Emit()
	}

	assert.Equal(t, "101", values["room_number"])
	assert.Equal(t, "3", values["nights"])
	assert.Equal(t, "4300", values["total_price"])
}
