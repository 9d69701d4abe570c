package model_test

import (
	"testing"

	"hotel/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func TestIsActive(t *testing.T) {
	tests := []struct {
		status string
		active bool
	}{
		{status: model.StatusPending, active: true},
		{status: model.StatusConfirmed, active: true},
		{status: model.StatusCheckedIn, active: true},
		{status: model.StatusCancelled, active: false},
		{status: model.StatusCheckedOut, active: false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.active, model.IsActive(tt.status))
		})
	}
}
