package validator_test

import (
	"net/http"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantCode int
	}{
		{name: "uuid", id: "3c6e0b8a-2f4d-4b1e-8a57-6d9e1f2a4c30"},
		{name: "room number is not an id", id: "101", wantCode: http.StatusNotFound},
		{name: "empty", id: "", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateID(tt.id, "booking not found")
			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.EqualError(t, err, "booking not found")
		})
	}
}

func TestValidateQueryID(t *testing.T) {
	assert.NoError(t, validator.ValidateQueryID("room_type_id", ""))
	assert.NoError(t, validator.ValidateQueryID("room_type_id", "3c6e0b8a-2f4d-4b1e-8a57-6d9e1f2a4c30"))

	err := validator.ValidateQueryID("room_type_id", "suite")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.EqualError(t, err, "room_type_id must be a valid uuid")
}
