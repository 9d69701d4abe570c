package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stayRequest struct {
	CustomerName  string          `json:"customer_name"  validate:"required"`
	CustomerEmail string          `json:"customer_email" validate:"omitempty,email"`
	CheckInDate   string          `json:"check_in_date"  validate:"required,date"`
	CheckOutDate  string          `json:"check_out_date" validate:"required,date"`
	Status        string          `json:"status"         validate:"omitempty,oneof=confirmed cancelled"`
	Price         decimal.Decimal `json:"price"          validate:"money"`
}

func validStay() stayRequest {
	return stayRequest{
		CustomerName: "Jane Doe",
		CheckInDate:  "2025-06-02",
		CheckOutDate: "2025-06-04",
		Price:        decimal.NewFromInt(2000),
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *stayRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *stayRequest) {}},
		{name: "missing name", mutate: func(r *stayRequest) { r.CustomerName = "" }, wantErr: "customer_name is required"},
		{name: "bad email", mutate: func(r *stayRequest) { r.CustomerEmail = "nope" }, wantErr: "customer_email must be a valid email address"},
		{name: "bad date", mutate: func(r *stayRequest) { r.CheckInDate = "02/06/2025" }, wantErr: "check_in_date must be a date in YYYY-MM-DD format"},
		{name: "impossible date", mutate: func(r *stayRequest) { r.CheckOutDate = "2025-02-30" }, wantErr: "check_out_date must be a date in YYYY-MM-DD format"},
		{name: "bad status", mutate: func(r *stayRequest) { r.Status = "lost" }, wantErr: "status must be one of confirmed cancelled"},
		{name: "negative price", mutate: func(r *stayRequest) { r.Price = decimal.NewFromInt(-1) }, wantErr: "price must be a non-negative amount"},
		{name: "zero price", mutate: func(r *stayRequest) { r.Price = decimal.Zero }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "date", field: "2025-06-02", tag: "date"},
		{name: "not a date", field: "tomorrow", tag: "date", wantErr: true},
		{name: "uuid", field: "550e8400-e29b-41d4-a716-446655440000", tag: "uuid"},
		{name: "not a uuid", field: "101", tag: "uuid", wantErr: true},
		{name: "positive room number", field: 101, tag: "gt=0"},
		{name: "zero room number", field: 0, tag: "gt=0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"customer_name":"Jane","check_in_date":"2025-06-02","check_out_date":"2025-06-04","price":"2000"}`},
		{name: "numeric price", body: `{"customer_name":"Jane","check_in_date":"2025-06-02","check_out_date":"2025-06-04","price":2000.5}`},
		{name: "malformed", body: `{"customer_name":}`, wantErr: true},
		{name: "empty", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req stayRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
