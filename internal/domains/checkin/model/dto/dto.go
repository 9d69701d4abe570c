package dto

import (
	"hotel/internal/domains/checkin/model"
	"hotel/shared/constant"

	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	CustomerName  string `json:"customer_name"  validate:"required,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=20"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email,max=254"`
	RoomTypeID    string `json:"room_type_id"   validate:"required,uuid"`
	HasBabyBed    bool   `json:"has_baby_bed"`
	CheckInDate   string `json:"check_in_date"  validate:"required,date"`
	CheckOutDate  string `json:"check_out_date" validate:"required,date"`
}

type QuoteResponse struct {
	QuoteID      string          `json:"quote_id"`
	CustomerName string          `json:"customer_name"`
	RoomTypeName string          `json:"room_type_name"`
	RoomID       string          `json:"room_id"`
	RoomNumber   int             `json:"room_number"`
	HasBabyBed   bool            `json:"has_baby_bed"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Nights       int             `json:"nights"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	ExpiresAt    string          `json:"expires_at"`
}

func (r *QuoteResponse) FromModel(quote model.Quote) {
	r.QuoteID = quote.ID
	r.CustomerName = quote.CustomerName
	r.RoomTypeName = quote.RoomTypeName
	r.RoomID = quote.RoomID
	r.RoomNumber = quote.RoomNumber
	r.HasBabyBed = quote.HasBabyBed
	r.CheckInDate = quote.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = quote.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Nights = quote.Nights
	r.TotalPrice = quote.TotalPrice
	r.ExpiresAt = quote.ExpiresAt.Format(constant.DateFormat)
}
