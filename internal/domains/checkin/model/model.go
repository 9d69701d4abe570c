package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a priced offer of one room for a guest's stay. It lives only in the cache until it is
// confirmed or expires.
type Quote struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	RoomTypeID    string          `json:"room_type_id"`
	RoomTypeName  string          `json:"room_type_name"`
	RoomID        string          `json:"room_id"`
	RoomNumber    int             `json:"room_number"`
	HasBabyBed    bool            `json:"has_baby_bed"`
	CheckInDate   time.Time       `json:"check_in_date"`
	CheckOutDate  time.Time       `json:"check_out_date"`
	Nights        int             `json:"nights"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	ExpiresAt     time.Time       `json:"expires_at"`
}
