package model

import (
	"slices"
	"time"

	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldCustomerName     = "customer_name"
	FieldCustomerPhone    = "customer_phone"
	FieldCustomerEmail    = "customer_email"
	FieldRoomID           = "room_id"
	FieldCheckInDate      = "check_in_date"
	FieldCheckOutDate     = "check_out_date"
	FieldStatus           = "status"
	FieldActualCheckInAt  = "actual_check_in_at"
	FieldActualCheckOutAt = "actual_check_out_at"
	FieldTotalPrice       = "total_price"
	FieldCreatedAt        = "created_at"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCancelled  = "cancelled"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
)

// Statuses lists every booking status in lifecycle order.
var Statuses = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCheckedIn, StatusCheckedOut}

// ClosedStatuses no longer hold their room.
var ClosedStatuses = []string{StatusCancelled, StatusCheckedOut}

// IsActive reports whether a booking in this status still holds its room.
func IsActive(status string) bool {
	return !slices.Contains(ClosedStatuses, status)
}

type Booking struct {
	ID               string          `db:"id"`
	CustomerName     string          `db:"customer_name"`
	CustomerPhone    string          `db:"customer_phone"`
	CustomerEmail    string          `db:"customer_email"`
	RoomID           string          `db:"room_id"`
	RoomNumber       int             `db:"room_number"         table:"rooms" column:"room_number"`
	CheckInDate      time.Time       `db:"check_in_date"`
	CheckOutDate     time.Time       `db:"check_out_date"`
	Status           string          `db:"status"`
	ActualCheckInAt  *time.Time      `db:"actual_check_in_at"`
	ActualCheckOutAt *time.Time      `db:"actual_check_out_at"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = bookings.room_id"
}

// StatusChangedEvent is published after a booking status change has been committed.
type StatusChangedEvent struct {
	BookingID     string    `json:"booking_id"`
	RoomID        string    `json:"room_id"`
	Status        string    `json:"status"`
	RoomAvailable bool      `json:"room_available"`
	ChangedBy     string    `json:"changed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
