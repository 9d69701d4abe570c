package model

import (
	bookingModel "hotel/internal/domains/booking/model"
)

const (
	ModeDetect = "detect"
	ModeFix    = "fix"
)

// ShouldBeAvailable reports whether a room with these bookings is free: every booking is either
// cancelled or checked out. A room without bookings is free.
func ShouldBeAvailable(bookings []bookingModel.Booking) bool {
	for _, booking := range bookings {
		if bookingModel.IsActive(booking.Status) {
			return false
		}
	}

	return true
}

// SyncResult is the outcome of re-deriving one room's flag.
type SyncResult struct {
	RoomID    string
	Available bool
	Changed   bool
}

// Mismatch is a room whose stored flag disagrees with its bookings.
type Mismatch struct {
	RoomID     string `json:"room_id"`
	RoomNumber int    `json:"room_number"`
	Stored     bool   `json:"stored"`
	Derived    bool   `json:"derived"`
}

type Report struct {
	Mode       string     `json:"mode"`
	Checked    int        `json:"checked"`
	Mismatched int        `json:"mismatched"`
	Fixed      int        `json:"fixed"`
	Mismatches []Mismatch `json:"mismatches"`
}

type ActiveBooking struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

// RoomStatus shows a room's stored flag next to what its bookings say.
type RoomStatus struct {
	RoomID         string          `json:"room_id"`
	RoomNumber     int             `json:"room_number"`
	RoomTypeName   string          `json:"room_type_name"`
	Available      bool            `json:"available"`
	Occupied       bool            `json:"is_occupied"`
	InSync         bool            `json:"in_sync"`
	ActiveBookings []ActiveBooking `json:"active_bookings"`
}
