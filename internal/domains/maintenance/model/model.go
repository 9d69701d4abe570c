package model

import (
	"time"

	availabilityModel "hotel/internal/domains/availability/model"
	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
)

type ResetResult struct {
	BookingsDeleted int `json:"bookings_deleted"`
	RoomsFreed      int `json:"rooms_freed"`
}

type SeedResult struct {
	RoomTypes int                      `json:"room_types_created"`
	Rooms     int                      `json:"rooms_created"`
	Prices    int                      `json:"prices_created"`
	Bookings  int                      `json:"bookings_created"`
	Reconcile availabilityModel.Report `json:"reconcile"`
}

type SeedRoomType struct {
	Name        string
	Description string
	// Weekly holds one nightly rate per weekday, Monday first.
	Weekly [7]int64
}

type SeedRoom struct {
	Number     int
	RoomType   string
	Category   string
	Capacity   int
	HasBabyBed bool
	Available  bool
	Flat       int64
}

type SeedBooking struct {
	CustomerName  string
	CustomerPhone string
	RoomNumber    int
	// Offsets are days relative to the seeding date.
	CheckInOffset  int
	CheckOutOffset int
	Status         string
}

const (
	SeedStandard = "Standard"
	SeedComfort  = "Comfort"
	SeedSuite    = "Suite"
)

var SeedRoomTypes = []SeedRoomType{
	{Name: SeedStandard, Description: "Basic comfort", Weekly: [7]int64{2000, 2000, 2000, 2000, 2200, 2500, 2300}},
	{Name: SeedComfort, Description: "Improved comfort", Weekly: [7]int64{3000, 3000, 3000, 3000, 3300, 3800, 3500}},
	{Name: SeedSuite, Description: "Maximum comfort", Weekly: [7]int64{7000, 7000, 7000, 7000, 8000, 9000, 8500}},
}

var SeedRooms = []SeedRoom{
	{101, SeedStandard, roomModel.CategorySingle, 1, false, true, 2000},
	{102, SeedStandard, roomModel.CategorySingle, 1, true, true, 2200},
	{103, SeedStandard, roomModel.CategoryDouble, 2, false, true, 3000},
	{104, SeedStandard, roomModel.CategoryDouble, 2, true, false, 3200},
	{105, SeedStandard, roomModel.CategoryTriple, 3, false, true, 4000},
	{201, SeedComfort, roomModel.CategorySingle, 1, false, true, 3000},
	{202, SeedComfort, roomModel.CategoryDouble, 2, false, true, 4500},
	{203, SeedComfort, roomModel.CategoryDouble, 2, true, true, 4800},
	{204, SeedComfort, roomModel.CategoryTriple, 3, false, false, 5500},
	{301, SeedSuite, roomModel.CategoryDouble, 2, true, true, 7000},
	{302, SeedSuite, roomModel.CategoryTriple, 3, true, true, 9000},
}

var SeedBookings = []SeedBooking{
	{"Ivan Ivanov", "+7(999)123-45-67", 101, 1, 3, bookingModel.StatusConfirmed},
	{"Petr Petrov", "+7(999)234-56-78", 201, 2, 5, bookingModel.StatusPending},
	{"Sidor Sidorov", "+7(999)345-67-89", 301, -1, 2, bookingModel.StatusCheckedIn},
}

// Today returns the calendar date of now as a UTC midnight, the form stay dates are stored in.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
