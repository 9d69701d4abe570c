package model

import (
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldRoomTypeID    = "room_type_id"
	FieldCategory      = "category"
	FieldCapacity      = "capacity"
	FieldHasBabyBed    = "has_baby_bed"
	FieldAvailable     = "available"
	FieldPricePerNight = "price_per_night"
)

const (
	CategorySingle = "single"
	CategoryDouble = "double"
	CategoryTriple = "triple"
)

// Room is a bookable unit. Available is a stored copy of what the room's bookings imply
// and is only ever written by the availability sync.
type Room struct {
	ID            string          `db:"id"`
	RoomNumber    int             `db:"room_number"`
	RoomTypeID    string          `db:"room_type_id"`
	RoomTypeName  string          `db:"room_type_name"  table:"room_types" column:"name"`
	Category      string          `db:"category"`
	Capacity      int             `db:"capacity"`
	HasBabyBed    bool            `db:"has_baby_bed"`
	Available     bool            `db:"available"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "LEFT JOIN room_types ON room_types.id = rooms.room_type_id"
}
