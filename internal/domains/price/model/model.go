package model

import (
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "prices"
	EntityName = "price"

	FieldID         = "id"
	FieldRoomTypeID = "room_type_id"
	FieldDayOfWeek  = "day_of_week"
	FieldPrice      = "price"
)

// Price is the nightly rate of a room type on one weekday (Monday=0).
type Price struct {
	ID           string          `db:"id"`
	RoomTypeID   string          `db:"room_type_id"`
	RoomTypeName string          `db:"room_type_name" table:"room_types" column:"name"`
	DayOfWeek    int             `db:"day_of_week"`
	Price        decimal.Decimal `db:"price"`
	model.Metadata
}

func (Price) GetJoinQuery() string {
	return "LEFT JOIN room_types ON room_types.id = prices.room_type_id"
}
