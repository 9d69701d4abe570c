package dto

import (
	"sort"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	RoomNumber    int             `json:"room_number"     validate:"required,gt=0"`
	RoomTypeID    string          `json:"room_type_id"    validate:"required,uuid"`
	Category      string          `json:"category"        validate:"required,oneof=single double triple"`
	Capacity      int             `json:"capacity"        validate:"required,gt=0"`
	HasBabyBed    *bool           `json:"has_baby_bed"    validate:"omitempty"`
	PricePerNight decimal.Decimal `json:"price_per_night" validate:"money"`
}

// ToModel builds a new room. New rooms have no bookings, so they start available.
func (c *CreateRoomRequest) ToModel(user string) model.Room {
	hasBabyBed := true
	if c.HasBabyBed != nil {
		hasBabyBed = *c.HasBabyBed
	}

	return model.Room{
		ID:            uuid.NewString(),
		RoomNumber:    c.RoomNumber,
		RoomTypeID:    c.RoomTypeID,
		Category:      c.Category,
		Capacity:      c.Capacity,
		HasBabyBed:    hasBabyBed,
		Available:     true,
		PricePerNight: c.PricePerNight.Round(2),
		Metadata:      gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateRoomRequest struct {
	RoomNumber    *int             `db:"room_number"     json:"room_number"     validate:"omitempty,gt=0"`
	RoomTypeID    string           `db:"room_type_id"    json:"room_type_id"    validate:"omitempty,uuid"`
	Category      string           `db:"category"        json:"category"        validate:"omitempty,oneof=single double triple"`
	Capacity      *int             `db:"capacity"        json:"capacity"        validate:"omitempty,gt=0"`
	HasBabyBed    *bool            `db:"has_baby_bed"    json:"has_baby_bed"    validate:"omitempty"`
	PricePerNight *decimal.Decimal `db:"price_per_night" json:"price_per_night" validate:"omitempty,money"`
}

type RoomResponse struct {
	ID            string          `json:"id"`
	RoomNumber    int             `json:"room_number"`
	RoomTypeID    string          `json:"room_type_id"`
	RoomTypeName  string          `json:"room_type_name"`
	Category      string          `json:"category"`
	Capacity      int             `json:"capacity"`
	HasBabyBed    bool            `json:"has_baby_bed"`
	Available     bool            `json:"available"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomTypeID = model.RoomTypeID
	r.RoomTypeName = model.RoomTypeName
	r.Category = model.Category
	r.Capacity = model.Capacity
	r.HasBabyBed = model.HasBabyBed
	r.Available = model.Available
	r.PricePerNight = model.PricePerNight
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type RoomTypeSummary struct {
	RoomTypeID   string `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	Total        int    `json:"total"`
	Available    int    `json:"available"`
	Occupied     int    `json:"occupied"`
}

type SummaryResponse struct {
	RoomTypes []RoomTypeSummary `json:"room_types"`
}

// TypeRef names a room type so that types without rooms still get a summary line.
type TypeRef struct {
	ID   string
	Name string
}

// Summarize counts rooms per type from their stored flags. Output is ordered by type name.
func Summarize(types []TypeRef, rooms []model.Room) SummaryResponse {
	byType := make(map[string]*RoomTypeSummary, len(types))
	res := SummaryResponse{RoomTypes: make([]RoomTypeSummary, 0, len(types))}

	for _, t := range types {
		byType[t.ID] = &RoomTypeSummary{RoomTypeID: t.ID, RoomTypeName: t.Name}
	}

	for _, room := range rooms {
		line, ok := byType[room.RoomTypeID]
		if !ok {
			line = &RoomTypeSummary{RoomTypeID: room.RoomTypeID, RoomTypeName: room.RoomTypeName}
			byType[room.RoomTypeID] = line
		}

		line.Total++
		if room.Available {
			line.Available++
		} else {
			line.Occupied++
		}
	}

	for _, line := range byType {
		res.RoomTypes = append(res.RoomTypes, *line)
	}

	sort.Slice(res.RoomTypes, func(i, j int) bool {
		return res.RoomTypes[i].RoomTypeName < res.RoomTypes[j].RoomTypeName
	})

	return res
}
