package dto_test

import (
	"testing"

	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	types := []dto.TypeRef{
		{ID: "suite", Name: "Suite"},
		{ID: "comfort", Name: "Comfort"},
		{ID: "std", Name: "Standard"},
	}

	rooms := []model.Room{
		{RoomTypeID: "std", Available: true},
		{RoomTypeID: "std", Available: true},
		{RoomTypeID: "std", Available: false},
		{RoomTypeID: "comfort", Available: false},
		{RoomTypeID: "orphan", RoomTypeName: "Legacy", Available: true},
	}

	res := dto.Summarize(types, rooms)

	assert.Equal(t, []dto.RoomTypeSummary{
		{RoomTypeID: "comfort", RoomTypeName: "Comfort", Total: 1, Occupied: 1},
		{RoomTypeID: "orphan", RoomTypeName: "Legacy", Total: 1, Available: 1},
		{RoomTypeID: "std", RoomTypeName: "Standard", Total: 3, Available: 2, Occupied: 1},
		{RoomTypeID: "suite", RoomTypeName: "Suite"},
	}, res.RoomTypes)
}

func TestSummarizeEmpty(t *testing.T) {
	res := dto.Summarize(nil, nil)

	assert.NotNil(t, res.RoomTypes)
	assert.Empty(t, res.RoomTypes)
}

func TestCreateRoomRequest_ToModel(t *testing.T) {
	noBed := false

	tests := []struct {
		name    string
		req     dto.CreateRoomRequest
		wantBed bool
	}{
		{name: "baby bed defaults on", req: dto.CreateRoomRequest{RoomNumber: 101}, wantBed: true},
		{name: "explicit no baby bed", req: dto.CreateRoomRequest{RoomNumber: 102, HasBabyBed: &noBed}, wantBed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.PricePerNight = decimal.RequireFromString("99.999")

			room := tt.req.ToModel("front-desk")

			assert.NotEmpty(t, room.ID)
			assert.True(t, room.Available)
			assert.Equal(t, tt.wantBed, room.HasBabyBed)
			assert.Equal(t, "100.00", room.PricePerNight.StringFixed(2))
			assert.Equal(t, "front-desk", room.CreatedBy)
		})
	}
}
