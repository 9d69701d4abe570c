package dto

import (
	"hotel/internal/domains/price/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePriceRequest struct {
	RoomTypeID string          `json:"room_type_id" validate:"required,uuid"`
	DayOfWeek  *int            `json:"day_of_week"  validate:"required,min=0,max=6"`
	Price      decimal.Decimal `json:"price"        validate:"money"`
}

func (c *CreatePriceRequest) ToModel(user string) model.Price {
	return model.Price{
		ID:         uuid.NewString(),
		RoomTypeID: c.RoomTypeID,
		DayOfWeek:  *c.DayOfWeek,
		Price:      c.Price.Round(2),
		Metadata:   gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdatePriceRequest struct {
	DayOfWeek *int             `db:"day_of_week" json:"day_of_week" validate:"omitempty,min=0,max=6"`
	Price     *decimal.Decimal `db:"price"       json:"price"       validate:"omitempty,money"`
}

type PriceResponse struct {
	ID           string          `json:"id"`
	RoomTypeID   string          `json:"room_type_id"`
	RoomTypeName string          `json:"room_type_name"`
	DayOfWeek    int             `json:"day_of_week"`
	DayName      string          `json:"day_name"`
	Price        decimal.Decimal `json:"price"`
	gDto.Metadata
}

func (r *PriceResponse) FromModel(model model.Price) {
	r.ID = model.ID
	r.RoomTypeID = model.RoomTypeID
	r.RoomTypeName = model.RoomTypeName
	r.DayOfWeek = model.DayOfWeek
	r.DayName = weekdayName(model.DayOfWeek)
	r.Price = model.Price
	r.Metadata.FromModel(model.Metadata)
}

type GetPricesResponse struct {
	Prices    []PriceResponse `json:"prices"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetPricesResponse) FromModels(models []model.Price, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Prices = make([]PriceResponse, len(models))
	for i, mod := range models {
		r.Prices[i].FromModel(mod)
	}
}

// PricingTableResponse maps room type name to weekday name to price.
type PricingTableResponse struct {
	Table map[string]map[string]decimal.Decimal `json:"table"`
}

// BuildPricingTable lays out prices per room type. Every named type gets a row, even without prices.
func BuildPricingTable(typeNames map[string]string, prices []model.Price) PricingTableResponse {
	res := PricingTableResponse{Table: make(map[string]map[string]decimal.Decimal, len(typeNames))}

	for _, name := range typeNames {
		res.Table[name] = map[string]decimal.Decimal{}
	}

	for _, p := range prices {
		name, ok := typeNames[p.RoomTypeID]
		if !ok {
			name = p.RoomTypeName
		}

		row, ok := res.Table[name]
		if !ok {
			row = map[string]decimal.Decimal{}
			res.Table[name] = row
		}

		row[weekdayName(p.DayOfWeek)] = p.Price
	}

	return res
}

type QuoteRequest struct {
	RoomID       string `json:"room_id"        validate:"required,uuid"`
	CheckInDate  string `json:"check_in_date"  validate:"required,date"`
	CheckOutDate string `json:"check_out_date" validate:"required,date"`
}

type QuoteResponse struct {
	RoomID       string          `json:"room_id"`
	RoomNumber   int             `json:"room_number"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Nights       int             `json:"nights"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

func weekdayName(day int) string {
	return model.WeekdayName(day)
}
