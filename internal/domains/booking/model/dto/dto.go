package dto

import (
	"net/http"
	"slices"
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"

	QueryParamCheckInFrom = "check_in_from"
	QueryParamCheckInTo   = "check_in_to"
)

// SortableFields are the booking columns a list may be ordered by.
var SortableFields = []string{
	model.FieldCreatedAt,
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
	model.FieldStatus,
	model.FieldCustomerName,
	model.FieldTotalPrice,
}

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name"  validate:"required,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=20"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email,max=254"`
	RoomID        string `json:"room_id"        validate:"required,uuid"`
	CheckInDate   string `json:"check_in_date"  validate:"required,date"`
	CheckOutDate  string `json:"check_out_date" validate:"required,date"`
	Status        string `json:"status"         validate:"omitempty,oneof=pending confirmed cancelled checked_in checked_out"`
}

// Stay is a validated pair of calendar dates.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ToModel builds a booking for an already priced stay. Status defaults to pending, and a booking
// created as checked in or checked out gets the matching actual timestamp.
func (c *CreateBookingRequest) ToModel(user string, stay Stay, totalPrice decimal.Decimal) model.Booking {
	now := timezone.Now()

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	booking := model.Booking{
		ID:            uuid.NewString(),
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		CustomerEmail: c.CustomerEmail,
		RoomID:        c.RoomID,
		CheckInDate:   stay.CheckIn,
		CheckOutDate:  stay.CheckOut,
		Status:        status,
		TotalPrice:    totalPrice.Round(2),
		Metadata:      gModel.NewMetadata(now, user),
	}

	switch status {
	case model.StatusCheckedIn:
		booking.ActualCheckInAt = &now
	case model.StatusCheckedOut:
		booking.ActualCheckInAt = &now
		booking.ActualCheckOutAt = &now
	}

	return booking
}

type CheckInOutRequest struct {
	Action string `json:"action" validate:"required,oneof=check_in check_out"`
}

type BookingResponse struct {
	ID               string          `json:"id"`
	CustomerName     string          `json:"customer_name"`
	CustomerPhone    string          `json:"customer_phone"`
	CustomerEmail    string          `json:"customer_email,omitempty"`
	RoomID           string          `json:"room_id"`
	RoomNumber       int             `json:"room_number"`
	CheckInDate      string          `json:"check_in_date"`
	CheckOutDate     string          `json:"check_out_date"`
	Status           string          `json:"status"`
	ActualCheckInAt  *time.Time      `json:"actual_check_in_at"`
	ActualCheckOutAt *time.Time      `json:"actual_check_out_at"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CustomerName = model.CustomerName
	r.CustomerPhone = model.CustomerPhone
	r.CustomerEmail = model.CustomerEmail
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Status = model.Status
	r.ActualCheckInAt = model.ActualCheckInAt
	r.ActualCheckOutAt = model.ActualCheckOutAt
	r.TotalPrice = model.TotalPrice
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// ListFilter narrows booking lists by room, status and check-in date range.
type ListFilter struct {
	RoomID      string `json:"room_id"       validate:"omitempty,uuid"`
	Status      string `json:"status"        validate:"omitempty,oneof=pending confirmed cancelled checked_in checked_out"`
	CheckInFrom string `json:"check_in_from" validate:"omitempty,date"`
	CheckInTo   string `json:"check_in_to"   validate:"omitempty,date"`
}

func (l *ListFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	l.RoomID = query.Get(model.FieldRoomID)
	l.Status = query.Get(model.FieldStatus)
	l.CheckInFrom = query.Get(QueryParamCheckInFrom)
	l.CheckInTo = query.Get(QueryParamCheckInTo)
}

func (l *ListFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if l.RoomID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    l.RoomID,
			Table:    model.TableName,
		})
	}

	if l.Status != constant.Empty && slices.Contains(model.Statuses, l.Status) {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    l.Status,
			Table:    model.TableName,
		})
	}

	if l.CheckInFrom != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  QueryParamCheckInFrom,
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    l.CheckInFrom,
			Table:    model.TableName,
		})
	}

	if l.CheckInTo != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  QueryParamCheckInTo,
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    l.CheckInTo,
			Table:    model.TableName,
		})
	}

	return gDto.And(filters...)
}

// ParseStay reads both stay dates. It does not check their order.
func ParseStay(checkIn, checkOut string) (Stay, error) {
	in, err := shared.ParseDate(checkIn)
	if err != nil {
		return Stay{}, err //nolint:wrapcheck
	}

	out, err := shared.ParseDate(checkOut)
	if err != nil {
		return Stay{}, err //nolint:wrapcheck
	}

	return Stay{CheckIn: in, CheckOut: out}, nil
}

// Valid reports whether the stay is at least one night long.
func (s Stay) Valid() bool {
	return s.CheckOut.After(s.CheckIn)
}
