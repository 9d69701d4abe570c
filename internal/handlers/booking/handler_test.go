package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	serviceMocks "hotel/internal/domains/booking/service/mocks"
	"hotel/internal/handlers/booking"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	roomID    = "9b2f1f5e-4c1d-4a7e-9c55-0d7a3c8e1b10"
	bookingID = "3c6e0b8a-2f4d-4b1e-8a57-6d9e1f2a4c30"
)

func newRouter(t *testing.T) (*chi.Mux, *serviceMocks.MockBooking) {
	t.Helper()

	svc := serviceMocks.NewMockBooking(gomock.NewController(t))
	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
				assert.Equal(t, "Ann Lee", req.CustomerName)

				return dto.BookingResponse{ID: "b1", Status: bookingModel.StatusPending}, nil
			})

		rec := serve(router, http.MethodPost, "/bookings", `{"customer_name":"Ann Lee","customer_phone":"+1 555","room_id":"`+roomID+`","check_in_date":"2024-01-01","check_out_date":"2024-01-03"}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Data dto.BookingResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "b1", body.Data.ID)
	})

	t.Run("invalid body never reaches the service", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := serve(router, http.MethodPost, "/bookings", `{"customer_name":"Ann Lee","room_id":"nope","check_in_date":"01/01/2024"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no availability maps to conflict", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.Conflict("room no longer exists"))

		rec := serve(router, http.MethodPost, "/bookings", `{"customer_name":"Ann Lee","customer_phone":"+1 555","room_id":"`+roomID+`","check_in_date":"2024-01-01","check_out_date":"2024-01-03"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_GetBookings(t *testing.T) {
	t.Run("filters reach the service", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
				assert.Equal(t, 2, params.Page)

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "bookings.status")
				assert.Equal(t, bookingModel.StatusCheckedIn, args[bookingModel.FieldStatus])

				return dto.GetBookingsResponse{}, nil
			})

		rec := serve(router, http.MethodGet, "/bookings?page=2&status=checked_in", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad date filter", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := serve(router, http.MethodGet, "/bookings?check_in_from=yesterday", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Transitions(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Cancel(gomock.Any(), bookingID).Return(dto.BookingResponse{ID: bookingID, Status: bookingModel.StatusCancelled}, nil)

		rec := serve(router, http.MethodPost, "/bookings/"+bookingID+"/cancel", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), bookingModel.StatusCancelled)
	})

	t.Run("check out", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().CheckInOut(gomock.Any(), bookingID, dto.ActionCheckOut).Return(dto.BookingResponse{ID: bookingID, Status: bookingModel.StatusCheckedOut}, nil)

		rec := serve(router, http.MethodPost, "/bookings/"+bookingID+"/check-in-out", `{"action":"check_out"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown action", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := serve(router, http.MethodPost, "/bookings/"+bookingID+"/check-in-out", `{"action":"teleport"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing booking", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Get(gomock.Any(), bookingID).Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

		rec := serve(router, http.MethodGet, "/bookings/"+bookingID, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), bookingID).Return(nil)

		rec := serve(router, http.MethodDelete, "/bookings/"+bookingID, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEqual(t, constant.Empty, rec.Body.String())
	})
}

func TestHandler_MalformedID(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "get", method: http.MethodGet, target: "/bookings/abc"},
		{name: "cancel", method: http.MethodPost, target: "/bookings/abc/cancel"},
		{name: "check in", method: http.MethodPost, target: "/bookings/abc/check-in-out", body: `{"action":"check_in"}`},
		{name: "delete", method: http.MethodDelete, target: "/bookings/12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no service expectations: the request must stop before storage
			router, _ := newRouter(t)

			rec := serve(router, tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "booking not found")
		})
	}
}
