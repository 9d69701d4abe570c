package room_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/infras/otel/mocks"
	availabilityModel "hotel/internal/domains/availability/model"
	availabilityMocks "hotel/internal/domains/availability/service/mocks"
	"hotel/internal/domains/room/model/dto"
	roomMocks "hotel/internal/domains/room/service/mocks"
	"hotel/internal/handlers/room"
	gDto "hotel/shared/dto"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*chi.Mux, *roomMocks.MockRoom, *availabilityMocks.MockAvailability) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := roomMocks.NewMockRoom(ctrl)
	availability := availabilityMocks.NewMockAvailability(ctrl)
	handler := room.New(svc, availability, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc, availability
}

func TestHandler_GetRooms(t *testing.T) {
	router, svc, _ := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
			assert.Equal(t, "rooms.room_number", params.SortBy)

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "rooms.available")
			assert.Contains(t, where, "rooms.category")
			assert.Equal(t, true, args["available"])

			return dto.GetRoomsResponse{}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms?available=true&category=double&sort_by=drop", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_StaticRoutesWinOverID(t *testing.T) {
	router, svc, availability := setup(t)

	svc.EXPECT().Summary(gomock.Any()).Return(dto.SummaryResponse{}, nil)
	availability.EXPECT().Statuses(gomock.Any()).Return([]availabilityModel.RoomStatus{}, nil)

	for _, target := range []string{"/rooms/summary", "/rooms/status"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestHandler_MalformedIDs(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
	}{
		{name: "get by malformed id", method: http.MethodGet, target: "/rooms/101", wantCode: http.StatusNotFound},
		{name: "delete by malformed id", method: http.MethodDelete, target: "/rooms/not-a-room", wantCode: http.StatusNotFound},
		{name: "malformed room type filter", method: http.MethodGet, target: "/rooms?room_type_id=suite", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := setup(t)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
