package price_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/price/model/dto"
	serviceMocks "hotel/internal/domains/price/service/mocks"
	"hotel/internal/handlers/price"
	gDto "hotel/shared/dto"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*chi.Mux, *serviceMocks.MockPrice) {
	t.Helper()

	svc := serviceMocks.NewMockPrice(gomock.NewController(t))

	handler := price.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestHandler_GetPrices(t *testing.T) {
	router, svc := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPricesResponse, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "prices.day_of_week")
			assert.Equal(t, 4, args["day_of_week"])

			return dto.GetPricesResponse{}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prices?day_of_week=%204%20", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_PriceMalformedIDs(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
	}{
		{name: "get", method: http.MethodGet, target: "/prices/monday", wantCode: http.StatusNotFound},
		{name: "delete", method: http.MethodDelete, target: "/prices/7", wantCode: http.StatusNotFound},
		{name: "room type filter", method: http.MethodGet, target: "/prices?room_type_id=suite", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setup(t)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
