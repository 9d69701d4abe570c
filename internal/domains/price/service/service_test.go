package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	priceMocks "hotel/internal/domains/price/mocks"
	"hotel/internal/domains/price/model"
	"hotel/internal/domains/price/model/dto"
	"hotel/internal/domains/price/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	cacheMocks "hotel/shared/cache/mocks"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomTypeID = "5b0d1c8e-8f57-4d8a-9a55-2f1d9f0c7a11"

type fixture struct {
	repo         *priceMocks.MockPrice
	roomRepo     *roomMocks.MockRoom
	roomTypeRepo *roomTypeMocks.MockRoomType
	cache        *cacheMocks.MockRedisCache
	svc          service.Price
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:         priceMocks.NewMockPrice(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.roomRepo, f.roomTypeRepo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)

	return d
}

func TestPriceService_Create(t *testing.T) {
	friday := 4

	tests := []struct {
		name     string
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "success",
			setup: func(f fixture) {
				f.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Price) error {
					assert.Equal(t, 4, m.DayOfWeek)
					assert.Equal(t, "2200.00", m.Price.StringFixed(2))

					return nil
				})
			},
		},
		{
			name: "room type missing",
			setup: func(f fixture) {
				f.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "second price for the same day",
			setup: func(f fixture) {
				f.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(context.Background(), dto.CreatePriceRequest{
				RoomTypeID: roomTypeID,
				DayOfWeek:  &friday,
				Price:      dec("2200"),
			})
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Friday", res.DayName)
		})
	}
}

func TestPriceService_GetAll(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Price{
		{ID: "p1", RoomTypeName: "Standard", DayOfWeek: 6, Price: dec("2300")},
	}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, res.Prices, 1)
	assert.Equal(t, "Sunday", res.Prices[0].DayName)
	assert.Equal(t, 1, res.TotalPage)
}

func TestPriceService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Price{}, nil)

		_, err := f.svc.Get(context.Background(), "p1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Price{ID: "p1", DayOfWeek: 0}, nil)

		res, err := f.svc.Get(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "Monday", res.DayName)
	})
}

func TestPriceService_UpdateAndDelete(t *testing.T) {
	price := dec("999.999")

	t.Run("update rounds", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				got, ok := fields[model.FieldPrice].(*decimal.Decimal)
				require.True(t, ok)
				assert.Equal(t, "1000.00", got.StringFixed(2))

				return nil
			})

		assert.NoError(t, f.svc.Update(context.Background(), dto.UpdatePriceRequest{Price: &price}, "p1"))
	})

	t.Run("update conflict", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})

		err := f.svc.Update(context.Background(), dto.UpdatePriceRequest{Price: &price}, "p1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("delete missing", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "p1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "p1"))
	})
}

func TestPriceService_Table(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.roomTypeRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomTypeModel.RoomType{
		{ID: "std", Name: "Standard"},
		{ID: "lux", Name: "Suite"},
	}, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Price{
		{RoomTypeID: "std", DayOfWeek: 0, Price: dec("2000")},
		{RoomTypeID: "std", DayOfWeek: 5, Price: dec("2500")},
	}, nil)

	res, err := f.svc.Table(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Table, 2)
	assert.True(t, dec("2500").Equal(res.Table["Standard"]["Saturday"]))
	assert.Empty(t, res.Table["Suite"])
}

func TestPriceService_TotalPrice(t *testing.T) {
	room := roomModel.Room{ID: "r101", RoomNumber: 101, RoomTypeID: roomTypeID, PricePerNight: dec("2100")}

	tests := []struct {
		name     string
		prices   []model.Price
		in, out  string
		expected string
		noLookup bool
	}{
		{
			name:     "no weekday prices charges the room price",
			in:       "2024-01-01",
			out:      "2024-01-03",
			expected: "4200",
		},
		{
			name: "weekday prices with fallback",
			prices: []model.Price{
				{DayOfWeek: 0, Price: dec("2000")},
				{DayOfWeek: 1, Price: dec("2000")},
				{DayOfWeek: 4, Price: dec("2200")},
			},
			in:       "2024-01-04",
			out:      "2024-01-06",
			expected: "4300",
		},
		{
			name:     "empty stay costs nothing",
			in:       "2024-01-04",
			out:      "2024-01-04",
			expected: "0",
			noLookup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if !tt.noLookup {
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.prices, nil)
			}

			got, err := f.svc.TotalPrice(context.Background(), room, day(tt.in), day(tt.out))
			require.NoError(t, err)
			assert.True(t, dec(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestPriceService_Quote(t *testing.T) {
	req := dto.QuoteRequest{RoomID: "r101", CheckInDate: "2024-01-01", CheckOutDate: "2024-01-03"}

	t.Run("quotes the stay", func(t *testing.T) {
		f := newFixture(t)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "r101", RoomNumber: 101, PricePerNight: dec("2000")}, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Quote(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Nights)
		assert.Equal(t, 101, res.RoomNumber)
		assert.True(t, dec("4000").Equal(res.TotalPrice))
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Quote(context.Background(), req)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("bad date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Quote(context.Background(), dto.QuoteRequest{RoomID: "r101", CheckInDate: "01/01/2024", CheckOutDate: "2024-01-03"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
