package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	availabilityModel "hotel/internal/domains/availability/model"
	availabilityMocks "hotel/internal/domains/availability/service/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/maintenance/model"
	"hotel/internal/domains/maintenance/service"
	priceMocks "hotel/internal/domains/price/mocks"
	priceModel "hotel/internal/domains/price/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	repoMocks "hotel/shared/repository/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	roomTypeRepo *roomTypeMocks.MockRoomType
	roomRepo     *roomMocks.MockRoom
	priceRepo    *priceMocks.MockPrice
	bookingRepo  *bookingMocks.MockBooking
	availability *availabilityMocks.MockAvailability
	cleared      *[]string
	svc          service.Maintenance
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		priceRepo:    priceMocks.NewMockPrice(ctrl),
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		cleared:      &[]string{},
	}

	transactor := repoMocks.NewMockTransactor(ctrl)
	transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		}).AnyTimes()

	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pattern string) error {
		*f.cleared = append(*f.cleared, pattern)

		return nil
	}).AnyTimes()

	f.svc = service.New(f.roomTypeRepo, f.roomRepo, f.priceRepo, f.bookingRepo, f.availability, transactor, redisCache, mocks.NewOtel())

	return f
}

func TestMaintenanceService_Reset(t *testing.T) {
	t.Run("deletes bookings and frees rooms", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(3, nil)
		f.bookingRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.roomRepo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(2, nil)
		f.roomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
				assert.Equal(t, true, fields[roomModel.FieldAvailable])

				return nil
			})

		res, err := f.svc.Reset(context.Background())
		require.NoError(t, err)
		assert.Equal(t, model.ResetResult{BookingsDeleted: 3, RoomsFreed: 2}, res)
		assert.Equal(t, []string{"booking:*", "room:*"}, *f.cleared)
	})

	t.Run("nothing to reset", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
		f.roomRepo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)

		res, err := f.svc.Reset(context.Background())
		require.NoError(t, err)
		assert.Zero(t, res)
	})

	t.Run("delete failure rolls back", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
		f.bookingRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))

		res, err := f.svc.Reset(context.Background())
		require.Error(t, err)
		assert.Zero(t, res)
		assert.Empty(t, *f.cleared)
	})
}

func TestMaintenanceService_Seed(t *testing.T) {
	report := availabilityModel.Report{Mode: availabilityModel.ModeFix, Checked: 11, Mismatched: 2, Fixed: 2}

	t.Run("empty database", func(t *testing.T) {
		f := newFixture(t)

		var bookings []bookingModel.Booking

		f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{}, nil).Times(len(model.SeedRoomTypes))
		f.roomTypeRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(len(model.SeedRoomTypes))
		f.priceRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(21)
		f.priceRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(21)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil).Times(len(model.SeedRooms))
		f.roomRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(len(model.SeedRooms))
		f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(len(model.SeedBookings))
		f.bookingRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking bookingModel.Booking) error {
			bookings = append(bookings, booking)

			return nil
		}).Times(len(model.SeedBookings))
		f.availability.EXPECT().Reconcile(gomock.Any(), true).Return(report, nil)

		res, err := f.svc.Seed(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, res.RoomTypes)
		assert.Equal(t, 11, res.Rooms)
		assert.Equal(t, 21, res.Prices)
		assert.Equal(t, 3, res.Bookings)
		assert.Equal(t, report, res.Reconcile)

		require.Len(t, bookings, 3)

		for _, booking := range bookings {
			assert.NotEqual(t, constant.Empty, booking.RoomID)
			assert.True(t, booking.TotalPrice.IsPositive())
			assert.Equal(t, booking.Status == bookingModel.StatusCheckedIn, booking.ActualCheckInAt != nil)
		}
	})

	t.Run("already seeded", func(t *testing.T) {
		f := newFixture(t)

		f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{ID: "rt"}, nil).Times(3)
		f.priceRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(21)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "r"}, nil).Times(11)
		f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(3)
		f.availability.EXPECT().Reconcile(gomock.Any(), true).Return(availabilityModel.Report{Mode: availabilityModel.ModeFix}, nil)

		res, err := f.svc.Seed(context.Background())
		require.NoError(t, err)
		assert.Zero(t, res.RoomTypes+res.Rooms+res.Prices+res.Bookings)
	})

	t.Run("insert failure stops seeding", func(t *testing.T) {
		f := newFixture(t)

		f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{}, nil)
		f.roomTypeRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Seed(context.Background())
		assert.Error(t, err)
	})
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("X", 3*3600))

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), model.Today(now))
}

func TestSeedPriceGrid(t *testing.T) {
	for _, seed := range model.SeedRoomTypes {
		assert.Len(t, seed.Weekly, priceModel.DaysInWeek, seed.Name)
	}

	numbers := map[int]bool{}
	for _, room := range model.SeedRooms {
		assert.False(t, numbers[room.Number], "duplicate room %d", room.Number)
		numbers[room.Number] = true
	}

	for _, booking := range model.SeedBookings {
		assert.True(t, numbers[booking.RoomNumber], "booking for unknown room %d", booking.RoomNumber)
		assert.Less(t, booking.CheckInOffset, booking.CheckOutOffset)
	}
}
