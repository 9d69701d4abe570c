package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	availabilityModel "hotel/internal/domains/availability/model"
	availabilityService "hotel/internal/domains/availability/service"
	availabilityMocks "hotel/internal/domains/availability/service/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	priceMocks "hotel/internal/domains/price/service/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	cacheMocks "hotel/shared/cache/mocks"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	repoMocks "hotel/shared/repository/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomID = "0b8e0b5c-3c55-4a57-8a56-0d0f4a3c1b01"

type fixture struct {
	repo         *bookingMocks.MockBooking
	roomRepo     *roomMocks.MockRoom
	price        *priceMocks.MockPrice
	availability *availabilityMocks.MockAvailability
	transactor   *repoMocks.MockTransactor
	publisher    *bookingMocks.MockPublisher
	cache        *cacheMocks.MockRedisCache
	events       chan model.StatusChangedEvent
	svc          service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		price:        priceMocks.NewMockPrice(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		transactor:   repoMocks.NewMockTransactor(ctrl),
		publisher:    bookingMocks.NewMockPublisher(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		events:       make(chan model.StatusChangedEvent, 8),
	}
	f.svc = service.New(f.repo, f.roomRepo, f.price, f.availability, f.transactor, f.publisher, cfg, f.cache, mocks.NewOtel())

	f.expectAmbient()

	return f
}

func (f fixture) expectAmbient() {
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		}).AnyTimes()
	f.publisher.EXPECT().StatusChanged(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, evt model.StatusChangedEvent) error {
			f.events <- evt

			return nil
		}).AnyTimes()
}

func (f fixture) nextEvent(t *testing.T) model.StatusChangedEvent {
	t.Helper()

	select {
	case evt := <-f.events:
		return evt
	case <-time.After(time.Second):
		t.Fatal("no status change event published")

		return model.StatusChangedEvent{}
	}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CustomerName:  "Ann Lee",
		CustomerPhone: "+1 555 0100",
		RoomID:        roomID,
		CheckInDate:   "2024-01-01",
		CheckOutDate:  "2024-01-03",
	}
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name     string
		req      func() dto.CreateBookingRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "success prices the stay and syncs the room",
			req:  createRequest,
			setup: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID, RoomNumber: 101}, nil)
				f.price.EXPECT().TotalPrice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.NewFromInt(4000), nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
						assert.Equal(t, model.StatusPending, b.Status)
						assert.True(t, decimal.NewFromInt(4000).Equal(b.TotalPrice))

						return nil
					})
				f.availability.EXPECT().Sync(gomock.Any(), gomock.Any(), roomID).
					Return(availabilityModel.SyncResult{RoomID: roomID, Available: false, Changed: true}, nil)
			},
		},
		{
			name: "check-out before check-in",
			req: func() dto.CreateBookingRequest {
				req := createRequest()
				req.CheckOutDate = "2024-01-01"

				return req
			},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "malformed date",
			req: func() dto.CreateBookingRequest {
				req := createRequest()
				req.CheckInDate = "01/01/2024"

				return req
			},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown room",
			req:  createRequest,
			setup: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "room deleted meanwhile",
			req:  createRequest,
			setup: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID}, nil)
				f.price.EXPECT().TotalPrice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "sync failure rolls back",
			req:  createRequest,
			setup: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID}, nil)
				f.price.EXPECT().TotalPrice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.availability.EXPECT().Sync(gomock.Any(), gomock.Any(), roomID).Return(availabilityModel.SyncResult{}, errors.New("lock timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(context.Background(), tt.req())
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 101, res.RoomNumber)
			assert.Equal(t, "2024-01-03", res.CheckOutDate)

			evt := f.nextEvent(t)
			assert.Equal(t, model.StatusPending, evt.Status)
			assert.False(t, evt.RoomAvailable)
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, "bookings.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Booking{{ID: "b1", Status: model.StatusConfirmed}}, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.svc.Get(context.Background(), "b1")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		call       func(svc service.Booking) (dto.BookingResponse, error)
		wantStatus string
		stamp      string
	}{
		{
			name:       "cancel",
			call:       func(svc service.Booking) (dto.BookingResponse, error) { return svc.Cancel(context.Background(), "b1") },
			wantStatus: model.StatusCancelled,
		},
		{
			name:       "check in",
			call:       func(svc service.Booking) (dto.BookingResponse, error) { return svc.CheckIn(context.Background(), "b1") },
			wantStatus: model.StatusCheckedIn,
			stamp:      model.FieldActualCheckInAt,
		},
		{
			name:       "check out",
			call:       func(svc service.Booking) (dto.BookingResponse, error) { return svc.CheckOut(context.Background(), "b1") },
			wantStatus: model.StatusCheckedOut,
			stamp:      model.FieldActualCheckOutAt,
		},
		{
			name: "combined check out",
			call: func(svc service.Booking) (dto.BookingResponse, error) {
				return svc.CheckInOut(context.Background(), "b1", dto.ActionCheckOut)
			},
			wantStatus: model.StatusCheckedOut,
			stamp:      model.FieldActualCheckOutAt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), true, gomock.Any()).
				Return(model.Booking{ID: "b1", RoomID: roomID, Status: model.StatusConfirmed}, nil)
			f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, tt.wantStatus, fields[model.FieldStatus])

					for _, stamp := range []string{model.FieldActualCheckInAt, model.FieldActualCheckOutAt} {
						_, ok := fields[stamp]
						assert.Equal(t, stamp == tt.stamp, ok, stamp)
					}

					return nil
				})
			f.availability.EXPECT().Sync(gomock.Any(), gomock.Any(), roomID).Return(availabilityModel.SyncResult{RoomID: roomID}, nil)

			res, err := tt.call(f.svc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantStatus, f.nextEvent(t).Status)
		})
	}
}

func TestBookingService_TransitionErrors(t *testing.T) {
	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), true, gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Cancel(context.Background(), "b1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown action", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CheckInOut(context.Background(), "b1", "teleport")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("deletes and syncs", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), true, gomock.Any()).Return(model.Booking{ID: "b1", RoomID: roomID}, nil)
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.availability.EXPECT().Sync(gomock.Any(), gomock.Any(), roomID).
			Return(availabilityModel.SyncResult{RoomID: roomID, Available: true, Changed: true}, nil)

		require.NoError(t, f.svc.Delete(context.Background(), "b1"))

		evt := f.nextEvent(t)
		assert.Equal(t, service.EventStatusDeleted, evt.Status)
		assert.True(t, evt.RoomAvailable)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), true, gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Delete(context.Background(), "b1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

// lifecycle wires the real availability service over an in-memory room and its bookings.
type lifecycle struct {
	fixture
	room     roomModel.Room
	bookings map[string]model.Booking
}

func newLifecycle(t *testing.T, stored bool, bookings ...model.Booking) *lifecycle {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}

	l := &lifecycle{
		fixture: fixture{
			repo:       bookingMocks.NewMockBooking(ctrl),
			roomRepo:   roomMocks.NewMockRoom(ctrl),
			price:      priceMocks.NewMockPrice(ctrl),
			transactor: repoMocks.NewMockTransactor(ctrl),
			publisher:  bookingMocks.NewMockPublisher(ctrl),
			cache:      cacheMocks.NewMockRedisCache(ctrl),
			events:     make(chan model.StatusChangedEvent, 8),
		},
		room:     roomModel.Room{ID: roomID, RoomNumber: 101, Available: stored},
		bookings: map[string]model.Booking{},
	}

	for _, b := range bookings {
		l.bookings[b.ID] = b
	}

	availability := availabilityService.New(l.roomRepo, l.repo, l.transactor, l.cache, mocks.NewOtel())
	l.svc = service.New(l.repo, l.roomRepo, l.price, availability, l.transactor, l.publisher, cfg, l.cache, mocks.NewOtel())

	l.expectAmbient()

	l.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), true, gomock.Any()).Return(l.room, nil).AnyTimes()
	l.roomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			l.room.Available, _ = fields[roomModel.FieldAvailable].(bool)

			return nil
		}).AnyTimes()
	l.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			res := make([]model.Booking, 0, len(l.bookings))
			for _, b := range l.bookings {
				res = append(res, b)
			}

			return res, nil
		}).AnyTimes()

	return l
}

func (l *lifecycle) expectTransition(id string) {
	l.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), true, gomock.Any()).Return(l.bookings[id], nil)
	l.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			b := l.bookings[id]
			b.Status, _ = fields[model.FieldStatus].(string)
			l.bookings[id] = b

			return nil
		})
}

func TestBookingLifecycle_CheckOutFreesRoom(t *testing.T) {
	l := newLifecycle(t, false, model.Booking{ID: "b1", RoomID: roomID, Status: model.StatusCheckedIn})
	l.expectTransition("b1")

	_, err := l.svc.CheckOut(context.Background(), "b1")
	require.NoError(t, err)

	assert.True(t, l.room.Available)
	assert.True(t, l.nextEvent(t).RoomAvailable)
}

func TestBookingLifecycle_CancelOnlyActiveBookingFreesRoom(t *testing.T) {
	l := newLifecycle(t, false, model.Booking{ID: "b1", RoomID: roomID, Status: model.StatusConfirmed})
	l.expectTransition("b1")

	_, err := l.svc.Cancel(context.Background(), "b1")
	require.NoError(t, err)

	assert.True(t, l.room.Available)
}

func TestBookingLifecycle_CancelWithAnotherActiveBookingKeepsRoom(t *testing.T) {
	l := newLifecycle(t, false,
		model.Booking{ID: "b1", RoomID: roomID, Status: model.StatusConfirmed},
		model.Booking{ID: "b2", RoomID: roomID, Status: model.StatusPending},
	)
	l.expectTransition("b1")

	_, err := l.svc.Cancel(context.Background(), "b1")
	require.NoError(t, err)

	assert.False(t, l.room.Available)
	assert.False(t, l.nextEvent(t).RoomAvailable)
}

func TestBookingLifecycle_CheckInTakesRoom(t *testing.T) {
	l := newLifecycle(t, true, model.Booking{ID: "b1", RoomID: roomID, Status: model.StatusCancelled})
	l.expectTransition("b1")

	_, err := l.svc.CheckIn(context.Background(), "b1")
	require.NoError(t, err)

	assert.False(t, l.room.Available)
}

func TestBookingService_CreateRejectsEmptyStay(t *testing.T) {
	f := newFixture(t)

	req := createRequest()
	req.CheckOutDate = req.CheckInDate

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, failure.InvalidStayDates)
	assert.EqualError(t, err, "check_out_date must be after check_in_date")
}
