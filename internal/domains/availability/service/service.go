package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/model"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/metrics"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const msgRoomNotFound = "room not found"

type Availability interface {
	Sync(ctx context.Context, tx *sqlx.Tx, roomID string) (model.SyncResult, error)
	Reconcile(ctx context.Context, fix bool) (model.Report, error)
	Statuses(ctx context.Context) ([]model.RoomStatus, error)
}

type serviceImpl struct {
	roomRepo    roomRepository.Room
	bookingRepo bookingRepository.Booking
	transactor  gRepo.Transactor
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	roomRepo roomRepository.Room,
	bookingRepo bookingRepository.Booking,
	transactor gRepo.Transactor,
	cache cache.RedisCache,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		transactor:  transactor,
		cache:       cache,
		otel:        otel,
	}
}

// Sync re-derives the room's flag from its bookings inside tx and writes it only when it differs.
// The room row stays locked until tx ends, so concurrent syncs of one room serialize.
func (s *serviceImpl) Sync(ctx context.Context, tx *sqlx.Tx, roomID string) (res model.SyncResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sync")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	roomFilter := shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)

	room, err := s.roomRepo.GetTx(ctx, tx, true, roomFilter)
	if err != nil {
		return res, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	bookings, err := s.bookingRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, gDto.And(gDto.Filter{
		Field:    bookingModel.FieldRoomID,
		Operator: gDto.FilterOperatorEq,
		Value:    roomID,
		Table:    bookingModel.TableName,
	}))
	if err != nil {
		return res, fmt.Errorf("failed to load room bookings: %w", err)
	}

	res = model.SyncResult{RoomID: roomID, Available: model.ShouldBeAvailable(bookings)}

	if res.Available == room.Available {
		return res, nil
	}

	err = s.roomRepo.UpdateTx(ctx, tx, map[string]any{
		roomModel.FieldAvailable: res.Available,
		constant.FieldModifiedAt: timezone.Now(),
	}, roomFilter)
	if err != nil {
		return res, fmt.Errorf("failed to store room availability: %w", err)
	}

	res.Changed = true

	log.Info().Int("room_number", room.RoomNumber).Bool("available", res.Available).Msg("room availability changed")
	metrics.IncAvailabilityChanged(res.Available)

	return res, nil
}

// Reconcile compares every room's flag with its bookings. With fix set, each mismatch is corrected
// in its own transaction. Mismatches are reported, never returned as errors.
func (s *serviceImpl) Reconcile(ctx context.Context, fix bool) (res model.Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reconcile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = model.Report{Mode: model.ModeDetect, Mismatches: []model.Mismatch{}}
	if fix {
		res.Mode = model.ModeFix
	}

	rooms, active, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	for _, room := range rooms {
		res.Checked++

		derived := model.ShouldBeAvailable(active[room.ID])
		if derived == room.Available {
			continue
		}

		res.Mismatched++
		res.Mismatches = append(res.Mismatches, model.Mismatch{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			Stored:     room.Available,
			Derived:    derived,
		})

		log.Warn().Int("room_number", room.RoomNumber).Bool("stored", room.Available).Bool("derived", derived).Msg("room availability mismatch")

		if !fix {
			continue
		}

		var result model.SyncResult

		err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			var syncErr error

			result, syncErr = s.Sync(ctx, tx, room.ID)

			return syncErr
		})
		if err != nil {
			return res, fmt.Errorf("failed to fix room %d: %w", room.RoomNumber, err)
		}

		if result.Changed {
			res.Fixed++
		}
	}

	metrics.AddReconcileMismatch(res.Mode, res.Mismatched)

	// Cleared in line: the reconcile command exits as soon as this returns.
	if res.Fixed > 0 {
		shared.InvalidateCaches(ctx, s.cache, constant.CachePrefixRoom)
	}

	log.Info().
		Str("mode", res.Mode).
		Int("checked", res.Checked).
		Int("mismatched", res.Mismatched).
		Int("fixed", res.Fixed).
		Msg("availability reconciled")

	return res, nil
}

// Statuses lists every room by number with its stored flag, derived occupancy and active bookings.
func (s *serviceImpl) Statuses(ctx context.Context) (res []model.RoomStatus, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Statuses")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, active, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	res = make([]model.RoomStatus, len(rooms))

	for i, room := range rooms {
		bookings := active[room.ID]
		occupied := !model.ShouldBeAvailable(bookings)

		status := model.RoomStatus{
			RoomID:         room.ID,
			RoomNumber:     room.RoomNumber,
			RoomTypeName:   room.RoomTypeName,
			Available:      room.Available,
			Occupied:       occupied,
			InSync:         room.Available != occupied,
			ActiveBookings: make([]model.ActiveBooking, len(bookings)),
		}

		for j, booking := range bookings {
			status.ActiveBookings[j] = model.ActiveBooking{
				ID:           booking.ID,
				CustomerName: booking.CustomerName,
				Status:       booking.Status,
				CheckInDate:  booking.CheckInDate.Format(constant.DateOnlyFormat),
				CheckOutDate: booking.CheckOutDate.Format(constant.DateOnlyFormat),
			}
		}

		res[i] = status
	}

	return res, nil
}

// load returns every room by number and the active bookings grouped by room.
func (s *serviceImpl) load(ctx context.Context) ([]roomModel.Room, map[string][]bookingModel.Booking, error) {
	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  roomModel.TableName + "." + roomModel.FieldRoomNumber,
		SortDir: gDto.SortDirAsc,
	}, gDto.FilterGroup{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  bookingModel.TableName + "." + bookingModel.FieldCheckInDate,
		SortDir: gDto.SortDirAsc,
	}, gDto.And(gDto.Filter{
		Field:    bookingModel.FieldStatus,
		Operator: gDto.FilterOperatorNotIn,
		Value:    bookingModel.ClosedStatuses,
		Table:    bookingModel.TableName,
	}))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get active bookings: %w", err)
	}

	active := make(map[string][]bookingModel.Booking, len(rooms))
	for _, booking := range bookings {
		active[booking.RoomID] = append(active[booking.RoomID], booking)
	}

	return rooms, active, nil
}
