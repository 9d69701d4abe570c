package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	availabilityModel "hotel/internal/domains/availability/model"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	priceService "hotel/internal/domains/price/service"
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

// EventStatusDeleted marks the status change event of a removed booking.
const EventStatusDeleted = "deleted"

const (
	cacheGetBooking    = constant.CachePrefixBooking + "get"
	cacheGetAllBooking = constant.CachePrefixBooking + "gets"
	defaultSortBooking = model.TableName + "." + model.FieldCreatedAt

	msgNotFound      = "booking not found"
	msgRoomNotFound  = "room not found"
	msgUnknownAction = "action must be check_in or check_out"
	msgRoomGone      = "room no longer exists"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Place(ctx context.Context, booking model.Booking) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckInOut(ctx context.Context, id, action string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepository.Room
	price        priceService.Price
	availability availabilityService.Availability
	transactor   gRepo.Transactor
	publisher    event.Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepository.Room,
	price priceService.Price,
	availability availabilityService.Availability,
	transactor gRepo.Transactor,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		price:        price,
		availability: availability,
		transactor:   transactor,
		publisher:    publisher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create prices the stay once, at creation, and stores the booking together with the room's new flag.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stay, err := dto.ParseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !stay.Valid() {
		return res, failure.InvalidStayDates // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	total, err := s.price.TotalPrice(ctx, room, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return res, fmt.Errorf("failed to price stay: %w", err)
	}

	booking := req.ToModel(shared.UserFromContext(ctx), stay, total)
	booking.RoomNumber = room.RoomNumber

	return s.Place(ctx, booking)
}

// Place stores a fully built booking and re-derives its room's availability in the same transaction.
func (s *serviceImpl) Place(ctx context.Context, booking model.Booking) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Place")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var synced availabilityModel.SyncResult

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return failure.FromForeignKeyViolation(err, msgRoomGone) //nolint:wrapcheck
		}

		var err error

		synced, err = s.availability.Sync(ctx, tx, booking.RoomID)

		return err //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", booking.RoomID).Msg("failed to place booking")

		return res, fmt.Errorf("failed to place booking: %w", err)
	}

	s.afterCommit(ctx, booking.ID, booking.RoomID, booking.Status, synced)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.RestrictSort(model.TableName, dto.SortableFields...)
	req.WithDefaultSort(defaultSortBooking, gDto.SortDirDesc)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var (
		roomID string
		synced availabilityModel.SyncResult
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err := s.repo.GetTx(ctx, tx, true, filter)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if booking.ID == constant.Empty {
			return failure.NotFound(msgNotFound) // nolint:wrapcheck
		}

		if err = s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return err //nolint:wrapcheck
		}

		roomID = booking.RoomID
		synced, err = s.availability.Sync(ctx, tx, roomID)

		return err //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.afterCommit(ctx, id, roomID, EventStatusDeleted, synced)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, model.StatusCancelled, constant.Empty)
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, model.StatusCheckedIn, model.FieldActualCheckInAt)
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, model.StatusCheckedOut, model.FieldActualCheckOutAt)
}

func (s *serviceImpl) CheckInOut(ctx context.Context, id, action string) (dto.BookingResponse, error) {
	switch action {
	case dto.ActionCheckIn:
		return s.CheckIn(ctx, id)
	case dto.ActionCheckOut:
		return s.CheckOut(ctx, id)
	default:
		return dto.BookingResponse{}, failure.BadRequestFromString(msgUnknownAction) // nolint:wrapcheck
	}
}

// transition writes the new status, and the named timestamp when given, then re-derives the room's
// flag, all in one transaction. Any status may move to any other.
func (s *serviceImpl) transition(ctx context.Context, id, status, stampField string) (res dto.BookingResponse, err error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	user := shared.UserFromContext(ctx)

	var (
		booking model.Booking
		synced  availabilityModel.SyncResult
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error

		booking, err = s.repo.GetTx(ctx, tx, true, filter)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if booking.ID == constant.Empty {
			return failure.NotFound(msgNotFound) // nolint:wrapcheck
		}

		now := timezone.Now()
		fields := map[string]any{
			model.FieldStatus:        status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		switch stampField {
		case model.FieldActualCheckInAt:
			fields[stampField] = now
			booking.ActualCheckInAt = &now
		case model.FieldActualCheckOutAt:
			fields[stampField] = now
			booking.ActualCheckOutAt = &now
		}

		if err = s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err //nolint:wrapcheck
		}

		booking.Status = status
		booking.ModifiedAt = now
		booking.ModifiedBy = user

		synced, err = s.availability.Sync(ctx, tx, booking.RoomID)

		return err //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("status", status).Msg("failed to change booking status")

		return res, fmt.Errorf("failed to set booking %s: %w", status, err)
	}

	s.afterCommit(ctx, booking.ID, booking.RoomID, status, synced)

	res.FromModel(booking)

	return res, nil
}

// afterCommit runs the side effects of a committed booking change. None of them can undo it.
func (s *serviceImpl) afterCommit(ctx context.Context, bookingID, roomID, status string, synced availabilityModel.SyncResult) {
	metrics.IncBookingTransition(status)

	changed := model.StatusChangedEvent{
		BookingID:     bookingID,
		RoomID:        roomID,
		Status:        status,
		RoomAvailable: synced.Available,
		ChangedBy:     shared.UserFromContext(ctx),
		OccurredAt:    timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)

		if synced.Changed {
			shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
		}

		if err := s.publisher.StatusChanged(c, changed); err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to publish booking status change")
		}
	}()
}
