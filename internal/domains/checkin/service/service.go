package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingService "hotel/internal/domains/booking/service"
	"hotel/internal/domains/checkin/model"
	"hotel/internal/domains/checkin/model/dto"
	priceModel "hotel/internal/domains/price/model"
	priceService "hotel/internal/domains/price/service"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepository "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/metrics"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheQuote = constant.CachePrefixCheckIn + "quote"

	OutcomeQuoted         = "quoted"
	OutcomeNoAvailability = "no_availability"
	OutcomeConfirmed      = "confirmed"
	OutcomeExpired        = "expired"

	msgRoomTypeNotFound = "room type not found"
	msgNoAvailability   = "no available room of this type"
	msgQuoteNotFound    = "quote not found or expired"
)

type CheckIn interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Confirm(ctx context.Context, quoteID string) (bookingDto.BookingResponse, error)
}

type serviceImpl struct {
	roomRepo     roomRepository.Room
	roomTypeRepo roomTypeRepository.RoomType
	price        priceService.Price
	booking      bookingService.Booking
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	roomRepo roomRepository.Room,
	roomTypeRepo roomTypeRepository.RoomType,
	price priceService.Price,
	booking bookingService.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) CheckIn {
	return &serviceImpl{
		roomRepo:     roomRepo,
		roomTypeRepo: roomTypeRepo,
		price:        price,
		booking:      booking,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Quote picks a room for the guest, prices the stay and parks the offer in the cache until it is
// confirmed or its TTL runs out.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stay, err := bookingDto.ParseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !stay.Valid() {
		return res, failure.InvalidStayDates // nolint:wrapcheck
	}

	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(req.RoomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.NotFound(msgRoomTypeNotFound) // nolint:wrapcheck
	}

	room, err := s.pickRoom(ctx, req.RoomTypeID, req.HasBabyBed)
	if err != nil {
		return res, err
	}

	total, err := s.price.TotalPrice(ctx, room, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return res, fmt.Errorf("failed to price stay: %w", err)
	}

	ttl := s.cfg.App.CheckIn.QuoteTTLSeconds

	quote := model.Quote{
		ID:            uuid.NewString(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		RoomTypeID:    roomType.ID,
		RoomTypeName:  roomType.Name,
		RoomID:        room.ID,
		RoomNumber:    room.RoomNumber,
		HasBabyBed:    room.HasBabyBed,
		CheckInDate:   stay.CheckIn,
		CheckOutDate:  stay.CheckOut,
		Nights:        priceModel.Nights(stay.CheckIn, stay.CheckOut),
		TotalPrice:    total,
		ExpiresAt:     timezone.Now().Add(time.Duration(ttl) * time.Second),
	}

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cacheQuote, quote.ID), quote, ttl); err != nil {
		return res, fmt.Errorf("failed to store quote: %w", err)
	}

	metrics.IncCheckInQuote(OutcomeQuoted)

	log.Info().Str("quote_id", quote.ID).Int("room_number", room.RoomNumber).Msg("check-in quoted")

	res.FromModel(quote)

	return res, nil
}

// Confirm turns a quote into a checked-in booking. A quote can be confirmed once.
func (s *serviceImpl) Confirm(ctx context.Context, quoteID string) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var quote model.Quote

	err = s.cache.Take(ctx, shared.BuildCacheKey(cacheQuote, quoteID), &quote)
	if cache.IsMiss(err) {
		metrics.IncCheckInQuote(OutcomeExpired)

		return res, failure.NotFound(msgQuoteNotFound) // nolint:wrapcheck
	}

	if err != nil {
		return res, fmt.Errorf("failed to load quote: %w", err)
	}

	now := timezone.Now()
	user := shared.UserFromContext(ctx)

	booking := bookingModel.Booking{
		ID:              uuid.NewString(),
		CustomerName:    quote.CustomerName,
		CustomerPhone:   quote.CustomerPhone,
		CustomerEmail:   quote.CustomerEmail,
		RoomID:          quote.RoomID,
		RoomNumber:      quote.RoomNumber,
		CheckInDate:     quote.CheckInDate,
		CheckOutDate:    quote.CheckOutDate,
		Status:          bookingModel.StatusCheckedIn,
		ActualCheckInAt: &now,
		TotalPrice:      quote.TotalPrice,
		Metadata:        gModel.NewMetadata(now, user),
	}

	res, err = s.booking.Place(ctx, booking)
	if err != nil {
		return res, fmt.Errorf("failed to confirm quote: %w", err)
	}

	metrics.IncCheckInQuote(OutcomeConfirmed)

	return res, nil
}

// pickRoom returns the available room of the type with the lowest number, preferring rooms whose
// baby bed matches the request.
func (s *serviceImpl) pickRoom(ctx context.Context, roomTypeID string, hasBabyBed bool) (roomModel.Room, error) {
	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  roomModel.TableName + "." + roomModel.FieldRoomNumber,
		SortDir: gDto.SortDirAsc,
	}, gDto.And(
		gDto.Filter{
			Field:    roomModel.FieldRoomTypeID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomTypeID,
			Table:    roomModel.TableName,
		},
		gDto.Filter{
			Field:    roomModel.FieldAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    roomModel.TableName,
		},
	))
	if err != nil {
		return roomModel.Room{}, fmt.Errorf("failed to get available rooms: %w", err)
	}

	if len(rooms) == 0 {
		metrics.IncCheckInQuote(OutcomeNoAvailability)

		return roomModel.Room{}, failure.NoAvailability(msgNoAvailability) // nolint:wrapcheck
	}

	for _, room := range rooms {
		if room.HasBabyBed == hasBabyBed {
			return room, nil
		}
	}

	return rooms[0], nil
}
