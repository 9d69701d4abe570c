package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	availabilityService "hotel/internal/domains/availability/service"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/maintenance/model"
	priceModel "hotel/internal/domains/price/model"
	priceRepository "hotel/internal/domains/price/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepository "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const operator = "maintenance"

type Maintenance interface {
	Reset(ctx context.Context) (model.ResetResult, error)
	Seed(ctx context.Context) (model.SeedResult, error)
}

type serviceImpl struct {
	roomTypeRepo roomTypeRepository.RoomType
	roomRepo     roomRepository.Room
	priceRepo    priceRepository.Price
	bookingRepo  bookingRepository.Booking
	availability availabilityService.Availability
	transactor   gRepo.Transactor
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	roomTypeRepo roomTypeRepository.RoomType,
	roomRepo roomRepository.Room,
	priceRepo priceRepository.Price,
	bookingRepo bookingRepository.Booking,
	availability availabilityService.Availability,
	transactor gRepo.Transactor,
	cache cache.RedisCache,
	otel otel.Otel,
) Maintenance {
	return &serviceImpl{
		roomTypeRepo: roomTypeRepo,
		roomRepo:     roomRepo,
		priceRepo:    priceRepo,
		bookingRepo:  bookingRepo,
		availability: availability,
		transactor:   transactor,
		cache:        cache,
		otel:         otel,
	}
}

// Reset deletes every booking and marks every room available in a single transaction.
func (s *serviceImpl) Reset(ctx context.Context) (res model.ResetResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reset")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	allBookings := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Operator: gDto.FilterIsNotNull, Table: bookingModel.TableName},
		},
	}
	occupied := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldAvailable, Value: false, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
		},
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		deleted, txErr := s.bookingRepo.CountTx(ctx, tx, allBookings)
		if txErr != nil {
			return fmt.Errorf("failed to count bookings: %w", txErr)
		}

		if deleted > 0 {
			if txErr = s.bookingRepo.DeleteTx(ctx, tx, allBookings); txErr != nil {
				return fmt.Errorf("failed to delete bookings: %w", txErr)
			}
		}

		freed, txErr := s.roomRepo.CountTx(ctx, tx, occupied)
		if txErr != nil {
			return fmt.Errorf("failed to count occupied rooms: %w", txErr)
		}

		if freed > 0 {
			txErr = s.roomRepo.UpdateTx(ctx, tx, map[string]any{
				roomModel.FieldAvailable: true,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: operator,
			}, occupied)
			if txErr != nil {
				return fmt.Errorf("failed to free rooms: %w", txErr)
			}
		}

		res = model.ResetResult{BookingsDeleted: deleted, RoomsFreed: freed}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to reset bookings")

		return model.ResetResult{}, fmt.Errorf("failed to reset bookings: %w", err)
	}

	// Commands exit right after Reset returns, so the caches are cleared before returning.
	shared.InvalidateCaches(ctx, s.cache, constant.CachePrefixBooking)
	shared.InvalidateCaches(ctx, s.cache, constant.CachePrefixRoom)

	log.Info().Int("bookings_deleted", res.BookingsDeleted).Int("rooms_freed", res.RoomsFreed).Msg("bookings reset")

	return res, nil
}

// Seed loads the demo inventory, skipping anything already present, then reconciles availability.
func (s *serviceImpl) Seed(ctx context.Context) (res model.SeedResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Seed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()

	typeIDs, err := s.seedRoomTypes(ctx, now, &res)
	if err != nil {
		return res, err
	}

	rooms, err := s.seedRooms(ctx, now, typeIDs, &res)
	if err != nil {
		return res, err
	}

	if err = s.seedBookings(ctx, now, rooms, &res); err != nil {
		return res, err
	}

	res.Reconcile, err = s.availability.Reconcile(ctx, true)
	if err != nil {
		return res, fmt.Errorf("failed to reconcile after seeding: %w", err)
	}

	for _, prefix := range []string{constant.CachePrefixRoomType, constant.CachePrefixRoom, constant.CachePrefixPrice, constant.CachePrefixBooking} {
		shared.InvalidateCaches(ctx, s.cache, prefix)
	}

	log.Info().
		Int("room_types", res.RoomTypes).
		Int("rooms", res.Rooms).
		Int("prices", res.Prices).
		Int("bookings", res.Bookings).
		Msg("seed data loaded")

	return res, nil
}

func (s *serviceImpl) seedRoomTypes(ctx context.Context, now time.Time, res *model.SeedResult) (map[string]string, error) {
	typeIDs := make(map[string]string, len(model.SeedRoomTypes))

	for _, seed := range model.SeedRoomTypes {
		roomType, err := s.roomTypeRepo.Get(ctx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: roomTypeModel.FieldName, Value: seed.Name, Operator: gDto.FilterOperatorEq, Table: roomTypeModel.TableName},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to look up room type %s: %w", seed.Name, err)
		}

		if roomType.ID == constant.Empty {
			roomType = roomTypeModel.RoomType{
				ID:          uuid.NewString(),
				Name:        seed.Name,
				Description: seed.Description,
				Metadata:    gModel.NewMetadata(now, operator),
			}

			if err = s.roomTypeRepo.Insert(ctx, roomType); err != nil {
				return nil, fmt.Errorf("failed to insert room type %s: %w", seed.Name, err)
			}

			res.RoomTypes++
		}

		typeIDs[seed.Name] = roomType.ID

		for day, rate := range seed.Weekly {
			exists, err := s.priceRepo.Exist(ctx, gDto.And(
				gDto.Filter{Field: priceModel.FieldRoomTypeID, Value: roomType.ID, Operator: gDto.FilterOperatorEq, Table: priceModel.TableName},
				gDto.Filter{Field: priceModel.FieldDayOfWeek, Value: day, Operator: gDto.FilterOperatorEq, Table: priceModel.TableName},
			))
			if err != nil {
				return nil, fmt.Errorf("failed to look up price: %w", err)
			}

			if exists {
				continue
			}

			err = s.priceRepo.Insert(ctx, priceModel.Price{
				ID:         uuid.NewString(),
				RoomTypeID: roomType.ID,
				DayOfWeek:  day,
				Price:      decimal.NewFromInt(rate),
				Metadata:   gModel.NewMetadata(now, operator),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to insert price: %w", err)
			}

			res.Prices++
		}
	}

	return typeIDs, nil
}

func (s *serviceImpl) seedRooms(ctx context.Context, now time.Time, typeIDs map[string]string, res *model.SeedResult) (map[int]roomModel.Room, error) {
	rooms := make(map[int]roomModel.Room, len(model.SeedRooms))

	for _, seed := range model.SeedRooms {
		room, err := s.roomRepo.Get(ctx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: roomModel.FieldRoomNumber, Value: seed.Number, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to look up room %d: %w", seed.Number, err)
		}

		if room.ID == constant.Empty {
			room = roomModel.Room{
				ID:            uuid.NewString(),
				RoomNumber:    seed.Number,
				RoomTypeID:    typeIDs[seed.RoomType],
				Category:      seed.Category,
				Capacity:      seed.Capacity,
				HasBabyBed:    seed.HasBabyBed,
				Available:     seed.Available,
				PricePerNight: decimal.NewFromInt(seed.Flat),
				Metadata:      gModel.NewMetadata(now, operator),
			}

			if err = s.roomRepo.Insert(ctx, room); err != nil {
				return nil, fmt.Errorf("failed to insert room %d: %w", seed.Number, err)
			}

			res.Rooms++
		}

		rooms[seed.Number] = room
	}

	return rooms, nil
}

func (s *serviceImpl) seedBookings(ctx context.Context, now time.Time, rooms map[int]roomModel.Room, res *model.SeedResult) error {
	today := model.Today(now)
	weekly := seedPriceTables()

	for _, seed := range model.SeedBookings {
		room := rooms[seed.RoomNumber]
		checkIn := today.AddDate(0, 0, seed.CheckInOffset)
		checkOut := today.AddDate(0, 0, seed.CheckOutOffset)

		exists, err := s.bookingRepo.Exist(ctx, gDto.And(
			gDto.Filter{Field: bookingModel.FieldCustomerName, Value: seed.CustomerName, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldRoomID, Value: room.ID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldCheckInDate, Value: checkIn, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldCheckOutDate, Value: checkOut, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		))
		if err != nil {
			return fmt.Errorf("failed to look up booking: %w", err)
		}

		if exists {
			continue
		}

		booking := bookingModel.Booking{
			ID:            uuid.NewString(),
			CustomerName:  seed.CustomerName,
			CustomerPhone: seed.CustomerPhone,
			RoomID:        room.ID,
			CheckInDate:   checkIn,
			CheckOutDate:  checkOut,
			Status:        seed.Status,
			TotalPrice:    priceModel.TotalPrice(weekly[seedTypeOf(seed.RoomNumber)], room.PricePerNight, checkIn, checkOut),
			Metadata:      gModel.NewMetadata(now, operator),
		}

		if seed.Status == bookingModel.StatusCheckedIn {
			stamp := now
			booking.ActualCheckInAt = &stamp
		}

		if err = s.bookingRepo.Insert(ctx, booking); err != nil {
			return fmt.Errorf("failed to insert booking for room %d: %w", seed.RoomNumber, err)
		}

		res.Bookings++
	}

	return nil
}

func seedPriceTables() map[string]priceModel.Table {
	tables := make(map[string]priceModel.Table, len(model.SeedRoomTypes))

	for _, seed := range model.SeedRoomTypes {
		table := make(priceModel.Table, priceModel.DaysInWeek)
		for day, rate := range seed.Weekly {
			table[day] = decimal.NewFromInt(rate)
		}

		tables[seed.Name] = table
	}

	return tables
}

func seedTypeOf(number int) string {
	for _, seed := range model.SeedRooms {
		if seed.Number == number {
			return seed.RoomType
		}
	}

	return constant.Empty
}
