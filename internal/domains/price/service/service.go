package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/price/model"
	"hotel/internal/domains/price/model/dto"
	"hotel/internal/domains/price/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepository "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetPrice    = constant.CachePrefixPrice + "get"
	cacheGetAllPrice = constant.CachePrefixPrice + "gets"
	cachePriceTable  = constant.CachePrefixPrice + "table"

	msgNotFound         = "price not found"
	msgRoomNotFound     = "room not found"
	msgRoomTypeNotFound = "room type not found"
	msgDuplicateDay     = "price for this room type and day already exists"
)

type Price interface {
	Create(ctx context.Context, req dto.CreatePriceRequest) (dto.PriceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPricesResponse, error)
	Get(ctx context.Context, id string) (dto.PriceResponse, error)
	Update(ctx context.Context, req dto.UpdatePriceRequest, id string) error
	Delete(ctx context.Context, id string) error
	Table(ctx context.Context) (dto.PricingTableResponse, error)
	TotalPrice(ctx context.Context, room roomModel.Room, checkIn, checkOut time.Time) (decimal.Decimal, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	repo         repository.Price
	roomRepo     roomRepository.Room
	roomTypeRepo roomTypeRepository.RoomType
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Price,
	roomRepo roomRepository.Room,
	roomTypeRepo roomTypeRepository.RoomType,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Price {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		roomTypeRepo: roomTypeRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePriceRequest) (res dto.PriceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.roomTypeRepo.Exist(ctx, shared.FilterByID(req.RoomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to check room type existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound(msgRoomTypeNotFound) // nolint:wrapcheck
	}

	price := req.ToModel(shared.UserFromContext(ctx))

	if err = s.repo.Insert(ctx, price); err != nil {
		log.Error().Err(err).Str("room_type_id", req.RoomTypeID).Int("day_of_week", price.DayOfWeek).Msg("failed to create price")

		return res, failure.FromUniqueViolation(err, msgDuplicateDay) //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPrice)
		shared.InvalidateCaches(c, s.cache, cachePriceTable)
	}()

	res.FromModel(price)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPricesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPrice, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count prices")

		return res, fmt.Errorf("failed to count prices: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get prices")

		return res, fmt.Errorf("failed to get prices: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save prices to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PriceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetPrice, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	price, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get price")

		return res, fmt.Errorf("failed to get price: %w", err)
	}

	if price.ID == constant.Empty {
		return res, failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	res.FromModel(price)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save price to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePriceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check price existence: %w", err)
	}

	if !exist {
		return failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	if req.Price != nil {
		rounded := req.Price.Round(2)
		req.Price = &rounded
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.UserFromContext(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update price")

		return failure.FromUniqueViolation(err, msgDuplicateDay) //nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check price existence: %w", err)
	}

	if !exist {
		return failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete price")

		return fmt.Errorf("failed to delete price: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Table(ctx context.Context) (res dto.PricingTableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Table")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cachePriceTable, &res); err == nil {
		return res, nil
	}

	roomTypes, err := s.roomTypeRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	prices, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to get prices: %w", err)
	}

	names := make(map[string]string, len(roomTypes))
	for _, rt := range roomTypes {
		names[rt.ID] = rt.Name
	}

	res = dto.BuildPricingTable(names, prices)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cachePriceTable, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing table to cache")
		}
	}()

	return res, nil
}

// TotalPrice charges every night of the stay at the weekday price of the room's type, falling back
// to the room's own nightly price.
func (s *serviceImpl) TotalPrice(ctx context.Context, room roomModel.Room, checkIn, checkOut time.Time) (res decimal.Decimal, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TotalPrice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if model.Nights(checkIn, checkOut) == 0 {
		return decimal.Zero, nil
	}

	prices, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomTypeID,
				Value:    room.RoomTypeID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("room_type_id", room.RoomTypeID).Msg("failed to load weekday prices")

		return res, fmt.Errorf("failed to load weekday prices: %w", err)
	}

	return model.TotalPrice(model.NewTable(prices), room.PricePerNight, checkIn, checkOut), nil
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, err := shared.ParseDate(req.CheckInDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	checkOut, err := shared.ParseDate(req.CheckOutDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	total, err := s.TotalPrice(ctx, room, checkIn, checkOut)
	if err != nil {
		return res, err
	}

	return dto.QuoteResponse{
		RoomID:       room.ID,
		RoomNumber:   room.RoomNumber,
		CheckInDate:  checkIn.Format(constant.DateOnlyFormat),
		CheckOutDate: checkOut.Format(constant.DateOnlyFormat),
		Nights:       model.Nights(checkIn, checkOut),
		TotalPrice:   total,
	}, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPrice, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete price cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPrice)
		shared.InvalidateCaches(c, s.cache, cachePriceTable)
	}()
}
