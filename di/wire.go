//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/internal/worker"
	"hotel/shared/cache"
	gRepo "hotel/shared/repository"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	availabilityService "hotel/internal/domains/availability/service"
	bookingEvent "hotel/internal/domains/booking/event"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	checkInService "hotel/internal/domains/checkin/service"
	maintenanceService "hotel/internal/domains/maintenance/service"
	priceRepository "hotel/internal/domains/price/repository"
	priceService "hotel/internal/domains/price/service"
	reportService "hotel/internal/domains/report/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	roomTypeRepository "hotel/internal/domains/roomtype/repository"
	roomTypeService "hotel/internal/domains/roomtype/service"

	bookingHandler "hotel/internal/handlers/booking"
	checkInHandler "hotel/internal/handlers/checkin"
	homeHandler "hotel/internal/handlers/home"
	priceHandler "hotel/internal/handlers/price"
	reportHandler "hotel/internal/handlers/report"
	roomHandler "hotel/internal/handlers/room"
	roomTypeHandler "hotel/internal/handlers/roomtype"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var repositories = wire.NewSet(
	roomTypeRepository.New,
	roomRepository.New,
	priceRepository.New,
	bookingRepository.New,
)

var domains = wire.NewSet(
	roomTypeService.New,
	roomService.New,
	priceService.New,
	availabilityService.New,
	bookingEvent.NewPublisher,
	bookingService.New,
	checkInService.New,
	reportService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	homeHandler.New,
	roomTypeHandler.New,
	roomHandler.New,
	priceHandler.New,
	bookingHandler.New,
	checkInHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeAvailability() availabilityService.Availability {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		redis.New,
		sharedHelpers,
		roomRepository.New,
		bookingRepository.New,
		availabilityService.New,
	)

	return nil
}

func InitializeMaintenance() maintenanceService.Maintenance {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		redis.New,
		sharedHelpers,
		repositories,
		availabilityService.New,
		maintenanceService.New,
	)

	return nil
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		roomRepository.New,
		bookingRepository.New,
		availabilityService.New,
		worker.New,
	)

	return nil
}
