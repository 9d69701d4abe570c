package router

import (
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/checkin"
	"hotel/internal/handlers/home"
	"hotel/internal/handlers/price"
	"hotel/internal/handlers/report"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/roomtype"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Home     home.Handler
	RoomType roomtype.Handler
	Room     room.Handler
	Price    price.Handler
	Booking  booking.Handler
	CheckIn  checkin.Handler
	Report   report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Home.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Price.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.CheckIn.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
