package checkin

import (
	"net/http"

	"hotel/infras/otel"
	bookingDto "hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/checkin/model/dto"
	"hotel/internal/domains/checkin/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.CheckIn
	otel    otel.Otel
}

func New(service service.CheckIn, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/check-ins", func(routerGroup chi.Router) {
		routerGroup.Post("/quote", handler.Quote)
		routerGroup.Post("/{quote_id}/confirm", handler.Confirm)
	})
}

// Quote picks an available room of the requested type and prices the stay.
// The quote is held for a limited time and must be confirmed to take the room.
// @Summary Quote a walk-in stay
// @Tags CheckIn
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Guest and stay"
// @Success 201 {object} response.Data[dto.QuoteResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "No room of that type is available"
// @Failure 500 {object} response.Error
// @Router /v1/check-ins/quote [post]
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote check-in")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, quote)
}

// Confirm turns a held quote into a checked-in booking.
// @Summary Confirm a check-in quote
// @Tags CheckIn
// @Produce json
// @Param quote_id path string true "Quote ID"
// @Success 201 {object} response.Data[bookingDto.BookingResponse]
// @Failure 404 {object} response.Error "Quote not found or expired"
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/check-ins/{quote_id}/confirm [post]
func (handler *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Confirm")
	defer scope.End()

	var booking bookingDto.BookingResponse

	booking, err := handler.service.Confirm(ctx, chi.URLParam(r, constant.RequestParamQuoteID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm check-in")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Guest checked in by " + user)

	response.WithJSON(w, http.StatusCreated, booking)
}
