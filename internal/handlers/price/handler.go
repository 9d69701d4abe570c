package price

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/price/model"
	"hotel/internal/domains/price/model/dto"
	"hotel/internal/domains/price/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamRoomID       = "room_id"
	queryParamCheckInDate  = "check_in_date"
	queryParamCheckOutDate = "check_out_date"
)

const msgNotFound = "price not found"

type Handler struct {
	service service.Price
	otel    otel.Otel
}

func New(service service.Price, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/prices", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePrice)
		routerGroup.Get("/", handler.GetPrices)
		routerGroup.Get("/table", handler.GetPricingTable)
		routerGroup.Get("/quote", handler.QuoteStay)
		routerGroup.Get("/{id}", handler.GetPriceByID)
		routerGroup.Patch("/{id}", handler.UpdatePrice)
		routerGroup.Delete("/{id}", handler.DeletePrice)
	})
}

// CreatePrice sets the nightly rate of a room type on one weekday.
// @Summary Create a weekday price
// @Tags Price
// @Accept json
// @Produce json
// @Param request body dto.CreatePriceRequest true "Create Price Request"
// @Success 201 {object} response.Data[dto.PriceResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/prices [post]
func (handler *Handler) CreatePrice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePrice")
	defer scope.End()

	req := dto.CreatePriceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	price, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create price")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, price)
}

// GetPrices lists weekday prices.
// @Summary Get all weekday prices
// @Tags Price
// @Produce json
// @Param room_type_id query string false "Filter by room type"
// @Param day_of_week query int false "Filter by weekday, Monday is 0"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Data[dto.GetPricesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/prices [get]
func (handler *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPrices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, model.FieldDayOfWeek, model.FieldPrice)
	queryParams.WithDefaultSort(model.TableName+"."+model.FieldDayOfWeek, gDto.SortDirAsc)

	filters := []any{}

	if err := validator.ValidateQueryID(model.FieldRoomTypeID, r.URL.Query().Get(model.FieldRoomTypeID)); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if roomTypeID := r.URL.Query().Get(model.FieldRoomTypeID); roomTypeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomTypeID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomTypeID,
			Table:    model.TableName,
		})
	}

	if day, err := shared.ConvertStringToInt(r.URL.Query().Get(model.FieldDayOfWeek)); err == nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldDayOfWeek,
			Operator: gDto.FilterOperatorEq,
			Value:    day,
			Table:    model.TableName,
		})
	}

	prices, err := handler.service.GetAll(ctx, queryParams, gDto.And(filters...))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get prices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, prices)
}

// GetPricingTable renders every weekday price keyed by room type name and weekday name.
// @Summary Pricing table
// @Tags Price
// @Produce json
// @Success 200 {object} response.Data[dto.PricingTableResponse]
// @Failure 500 {object} response.Error
// @Router /v1/prices/table [get]
func (handler *Handler) GetPricingTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPricingTable")
	defer scope.End()

	table, err := handler.service.Table(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, table)
}

// QuoteStay prices a stay in a room without booking it.
// @Summary Price a stay
// @Tags Price
// @Produce json
// @Param room_id query string true "Room ID"
// @Param check_in_date query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out_date query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.QuoteResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/prices/quote [get]
func (handler *Handler) QuoteStay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".QuoteStay")
	defer scope.End()

	query := r.URL.Query()
	req := dto.QuoteRequest{
		RoomID:       query.Get(queryParamRoomID),
		CheckInDate:  query.Get(queryParamCheckInDate),
		CheckOutDate: query.Get(queryParamCheckOutDate),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate quote query")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote stay")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}

// GetPriceByID retrieves a weekday price by its ID.
// @Summary Get a weekday price
// @Tags Price
// @Produce json
// @Param id path string true "Price ID"
// @Success 200 {object} response.Data[dto.PriceResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/prices/{id} [get]
func (handler *Handler) GetPriceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPriceByID")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	price, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get price by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, price)
}

// UpdatePrice changes a weekday price.
// @Summary Update a weekday price
// @Tags Price
// @Accept json
// @Produce json
// @Param id path string true "Price ID"
// @Param request body dto.UpdatePriceRequest true "Update Price Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/prices/{id} [patch]
func (handler *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePrice")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdatePriceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update price")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Price updated successfully")
}

// DeletePrice removes a weekday price. Stays on that weekday fall back to the room's flat rate.
// @Summary Delete a weekday price
// @Tags Price
// @Produce json
// @Param id path string true "Price ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/prices/{id} [delete]
func (handler *Handler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePrice")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete price")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Price deleted successfully")
}

// pathID reads the {id} path segment. Malformed ids are answered like missing ones.
func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, constant.RequestParamID)

	return id, validator.ValidateID(id, msgNotFound) //nolint:wrapcheck
}
