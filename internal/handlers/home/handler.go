package home

import (
	"net/http"

	"hotel/config"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Response struct {
	Name        string            `json:"name"`
	Environment string            `json:"environment"`
	Links       map[string]string `json:"links"`
}

type Handler struct {
	cfg *config.Config
}

func New(cfg *config.Config) Handler {
	return Handler{cfg: cfg}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.Home)
}

// Home describes the service and links to its main resources.
// @Summary Service index
// @Tags Home
// @Produce json
// @Success 200 {object} response.Data[Response]
// @Router / [get]
func (handler *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, Response{
		Name:        handler.cfg.App.Name,
		Environment: handler.cfg.Server.Env,
		Links: map[string]string{
			"room_types":   "/v1/room-types",
			"rooms":        "/v1/rooms",
			"room_summary": "/v1/rooms/summary",
			"room_status":  "/v1/rooms/status",
			"prices":       "/v1/prices",
			"price_table":  "/v1/prices/table",
			"bookings":     "/v1/bookings",
			"check_in":     "/v1/check-ins/quote",
			"docs":         "/swagger/index.html",
		},
	})
}
