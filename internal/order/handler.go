// AngelaMos | 2026
// handler.go

package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts onto the shared /auth subrouter.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.With(authenticator).Get("/orders", h.MyOrders)
	r.With(authenticator, adminOnly).Get("/all-orders", h.AllOrders)
	r.With(authenticator, adminOnly).Put("/order-status/{orderId}", h.UpdateStatus)
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ForBuyer(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error While Getting Orders", err)
		return
	}

	core.Raw(w, http.StatusOK, orders)
}

func (h *Handler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.All(r.Context())
	if err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error While Getting Orders", err)
		return
	}

	core.Raw(w, http.StatusOK, orders)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error While Updating Order", err)
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "order")
			return
		}
		core.Fail(w, http.StatusInternalServerError, "Error While Updating Order", err)
		return
	}

	core.Raw(w, http.StatusOK, ToOrderResponse(o))
}
