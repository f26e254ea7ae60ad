// AngelaMos | 2026
// handler.go

package payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/middleware"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 200
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts onto the shared /product subrouter.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/braintree/token", h.Token)
	r.With(authenticator).Post("/braintree/payment", h.Pay)
}

// RegisterAdminRoutes mounts onto the admin group, which is already guarded.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/payments", h.Recent)
}

func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	token, err := h.service.ClientToken(r.Context())
	if err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error while generating payment token", err)
		return
	}

	core.Raw(w, http.StatusOK, ClientTokenResponse{ClientToken: token, Success: true})
}

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Fail(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	_, err := h.service.Checkout(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingNonce):
			core.BadRequest(w, "Payment nonce is required")
		case errors.Is(err, ErrEmptyCart):
			core.BadRequest(w, "Cart is empty")
		case errors.Is(err, ErrUnknownItem), errors.Is(err, ErrInvalidPrice):
			core.Fail(w, http.StatusBadRequest, "Cart contains an invalid item", err)
		case errors.Is(err, ErrGatewayUnavailable), errors.Is(err, core.ErrUpstream):
			core.Fail(w, http.StatusInternalServerError, "Payment gateway unavailable", err)
		default:
			core.Fail(w, http.StatusInternalServerError, "Payment failed", err)
		}
		return
	}

	core.Raw(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			core.BadRequest(w, "limit must be a positive number")
			return
		}
		limit = min(n, maxRecentLimit)
	}

	entries, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error while listing payments", err)
		return
	}

	core.OK(w, "", core.Payload{"payments": entries, "count": len(entries)})
}
