// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/storefront/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts onto the /auth subrouter, which the user and order
// handlers share.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/forgot-password", h.ForgotPassword)

	r.With(authenticator).Get("/user-auth", h.Guard)
	r.With(authenticator, adminOnly).Get("/admin-auth", h.Guard)
	r.With(authenticator, adminOnly).Get("/test", h.Test)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.JSON(w, http.StatusOK, core.Envelope(
				false,
				"Already registered, please login",
				nil,
			))
			return
		}
		core.Fail(w, http.StatusInternalServerError, "Error in Registration", err)
		return
	}

	core.Created(w, "User Register Successfully", core.Payload{
		"user": ToRegisteredUserResponse(user),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			core.Fail(w, http.StatusNotFound, "Invalid email or password", nil)
		case errors.Is(err, ErrEmailNotRegistered):
			core.Fail(w, http.StatusNotFound, "Email is not registered", nil)
		case errors.Is(err, ErrInvalidPassword):
			core.JSON(w, http.StatusOK, core.Envelope(false, "Invalid Password", nil))
		default:
			core.Fail(w, http.StatusInternalServerError, "Error in login", err)
		}
		return
	}

	core.OK(w, "Login successfully", core.Payload{
		"user":  ToUserResponse(result.User),
		"token": result.Token,
	})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req); err != nil {
		if errors.Is(err, ErrWrongEmailOrAnswer) {
			core.Fail(w, http.StatusNotFound, "Wrong Email Or Answer", nil)
			return
		}
		core.Fail(w, http.StatusInternalServerError, "Something went wrong", err)
		return
	}

	core.OK(w, "Password Reset Successfully", nil)
}

// Guard answers the SPA's route guards once the middleware chain let the
// request through.
func (h *Handler) Guard(w http.ResponseWriter, _ *http.Request) {
	core.Raw(w, http.StatusOK, core.Payload{"ok": true})
}

func (h *Handler) Test(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response write
	_, _ = w.Write([]byte("Protected Routes"))
}
