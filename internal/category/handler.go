// AngelaMos | 2026
// handler.go

package category

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/category", func(r chi.Router) {
		r.Get("/get-category", h.List)
		r.Get("/single-category/{slug}", h.GetBySlug)

		r.Group(func(r chi.Router) {
			r.Use(authenticator, adminOnly)
			r.Post("/create-category", h.Create)
			r.Put("/update-category/{id}", h.Update)
			r.Delete("/delete-category/{id}", h.Delete)
		})
	})
}

// decodeName answers the missing-name case with 401, which the admin
// console expects.
func (h *Handler) decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req CategoryRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return "", false
	}

	if err := h.validator.Struct(req); err != nil {
		core.Unauthorized(w, "Name is required")
		return "", false
	}
	return req.Name, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	name, ok := h.decodeName(w, r)
	if !ok {
		return
	}

	c, err := h.service.Create(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrCategoryExists) {
			core.OK(w, "Category Already Exists", nil)
			return
		}
		core.Fail(w, http.StatusInternalServerError, "Error in Category", err)
		return
	}

	core.Created(w, "New Category Created", core.Payload{"category": c})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	name, ok := h.decodeName(w, r)
	if !ok {
		return
	}

	c, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), name)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "category")
		case errors.Is(err, ErrCategoryExists):
			core.OK(w, "Category Already Exists", nil)
		default:
			core.Fail(w, http.StatusInternalServerError, "Error while updating category", err)
		}
		return
	}

	core.OK(w, "Category Updated Successfully", core.Payload{"category": c})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error while getting all categories", err)
		return
	}

	core.OK(w, "All Categories List", core.Payload{"category": categories})
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "category")
			return
		}
		core.Fail(w, http.StatusInternalServerError, "Error While getting Single Category", err)
		return
	}

	core.OK(w, "Get Single Category Successfully", core.Payload{"category": c})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "category")
			return
		}
		core.Fail(w, http.StatusInternalServerError, "error while deleting category", err)
		return
	}

	core.OK(w, "Category Deleted Successfully", nil)
}
