// AngelaMos | 2026
// handler.go

package product

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts onto the /product subrouter, which the checkout
// handler shares.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Get("/get-product", h.Latest)
	r.Get("/get-product/{slug}", h.GetBySlug)
	r.Get("/product-photo/{pid}", h.Photo)
	r.Post("/product-filters", h.Filter)
	r.Get("/product-count", h.Count)
	r.Get("/product-list/{page}", h.Page)
	r.Get("/search/{keyword}", h.Search)
	r.Get("/related-product/{pid}/{cid}", h.Related)
	r.Get("/product-category/{slug}", h.ByCategory)

	r.Group(func(r chi.Router) {
		r.Use(authenticator, adminOnly)
		r.Post("/create-product", h.Create)
		r.Put("/update-product/{pid}", h.Update)
		r.Delete("/delete-product/{pid}", h.Delete)
	})
}

func writeFormError(w http.ResponseWriter, err error) {
	if appErr, ok := core.AsAppError(err); ok {
		core.Fail(w, appErr.StatusCode, appErr.Message, nil)
		return
	}
	core.InternalServerError(w, err)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := parseProductForm(r, h.validator)
	if err != nil {
		writeFormError(w, err)
		return
	}

	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error in creating product", err)
		return
	}

	core.Created(w, "Product Created Successfully", core.Payload{
		"products": ToProductResponse(p),
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := parseProductForm(r, h.validator)
	if err != nil {
		writeFormError(w, err)
		return
	}

	p, err := h.service.Update(r.Context(), chi.URLParam(r, "pid"), in)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.Fail(w, http.StatusInternalServerError, "Error in updating product", err)
		return
	}

	core.Created(w, "Product Updated Successfully", core.Payload{
		"products": ToProductResponse(p),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "pid")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.Fail(w, http.StatusInternalServerError, "Error while deleting product", err)
		return
	}

	core.OK(w, "Product Deleted Successfully", nil)
}

func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Latest(r.Context())
	if err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error in getting products", err)
		return
	}

	core.OK(w, "All Products", core.Payload{
		"countTotal": len(products),
		"products":   products,
	})
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.Fail(w, http.StatusInternalServerError, "Error while getting single product", err)
		return
	}

	core.OK(w, "Single Product Fetched", core.Payload{"product": p})
}

// Photo writes the stored bytes. A product without a photo gets 204.
func (h *Handler) Photo(w http.ResponseWriter, r *http.Request) {
	photo, err := h.service.Photo(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.Fail(w, http.StatusInternalServerError, "Error while getting photo", err)
		return
	}

	if photo == nil {
		core.NoContent(w)
		return
	}

	w.Header().Set("Content-Type", photo.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(photo.Data)))
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response write
	_, _ = w.Write(photo.Data)
}

func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Fail(w, http.StatusBadRequest, "Error While Filtering Products", err)
		return
	}

	products, err := h.service.Filter(r.Context(), req)
	if err != nil {
		core.Fail(w, http.StatusBadRequest, "Error While Filtering Products", err)
		return
	}

	core.OK(w, "", core.Payload{"products": products})
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.Count(r.Context())
	if err != nil {
		core.Fail(w, http.StatusBadRequest, "Error in product count", err)
		return
	}

	core.OK(w, "", core.Payload{"total": total})
}

// Page treats a missing or malformed page number as the first page.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		page = 1
	}

	products, err := h.service.Page(r.Context(), page)
	if err != nil {
		core.Fail(w, http.StatusBadRequest, "Error in per page listing", err)
		return
	}

	core.OK(w, "", core.Payload{"products": products})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), chi.URLParam(r, "keyword"))
	if err != nil {
		core.Fail(w, http.StatusBadRequest, "Error In Search Product API", err)
		return
	}

	core.Raw(w, http.StatusOK, products)
}

func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Related(
		r.Context(),
		chi.URLParam(r, "pid"),
		chi.URLParam(r, "cid"),
	)
	if err != nil {
		core.Fail(w, http.StatusBadRequest, "Error while getting related product", err)
		return
	}

	core.OK(w, "", core.Payload{"products": products})
}

func (h *Handler) ByCategory(w http.ResponseWriter, r *http.Request) {
	c, products, err := h.service.ByCategorySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		core.Fail(w, http.StatusBadRequest, "Error While Getting products", err)
		return
	}

	core.OK(w, "", core.Payload{
		"category": c,
		"products": products,
	})
}
