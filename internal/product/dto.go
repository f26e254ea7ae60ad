// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/carterperez-dev/templates/storefront/internal/category"
)

// ProductForm carries the raw multipart fields. Field order decides which
// missing field is reported first.
type ProductForm struct {
	Name        string `label:"Name"        validate:"required,max=200"`
	Description string `label:"Description" validate:"required,max=5000"`
	Price       string `label:"Price"       validate:"required,numeric"`
	Category    string `label:"Category"    validate:"required,mongodb"`
	Quantity    string `label:"Quantity"    validate:"required,numeric"`
	Shipping    string `label:"Shipping"`
}

type FilterRequest struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio"`
}

// ProductResponse never carries photo bytes. Category is either the
// populated document, null when the reference dangles, or the bare id.
type ProductResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    any       `json:"category"`
	Quantity    int       `json:"quantity"`
	Shipping    bool      `json:"shipping"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category.Hex(),
		Quantity:    p.Quantity,
		Shipping:    p.Shipping,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPopulatedResponse(p *Product, c *category.Category) ProductResponse {
	resp := ToProductResponse(p)
	if c == nil {
		resp.Category = nil
	} else {
		resp.Category = c
	}
	return resp
}

func ToProductResponseList(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}
