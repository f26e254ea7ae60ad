// AngelaMos | 2026
// dto.go

package order

import (
	"time"

	"github.com/carterperez-dev/templates/storefront/internal/product"
)

type StatusRequest struct {
	Status string `json:"status"`
}

type BuyerResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// OrderResponse carries either populated products and buyer or their bare
// ids, depending on how it was built.
type OrderResponse struct {
	ID        string    `json:"_id"`
	Products  any       `json:"products"`
	Payment   Payment   `json:"payment"`
	Buyer     any       `json:"buyer"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToOrderResponse(o *Order) OrderResponse {
	ids := make([]string, 0, len(o.Products))
	for _, id := range o.Products {
		ids = append(ids, id.Hex())
	}

	return OrderResponse{
		ID:        o.ID.Hex(),
		Products:  ids,
		Payment:   o.Payment,
		Buyer:     o.Buyer.Hex(),
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toPopulatedResponse(
	o *Order,
	products []product.ProductResponse,
	buyer *BuyerResponse,
) OrderResponse {
	resp := ToOrderResponse(o)
	resp.Products = products
	if buyer == nil {
		resp.Buyer = nil
	} else {
		resp.Buyer = buyer
	}
	return resp
}
