// AngelaMos | 2026
// dto.go

package payment

// CartItem is the subset of a cart product the checkout reads.
type CartItem struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name,omitempty"`
	Price float64 `json:"price"`
}

type CheckoutRequest struct {
	Nonce string     `json:"nonce"`
	Cart  []CartItem `json:"cart"`
}

func (r CheckoutRequest) ProductIDs() []string {
	ids := make([]string, 0, len(r.Cart))
	for _, item := range r.Cart {
		ids = append(ids, item.ID)
	}
	return ids
}

type ClientTokenResponse struct {
	ClientToken string `json:"clientToken"`
	Success     bool   `json:"success"`
}
