// AngelaMos | 2026
// gateway.go

package payment

import (
	"context"
	"errors"
)

var (
	// ErrSaleDeclined means the gateway answered and refused the sale.
	ErrSaleDeclined = errors.New("sale declined")
	// ErrGatewayUnavailable means the sale was never attempted because the
	// breaker is open.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

type Gateway interface {
	ClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, req SaleRequest) (*SaleResult, error)
}

// SaleRequest always asks for settlement on capture.
type SaleRequest struct {
	AmountCents int64
	Nonce       string
}

type SaleResult struct {
	TransactionID string
	Status        string
	Amount        string
	Currency      string
}
