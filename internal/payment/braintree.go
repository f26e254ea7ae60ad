// AngelaMos | 2026
// braintree.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/braintree-go/braintree-go"

	"github.com/carterperez-dev/templates/storefront/internal/config"
	"github.com/carterperez-dev/templates/storefront/internal/core"
)

type braintreeGateway struct {
	bt      *braintree.Braintree
	timeout time.Duration
}

func NewBraintreeGateway(cfg config.PaymentConfig) (Gateway, error) {
	env, err := braintreeEnvironment(cfg.Environment)
	if err != nil {
		return nil, err
	}

	return &braintreeGateway{
		bt:      braintree.New(env, cfg.MerchantID, cfg.PublicKey, cfg.PrivateKey),
		timeout: cfg.RequestTimeout,
	}, nil
}

func braintreeEnvironment(name string) (braintree.Environment, error) {
	switch name {
	case "production":
		return braintree.Production, nil
	case "sandbox", "":
		return braintree.Sandbox, nil
	case "development":
		return braintree.Development, nil
	default:
		return braintree.Environment{}, fmt.Errorf("unknown braintree environment %q", name)
	}
}

func (g *braintreeGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *braintreeGateway) ClientToken(ctx context.Context) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	token, err := g.bt.ClientToken().Generate(ctx)
	if err != nil {
		return "", core.UpstreamError("generate client token", err)
	}
	return token, nil
}

// Sale treats any error returned alongside a gateway response as a decline.
// Transport failures come back without one.
func (g *braintreeGateway) Sale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(req.AmountCents, 2),
		PaymentMethodNonce: req.Nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		var btErr *braintree.BraintreeError
		if errors.As(err, &btErr) {
			return nil, fmt.Errorf("%w: %v", ErrSaleDeclined, err)
		}
		return nil, core.UpstreamError("create sale", err)
	}

	result := &SaleResult{
		TransactionID: tx.Id,
		Status:        string(tx.Status),
		Currency:      tx.CurrencyISOCode,
	}
	if tx.Amount != nil {
		result.Amount = tx.Amount.String()
	}
	return result, nil
}
