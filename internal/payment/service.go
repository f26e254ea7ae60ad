// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/metrics"
	"github.com/carterperez-dev/templates/storefront/internal/order"
)

const tracerName = "storefront/payment"

var (
	ErrMissingNonce = errors.New("payment nonce is required")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrUnknownItem  = errors.New("cart item is not in the catalog")
	ErrInvalidPrice = errors.New("cart item price is invalid")
)

type OrderPlacer interface {
	Place(
		ctx context.Context,
		buyerID string,
		productIDs []string,
		payment order.Payment,
	) (*order.Order, error)
}

type PriceLookup interface {
	Prices(ctx context.Context, ids []string) (map[string]float64, error)
}

type Options struct {
	// RepriceFromCatalog ignores cart prices and charges catalog prices.
	RepriceFromCatalog bool
}

type Service struct {
	gateway Gateway
	ledger  Ledger
	orders  OrderPlacer
	prices  PriceLookup
	opts    Options
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(
	gateway Gateway,
	ledger Ledger,
	orders OrderPlacer,
	prices PriceLookup,
	opts Options,
	logger *slog.Logger,
) *Service {
	if ledger == nil {
		ledger = NopLedger{}
	}
	return &Service{
		gateway: gateway,
		ledger:  ledger,
		orders:  orders,
		prices:  prices,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Service) ClientToken(ctx context.Context) (string, error) {
	return s.gateway.ClientToken(ctx)
}

// toCents rounds to the nearest cent.
func toCents(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, ErrInvalidPrice
	}
	return int64(math.Round(price * 100)), nil
}

// Total sums the cart in integer cents, using catalog prices when
// repricing is on.
func (s *Service) Total(ctx context.Context, cart []CartItem) (int64, error) {
	if len(cart) == 0 {
		return 0, ErrEmptyCart
	}

	var catalog map[string]float64
	if s.opts.RepriceFromCatalog {
		ids := make([]string, 0, len(cart))
		for _, item := range cart {
			ids = append(ids, item.ID)
		}
		prices, err := s.prices.Prices(ctx, ids)
		if err != nil {
			if errors.Is(err, core.ErrInvalidInput) {
				return 0, fmt.Errorf("%w: %v", ErrUnknownItem, err)
			}
			return 0, fmt.Errorf("load catalog prices: %w", err)
		}
		catalog = prices
	}

	var total int64
	for _, item := range cart {
		price := item.Price
		if catalog != nil {
			known, ok := catalog[item.ID]
			if !ok {
				return 0, fmt.Errorf("%w: %s", ErrUnknownItem, item.ID)
			}
			price = known
		}

		cents, err := toCents(price)
		if err != nil {
			return 0, fmt.Errorf("item %s: %w", item.ID, err)
		}
		total += cents
	}
	return total, nil
}

// Checkout charges the cart and persists an order for the buyer. The sale
// and the order insert are not atomic. A capture whose order cannot be
// stored is recorded as captured_order_failed so it can be reconciled.
func (s *Service) Checkout(
	ctx context.Context,
	buyerID string,
	req CheckoutRequest,
) (*order.Order, error) {
	ctx, span := core.StartSpan(ctx, tracerName, "payment.checkout",
		attribute.Int("cart.items", len(req.Cart)),
	)
	defer span.End()

	if req.Nonce == "" {
		return nil, ErrMissingNonce
	}

	amount, err := s.Total(ctx, req.Cart)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("payment.amount_cents", amount))

	entry := &Entry{BuyerID: buyerID, AmountCents: amount}

	result, err := s.gateway.Sale(ctx, SaleRequest{AmountCents: amount, Nonce: req.Nonce})
	if err != nil {
		entry.Outcome = OutcomeGatewayError
		if errors.Is(err, ErrSaleDeclined) {
			entry.Outcome = OutcomeDeclined
		}
		entry.Error = err.Error()
		s.record(ctx, entry)
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("sale: %w", err)
	}

	entry.TransactionID = result.TransactionID
	core.AddSpanEvent(ctx, "sale.captured",
		attribute.String("transaction.id", result.TransactionID),
	)

	o, err := s.orders.Place(ctx, buyerID, req.ProductIDs(), order.Payment{
		Success:       true,
		TransactionID: result.TransactionID,
		Status:        result.Status,
		Amount:        result.Amount,
		Currency:      result.Currency,
		ProcessedAt:   s.now().UTC(),
	})
	if err != nil {
		entry.Outcome = OutcomeCapturedOrderFailed
		entry.Error = err.Error()
		s.record(ctx, entry)
		s.logger.Error("payment captured but order was not stored",
			"transaction_id", result.TransactionID,
			"buyer_id", buyerID,
			"amount_cents", amount,
			"error", err,
		)
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("place order: %w", err)
	}

	entry.Outcome = OutcomeCaptured
	entry.OrderID = o.ID.Hex()
	s.record(ctx, entry)
	return o, nil
}

// record never fails the checkout. A ledger outage is logged.
func (s *Service) record(ctx context.Context, e *Entry) {
	metrics.RecordPayment(string(e.Outcome), e.AmountCents)

	if err := s.ledger.Record(ctx, e); err != nil {
		s.logger.Error("failed to record payment attempt",
			"outcome", e.Outcome,
			"transaction_id", e.TransactionID,
			"error", err,
		)
	}
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return s.ledger.Recent(ctx, limit)
}
