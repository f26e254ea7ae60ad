// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/metrics"
	"github.com/carterperez-dev/templates/storefront/internal/product"
)

type ProductLookup interface {
	Summaries(
		ctx context.Context,
		ids []primitive.ObjectID,
	) (map[primitive.ObjectID]product.ProductResponse, error)
}

type BuyerLookup interface {
	Names(
		ctx context.Context,
		ids []primitive.ObjectID,
	) (map[primitive.ObjectID]string, error)
}

type Service struct {
	repo     Repository
	products ProductLookup
	buyers   BuyerLookup
}

func NewService(repo Repository, products ProductLookup, buyers BuyerLookup) *Service {
	return &Service{repo: repo, products: products, buyers: buyers}
}

// Place persists an order for a captured payment.
func (s *Service) Place(
	ctx context.Context,
	buyerID string,
	productIDs []string,
	payment Payment,
) (*Order, error) {
	buyer, err := core.ParseObjectID(buyerID)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", core.ErrUnauthorized)
	}

	products, err := core.ParseObjectIDs(productIDs)
	if err != nil {
		return nil, err
	}

	o := &Order{
		Products: products,
		Payment:  payment,
		Buyer:    buyer,
		Status:   StatusNotProcess,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	return o, nil
}

func (s *Service) ForBuyer(ctx context.Context, userID string) ([]OrderResponse, error) {
	buyer, err := core.ParseObjectID(userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", core.ErrUnauthorized)
	}

	orders, err := s.repo.ListByBuyer(ctx, buyer)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, orders)
}

func (s *Service) All(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, orders)
}

// UpdateStatus stores status as given. Unknown values are not rejected.
func (s *Service) UpdateStatus(
	ctx context.Context,
	orderID, status string,
) (*Order, error) {
	id, err := core.ParseObjectID(orderID)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.UpdateStatus(ctx, id, Status(status))
	if err != nil {
		return nil, err
	}

	label := status
	if !IsKnownStatus(status) {
		label = "other"
	}
	metrics.OrderStatusUpdates.WithLabelValues(label).Inc()
	return o, nil
}

func (s *Service) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	return s.repo.CountByStatus(ctx)
}

// populate resolves product and buyer references with one batched lookup
// each. Products that no longer exist are dropped from the list.
func (s *Service) populate(
	ctx context.Context,
	orders []Order,
) ([]OrderResponse, error) {
	var productIDs, buyerIDs []primitive.ObjectID
	seenProducts := map[primitive.ObjectID]struct{}{}
	seenBuyers := map[primitive.ObjectID]struct{}{}

	for _, o := range orders {
		for _, pid := range o.Products {
			if _, ok := seenProducts[pid]; !ok {
				seenProducts[pid] = struct{}{}
				productIDs = append(productIDs, pid)
			}
		}
		if _, ok := seenBuyers[o.Buyer]; !ok {
			seenBuyers[o.Buyer] = struct{}{}
			buyerIDs = append(buyerIDs, o.Buyer)
		}
	}

	products, err := s.products.Summaries(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("populate products: %w", err)
	}
	names, err := s.buyers.Names(ctx, buyerIDs)
	if err != nil {
		return nil, fmt.Errorf("populate buyers: %w", err)
	}

	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]

		items := make([]product.ProductResponse, 0, len(o.Products))
		for _, pid := range o.Products {
			if p, ok := products[pid]; ok {
				items = append(items, p)
			}
		}

		var buyer *BuyerResponse
		if name, ok := names[o.Buyer]; ok {
			buyer = &BuyerResponse{ID: o.Buyer.Hex(), Name: name}
		}

		out = append(out, toPopulatedResponse(o, items, buyer))
	}
	return out, nil
}
