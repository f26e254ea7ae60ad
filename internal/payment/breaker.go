// AngelaMos | 2026
// breaker.go

package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/carterperez-dev/templates/storefront/internal/metrics"
)

type BreakerSettings struct {
	Name     string
	Failures uint32
	Timeout  time.Duration
}

type breakerGateway struct {
	next    Gateway
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerGateway trips after Failures consecutive transport failures.
// Declines are answers from a healthy gateway and never count.
func NewBreakerGateway(next Gateway, s BreakerSettings, logger *slog.Logger) Gateway {
	if s.Name == "" {
		s.Name = "braintree"
	}
	if s.Failures == 0 {
		s.Failures = 5
	}

	metrics.GatewayBreakerState.WithLabelValues(s.Name).Set(stateValue(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrSaleDeclined)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.GatewayBreakerState.WithLabelValues(name).Set(stateValue(to))
			logger.Warn("payment gateway breaker changed state",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &breakerGateway{next: next, breaker: cb}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func unavailable(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Join(ErrGatewayUnavailable, err)
	}
	return err
}

func (g *breakerGateway) ClientToken(ctx context.Context) (string, error) {
	v, err := g.breaker.Execute(func() (any, error) {
		return g.next.ClientToken(ctx)
	})
	if err != nil {
		return "", unavailable(err)
	}
	return v.(string), nil
}

func (g *breakerGateway) Sale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	v, err := g.breaker.Execute(func() (any, error) {
		return g.next.Sale(ctx, req)
	})
	if err != nil {
		return nil, unavailable(err)
	}
	return v.(*SaleResult), nil
}
