// AngelaMos | 2026
// metrics.go

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_payments_total",
			Help: "Payment attempts by outcome",
		},
		[]string{"outcome"},
	)

	PaymentAmountCents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_payment_captured_cents_total",
			Help: "Sum of successfully captured sale amounts in cents",
		},
	)

	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Orders persisted after a successful sale",
		},
	)

	OrderStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_status_updates_total",
			Help: "Order status overwrites by target status",
		},
		[]string{"status"},
	)

	// GatewayBreakerState is 0 closed, 1 half-open, 2 open.
	GatewayBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_gateway_breaker_state",
			Help: "Circuit breaker state of the payment gateway",
		},
		[]string{"name"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_rate_limited_total",
			Help: "Requests rejected with 429 by limiter bucket",
		},
		[]string{"bucket"},
	)

	RateLimitFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_rate_limit_fallbacks_total",
			Help: "Limiter decisions made in-process because redis was unreachable",
		},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_attempts_total",
			Help: "Login and registration attempts by operation and result",
		},
		[]string{"operation", "result"},
	)
)

func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

func RecordPayment(outcome string, amountCents int64) {
	PaymentsTotal.WithLabelValues(outcome).Inc()
	if outcome == "captured" && amountCents > 0 {
		PaymentAmountCents.Add(float64(amountCents))
	}
}

func RecordAuthAttempt(operation, result string) {
	AuthAttempts.WithLabelValues(operation, result).Inc()
}
