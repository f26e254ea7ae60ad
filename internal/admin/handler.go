// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/order"
)

// HandlerConfig wires the stat sources. Any nil source is omitted from the
// response.
type HandlerConfig struct {
	CollectionCounts func(ctx context.Context) (map[string]int64, error)
	OrderCounts      func(ctx context.Context) (map[order.Status]int64, error)
	RedisStats       func() *redis.PoolStats
	RedisPing        func(ctx context.Context) error
	LedgerStats      func() sql.DBStats
	LedgerPing       func(ctx context.Context) error
	StartedAt        time.Time
}

type Handler struct {
	cfg HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.StartedAt.IsZero() {
		cfg.StartedAt = time.Now()
	}
	return &Handler{cfg: cfg}
}

// RegisterRoutes mounts onto the /admin group, which is already guarded.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.GetSystemStats)
	r.Get("/stats/orders", h.GetOrderStats)
	r.Get("/stats/runtime", h.GetRuntimeStats)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := SystemStatsResponse{
		Runtime: h.runtimeStats(),
	}

	if h.cfg.CollectionCounts != nil {
		counts, err := h.cfg.CollectionCounts(ctx)
		if err != nil {
			core.Fail(w, http.StatusInternalServerError, "Error while counting documents", err)
			return
		}
		response.Collections = counts
	}

	orders, err := h.orderCounts(ctx)
	if err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error while counting orders", err)
		return
	}
	response.Orders = orders

	if h.cfg.RedisStats != nil {
		response.Redis = &RedisStatus{
			Healthy: ping(ctx, h.cfg.RedisPing),
			Stats:   toRedisPoolStats(h.cfg.RedisStats()),
		}
	}

	if h.cfg.LedgerStats != nil {
		response.Ledger = &LedgerStatus{
			Healthy: ping(ctx, h.cfg.LedgerPing),
			Stats:   toDBPoolStats(h.cfg.LedgerStats()),
		}
	}

	core.OK(w, "", core.Payload{"stats": response})
}

func (h *Handler) GetOrderStats(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderCounts(r.Context())
	if err != nil {
		core.Fail(w, http.StatusInternalServerError, "Error while counting orders", err)
		return
	}

	core.OK(w, "", core.Payload{"orders": orders})
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, "", core.Payload{"runtime": h.runtimeStats()})
}

// orderCounts reports every known status, zero when no order has it, plus
// any free-form status that was written.
func (h *Handler) orderCounts(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, s := range order.KnownStatuses() {
		out[string(s)] = 0
	}

	if h.cfg.OrderCounts == nil {
		return out, nil
	}

	counts, err := h.cfg.OrderCounts(ctx)
	if err != nil {
		return nil, err
	}
	for status, n := range counts {
		out[string(status)] = n
	}
	return out, nil
}

func (h *Handler) runtimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
		Uptime:       time.Since(h.cfg.StartedAt).Round(time.Second).String(),
	}
}

func ping(ctx context.Context, fn func(context.Context) error) bool {
	if fn == nil {
		return true
	}
	return fn(ctx) == nil
}

func toDBPoolStats(stats sql.DBStats) *DBPoolStats {
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func toRedisPoolStats(stats *redis.PoolStats) *RedisPoolStats {
	if stats == nil {
		return nil
	}
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

type SystemStatsResponse struct {
	Collections map[string]int64 `json:"collections,omitempty"`
	Orders      map[string]int64 `json:"orders"`
	Redis       *RedisStatus     `json:"redis,omitempty"`
	Ledger      *LedgerStatus    `json:"ledger,omitempty"`
	Runtime     RuntimeStats     `json:"runtime"`
}

type LedgerStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
	Uptime       string `json:"uptime"`
}
