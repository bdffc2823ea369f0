// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/risingherb/herb-api/internal/auth"
	"github.com/risingherb/herb-api/internal/core"
)

type KeyAuthenticator interface {
	AdminLogin(ctx context.Context, key string) (*auth.AuthResponse, error)
}

type LoginRequest struct {
	Key string `json:"key" validate:"required"`
}

type Handler struct {
	auth       KeyAuthenticator
	validator  *validator.Validate
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	redisPing  func(ctx context.Context) error
	dbPing     func(ctx context.Context) error
}

type HandlerConfig struct {
	Auth       KeyAuthenticator
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		auth:       cfg.Auth,
		validator:  core.NewValidator(),
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		redisPing:  cfg.RedisPing,
		dbPing:     cfg.DBPing,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Post("/admin/login", h.Login)

	r.Route("/admin/stats", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.GetSystemStats)
	})
}

// Login exchanges the shared admin key for an admin token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(core.FormatValidationError(err)))
		return
	}

	resp, err := h.auth.AdminLogin(r.Context(), req.Key)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidAdminKey) {
			core.Unauthorized(w, "invalid admin key")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	core.OK(w, SystemStatsResponse{
		Database: ComponentStatus{
			Healthy: ping(ctx, h.dbPing),
			Pool:    h.getDBStats(),
		},
		Redis: ComponentStatus{
			Healthy: ping(ctx, h.redisPing),
			Pool:    h.getRedisStats(),
		},
		Runtime: RuntimeStats{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     memStats.Alloc,
			NumGC:        memStats.NumGC,
		},
	})
}

func ping(ctx context.Context, fn func(context.Context) error) bool {
	if fn == nil {
		return false
	}
	return fn(ctx) == nil
}

func (h *Handler) getDBStats() map[string]int64 {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return map[string]int64{
		"open":       int64(stats.OpenConnections),
		"in_use":     int64(stats.InUse),
		"idle":       int64(stats.Idle),
		"wait_count": stats.WaitCount,
	}
}

func (h *Handler) getRedisStats() map[string]int64 {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return map[string]int64{
		"hits":        int64(stats.Hits),
		"misses":      int64(stats.Misses),
		"timeouts":    int64(stats.Timeouts),
		"total_conns": int64(stats.TotalConns),
		"idle_conns":  int64(stats.IdleConns),
	}
}

type SystemStatsResponse struct {
	Database ComponentStatus `json:"database"`
	Redis    ComponentStatus `json:"redis"`
	Runtime  RuntimeStats    `json:"runtime"`
}

type ComponentStatus struct {
	Healthy bool             `json:"healthy"`
	Pool    map[string]int64 `json:"pool,omitempty"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
