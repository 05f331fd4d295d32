package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/segyhp/landsale-engine/pkg/response"
)

// Pinger is satisfied by *sqlx.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger wraps a go-redis client ping
type RedisPinger func(ctx context.Context) error

type HealthHandler struct {
	db      Pinger
	redis   RedisPinger
	timeout time.Duration
}

func NewHealthHandler(db Pinger, redis RedisPinger, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redis,
		timeout: timeout,
	}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health performs a basic liveness check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	response.Success(w, status)
}

// Ready checks database and redis connectivity
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	check := func(name string, ping func(context.Context) error) {
		if ping == nil {
			status.Checks[name] = "skipped"
			return
		}
		if err := ping(ctx); err != nil {
			status.Status = "error"
			status.Checks[name] = "failed: " + err.Error()
			return
		}
		status.Checks[name] = "ok"
	}

	var dbPing func(context.Context) error
	if h.db != nil {
		dbPing = h.db.PingContext
	}
	check("database", dbPing)
	check("redis", h.redis)

	if status.Status == "error" {
		response.JSON(w, http.StatusServiceUnavailable, status)
		return
	}

	response.Success(w, status)
}
