package services

import (
	"context"
	"log/slog"
	"time"
)

// Pinger is the liveness probe the health service runs against the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService reports service and store health.
type HealthService struct {
	store   Pinger
	logger  *slog.Logger
	started time.Time
	version string
}

// HealthStatus is the health check response payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Store   string `json:"store"`
}

// NewHealthService creates a new health service.
func NewHealthService(store Pinger, version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		store:   store,
		logger:  logger.With(slog.String("component", "health_service")),
		started: time.Now(),
		version: version,
	}
}

// Check returns the current health status. A failing store ping degrades
// the status without failing the endpoint.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:  "ok",
		Version: s.version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Store:   "ok",
	}

	if err := s.store.Ping(ctx); err != nil {
		s.logger.ErrorContext(ctx, "store ping failed", slog.String("error", err.Error()))
		status.Status = "degraded"
		status.Store = "unreachable"
	}

	return status
}
