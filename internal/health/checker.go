// Package health reports dependency reachability for the readiness probe.
package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusUp   = "up"
	StatusDown = "down"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool and the sqlite store wrapper.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

type Checker struct {
	db     Pinger
	logger *slog.Logger
	gauge  *prometheus.GaugeVec
}

func NewChecker(db Pinger, logger *slog.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "accounts",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		db:     db,
		logger: logger.With("component", "health"),
		gauge:  gauge,
	}
}

// Liveness reports the process itself; no dependencies are touched.
func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: StatusUp}
}

// Readiness pings the store and reports per-dependency status. Overall
// status is down if any dependency is.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	result := HealthResult{
		Status: StatusUp,
		Checks: map[string]CheckResult{},
	}

	check := c.ping(ctx, "database", c.db)
	result.Checks["database"] = check
	if check.Status != StatusUp {
		result.Status = StatusDown
	}
	return result
}

func (c *Checker) ping(ctx context.Context, name string, dep Pinger) CheckResult {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := dep.Ping(pingCtx); err != nil {
		c.logger.Warn("dependency unreachable", "dependency", name, "error", err)
		c.gauge.WithLabelValues(name).Set(0)
		return CheckResult{Status: StatusDown, Error: err.Error()}
	}

	c.gauge.WithLabelValues(name).Set(1)
	return CheckResult{Status: StatusUp}
}
