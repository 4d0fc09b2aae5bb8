package health_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dkarimov/user-account-service/internal/health"
	"github.com/prometheus/client_golang/prometheus"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newChecker(pingErr error) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return health.NewChecker(stubPinger{err: pingErr}, slog.Default(), reg), reg
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, dependency string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != "accounts_health_check_up" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "dependency" && lp.GetValue() == dependency {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("gauge for dependency %q not found", dependency)
	return 0
}

func TestLiveness_IgnoresDependencies(t *testing.T) {
	c, _ := newChecker(errors.New("db down"))

	got := c.Liveness(context.Background())
	if got.Status != health.StatusUp {
		t.Errorf("status = %q, want up", got.Status)
	}
	if len(got.Checks) != 0 {
		t.Errorf("liveness ran checks: %v", got.Checks)
	}
}

func TestReadiness_DatabaseUp(t *testing.T) {
	c, reg := newChecker(nil)

	got := c.Readiness(context.Background())
	if got.Status != health.StatusUp {
		t.Fatalf("status = %q, want up", got.Status)
	}
	if got.Checks["database"].Status != health.StatusUp {
		t.Errorf("database check = %+v, want up", got.Checks["database"])
	}
	if v := gaugeValue(t, reg, "database"); v != 1 {
		t.Errorf("gauge = %f, want 1", v)
	}
}

func TestReadiness_DatabaseDown(t *testing.T) {
	c, reg := newChecker(errors.New("connection refused"))

	got := c.Readiness(context.Background())
	if got.Status != health.StatusDown {
		t.Fatalf("status = %q, want down", got.Status)
	}
	check := got.Checks["database"]
	if check.Status != health.StatusDown || check.Error == "" {
		t.Errorf("database check = %+v, want down with an error message", check)
	}
	if v := gaugeValue(t, reg, "database"); v != 0 {
		t.Errorf("gauge = %f, want 0", v)
	}
}
