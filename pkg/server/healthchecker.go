package server

import (
	"context"
	"log/slog"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// Pinger is anything that can report reachability of a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHealthChecker is healthy while its dependency answers pings.
type PingHealthChecker struct {
	name   string
	pinger Pinger
}

func NewPingHealthChecker(name string, pinger Pinger) *PingHealthChecker {
	return &PingHealthChecker{name: name, pinger: pinger}
}

func (hc *PingHealthChecker) Healthy(ctx context.Context) bool {
	if hc.pinger == nil {
		return false
	}

	if err := hc.pinger.Ping(ctx); err != nil {
		slog.Warn("Health check failed", "dependency", hc.name, "error", err)
		return false
	}

	return true
}

// CompositeHealthChecker is healthy only when every checker is.
type CompositeHealthChecker struct {
	checkers []HealthChecker
}

func NewCompositeHealthChecker(checkers ...HealthChecker) *CompositeHealthChecker {
	return &CompositeHealthChecker{checkers: checkers}
}

func (hc *CompositeHealthChecker) Healthy(ctx context.Context) bool {
	healthy := true
	for _, c := range hc.checkers {
		if !c.Healthy(ctx) {
			healthy = false
		}
	}
	return healthy
}
