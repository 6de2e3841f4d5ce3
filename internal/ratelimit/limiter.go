// Package ratelimit provides token-bucket rate limiters and per-tenant
// generation budgets for upstream providers.
package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// Upstream service names used as limiter keys.
const (
	ServiceLLM    = "LLM"
	ServiceRender = "Render"
	ServiceExport = "Export"
)

// ServiceRates configures per-service request rates (requests per second).
type ServiceRates struct {
	LLM    float64
	Render float64
	Export float64
}

// DefaultServiceRates returns conservative provider rate limits.
func DefaultServiceRates() ServiceRates {
	return ServiceRates{
		LLM:    2,
		Render: 10,
		Export: 5,
	}
}

// ServiceLimiter rate-limits upstream calls per service using token buckets.
type ServiceLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
}

// NewServiceLimiter creates a limiter with the given per-service rates.
func NewServiceLimiter(rates ServiceRates) *ServiceLimiter {
	limiters := map[string]*rate.Limiter{
		ServiceLLM:    rate.NewLimiter(rate.Limit(rates.LLM), burst(rates.LLM)),
		ServiceRender: rate.NewLimiter(rate.Limit(rates.Render), burst(rates.Render)),
		ServiceExport: rate.NewLimiter(rate.Limit(rates.Export), burst(rates.Export)),
	}
	return &ServiceLimiter{limiters: limiters}
}

// burst sizes the bucket; sub-1 rates still get a single-token burst.
func burst(r float64) int {
	if r < 1 {
		return 1
	}
	return int(r)
}

// Wait blocks until a token is available for the named service, or ctx is cancelled.
func (sl *ServiceLimiter) Wait(ctx context.Context, service string) error {
	sl.mu.RLock()
	limiter, ok := sl.limiters[service]
	sl.mu.RUnlock()
	if !ok {
		return nil // unknown service = no limit
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", service, err)
	}
	return nil
}
