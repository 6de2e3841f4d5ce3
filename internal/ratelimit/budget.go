package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// ActivityBudget caps how many pipeline activities (outline planning, slide
// composition, rendering, export, verification) a single tenant can run per
// window. It backstops the token-bucket limiters: those smooth LLM call
// rates, this bounds total generation work per tenant.
type ActivityBudget struct {
	mu     sync.Mutex
	counts map[string]*windowCounter

	maxPerWindow int
	windowSize   time.Duration
	now          func() time.Time
}

type windowCounter struct {
	count     int
	windowEnd time.Time
}

// NewActivityBudget creates a budget limiter. maxPerWindow limits calls per
// (tenantID, activity) pair within windowSize.
func NewActivityBudget(maxPerWindow int, windowSize time.Duration) *ActivityBudget {
	return &ActivityBudget{
		counts:       make(map[string]*windowCounter),
		maxPerWindow: maxPerWindow,
		windowSize:   windowSize,
		now:          time.Now,
	}
}

func budgetKey(tenantID, activity string) string {
	return tenantID + "|" + activity
}

// live returns the active window for the key, or nil when none exists or the
// window has expired. Callers hold b.mu.
func (b *ActivityBudget) live(key string) *windowCounter {
	wc, ok := b.counts[key]
	if !ok || b.now().After(wc.windowEnd) {
		return nil
	}
	return wc
}

// Check returns an error if the tenant has exhausted its budget for the
// activity. Exhaustion is not retryable within the window, so callers should
// fail the activity rather than queue it.
func (b *ActivityBudget) Check(tenantID, activity string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	wc := b.live(budgetKey(tenantID, activity))
	if wc != nil && wc.count >= b.maxPerWindow {
		return fmt.Errorf("activity budget exceeded: tenant %s activity %s (%d/%d in window)",
			tenantID, activity, wc.count, b.maxPerWindow)
	}
	return nil
}

// Record counts one activity call against the tenant, opening a fresh window
// when the previous one has expired.
func (b *ActivityBudget) Record(tenantID, activity string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := budgetKey(tenantID, activity)
	if wc := b.live(key); wc != nil {
		wc.count++
		return
	}
	b.counts[key] = &windowCounter{
		count:     1,
		windowEnd: b.now().Add(b.windowSize),
	}
}
