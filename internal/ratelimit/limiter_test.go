package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceLimiter_Wait(t *testing.T) {
	sl := NewServiceLimiter(ServiceRates{LLM: 100, Render: 100, Export: 100})

	// Should not block at high rate.
	err := sl.Wait(context.Background(), ServiceLLM)
	require.NoError(t, err)
}

func TestServiceLimiter_UnknownService(t *testing.T) {
	sl := NewServiceLimiter(DefaultServiceRates())

	// Unknown service should pass through.
	err := sl.Wait(context.Background(), "UnknownService")
	assert.NoError(t, err)
}

func TestServiceLimiter_CancelledContext(t *testing.T) {
	// Create a very restrictive limiter.
	sl := NewServiceLimiter(ServiceRates{LLM: 0.001, Render: 0.001, Export: 0.001})

	// Consume the burst.
	_ = sl.Wait(context.Background(), ServiceLLM)

	// Next call with cancelled context should error.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sl.Wait(ctx, ServiceLLM)
	assert.Error(t, err)
}

func TestBurstFloor(t *testing.T) {
	assert.Equal(t, 1, burst(0.5))
	assert.Equal(t, 1, burst(1))
	assert.Equal(t, 7, burst(7.9))
}
