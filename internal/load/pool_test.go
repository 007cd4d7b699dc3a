package load

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AllSucceed(t *testing.T) {
	var calls atomic.Int32

	result := Run(context.Background(), Options{Requests: 5, Workers: 2}, func(ctx context.Context, i int) error {
		calls.Add(1)
		return nil
	})

	assert.Equal(t, int32(5), calls.Load())
	assert.Equal(t, 5, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.NoError(t, result.Err())
}

func TestRun_CollectsFailuresWithoutStopping(t *testing.T) {
	boom := errors.New("request context is not thread-safe")

	result := Run(context.Background(), Options{Requests: 6}, func(ctx context.Context, i int) error {
		if i%2 == 0 {
			return boom
		}
		return nil
	})

	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)
	assert.ErrorIs(t, result.Err(), boom)
	for _, e := range result.Errors {
		assert.Equal(t, 0, e.Index%2)
	}
}

func TestRun_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32

	Run(context.Background(), Options{Requests: 20, Workers: 3}, func(ctx context.Context, i int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})

	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRun_RecoversPanics(t *testing.T) {
	result := Run(context.Background(), Options{Requests: 2}, func(ctx context.Context, i int) error {
		if i == 1 {
			panic("driver crashed")
		}
		return nil
	})

	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "driver crashed")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Run(ctx, Options{Requests: 4, Workers: 1}, func(ctx context.Context, i int) error {
		return nil
	})

	assert.Equal(t, 4, result.Failed)
	assert.ErrorIs(t, result.Err(), context.Canceled)
}

func TestRun_ZeroRequests(t *testing.T) {
	result := Run(context.Background(), Options{}, func(ctx context.Context, i int) error {
		t.Fatal("no task should run")
		return nil
	})

	assert.Equal(t, 0, result.Succeeded+result.Failed)
}
