package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPool_Size(t *testing.T) {
	assert.Equal(t, 4, NewPool(4).Size())
	assert.Equal(t, 1, NewPool(0).Size())
	assert.Equal(t, 1, NewPool(-3).Size())
}

func TestMap_PreservesInputOrder(t *testing.T) {
	pool := NewPool(3)
	n := 20

	results := Map(context.Background(), pool, n, func(ctx context.Context, i int) int {
		// later items finish first
		time.Sleep(time.Duration(n-i) * time.Millisecond)
		return i * i
	})

	assert.Len(t, results, n)
	for i, r := range results {
		assert.Equal(t, i*i, r)
	}
}

func TestMap_BoundsConcurrency(t *testing.T) {
	pool := NewPool(2)
	var running, peak int32

	Map(context.Background(), pool, 10, func(ctx context.Context, i int) struct{} {
		current := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if current <= old || atomic.CompareAndSwapInt32(&peak, old, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return struct{}{}
	})

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestMap_CompletesEveryItemAfterCancel(t *testing.T) {
	pool := NewPool(2)
	ctx, cancel := context.WithCancel(context.Background())
	var calls int32

	results := Map(ctx, pool, 6, func(ctx context.Context, i int) bool {
		if atomic.AddInt32(&calls, 1) == 1 {
			cancel()
		}
		return true
	})

	assert.Equal(t, int32(6), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.True(t, r)
	}
}

func TestMap_Empty(t *testing.T) {
	results := Map(context.Background(), NewPool(2), 0, func(ctx context.Context, i int) string {
		t.Fatal("fn should not be called")
		return ""
	})

	assert.Empty(t, results)
}
