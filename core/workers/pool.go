// ABOUTME: Fixed-size worker pool for the analysis phase
// ABOUTME: Maps a function over indexed items in parallel and returns results in input order

package workers

import (
	"context"
	"sync"
)

// DefaultSize is the pool size used when none is configured
const DefaultSize = 2

// Pool is a fixed number of workers. Its size never changes after construction.
type Pool struct {
	size int
}

// NewPool creates a pool. size <= 0 yields a single worker.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{size: size}
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return p.size
}

// worker drains the index queue, writing each result to its own slot
type worker[T any] struct {
	id      int
	jobs    <-chan int
	results []T
	fn      func(ctx context.Context, i int) T
	wg      *sync.WaitGroup
}

func (w *worker[T]) run(ctx context.Context) {
	defer w.wg.Done()
	for i := range w.jobs {
		w.results[i] = w.fn(ctx, i)
	}
}

// Map calls fn for every index in 0..n-1 on the pool's workers and blocks
// until all of them have returned. results[i] always holds fn(ctx, i),
// whatever the completion order. Items are not cancelled once dispatched;
// fn decides what to do with ctx.
func Map[T any](ctx context.Context, p *Pool, n int, fn func(ctx context.Context, i int) T) []T {
	results := make([]T, n)
	if n == 0 {
		return results
	}

	workers := p.size
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for id := 0; id < workers; id++ {
		w := &worker[T]{id: id, jobs: jobs, results: results, fn: fn, wg: &wg}
		wg.Add(1)
		go w.run(ctx)
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
