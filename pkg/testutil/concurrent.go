package testutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"recom/internal/sentinel"
)

// ConcurrentResult counts how a batch of concurrent store calls ended.
type ConcurrentResult struct {
	Successes int32
	NotFounds int32
	Errors    int32
}

func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.NotFounds + r.Errors
}

// RunConcurrentCtx starts n goroutines, releases them together so their calls
// overlap as much as possible, and classifies each returned error:
// nil, sentinel.ErrNotFound, or anything else.
func RunConcurrentCtx(ctx context.Context, n int, fn func(ctx context.Context, idx int) error) *ConcurrentResult {
	var successes, notFounds, failures atomic.Int32
	var ready, done sync.WaitGroup
	start := make(chan struct{})

	ready.Add(n)
	done.Add(n)
	for i := range n {
		go func() {
			defer done.Done()
			ready.Done()
			<-start

			switch err := fn(ctx, i); {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrNotFound):
				notFounds.Add(1)
			default:
				failures.Add(1)
			}
		}()
	}
	ready.Wait()
	close(start)
	done.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		NotFounds: notFounds.Load(),
		Errors:    failures.Load(),
	}
}
