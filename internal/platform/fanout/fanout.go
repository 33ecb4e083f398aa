// Package fanout runs independent tasks on a bounded worker pool.
package fanout

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
)

const DefaultWorkers = 2

// Run calls fn once per item on at most workers goroutines and waits for all of them.
// The returned slice holds each item's error at the item's index. A panic inside fn is
// recovered and reported as that item's error, so one task can never take down its
// siblings. Items still queued when ctx is done are not started and get ctx.Err().
// The second return value is only set when the pool itself could not be used.
func Run[T any](ctx context.Context, workers int, items []T, fn func(ctx context.Context, item T) error) ([]error, error) {
	errs := make([]error, len(items))
	if len(items) == 0 {
		return errs, nil
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range items {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			if ctxErr := ctx.Err(); ctxErr != nil {
				errs[i] = ctxErr
				return
			}

			var catcher panics.Catcher
			catcher.Try(func() {
				errs[i] = fn(ctx, items[i])
			})
			if recovered := catcher.Recovered(); recovered != nil {
				errs[i] = recovered.AsError()
			}
		}); err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	wg.Wait()
	return errs, nil
}
