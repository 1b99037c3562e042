package s2

import (
	"context"
)

// parallel runs fn for every item concurrently, at most maxWorkers at a time,
// and returns the results in input order. The first error cancels the shared
// context and is returned; later errors are dropped.
func parallel[T any, R any](ctx context.Context, items []T, maxWorkers int, fn func(context.Context, T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return []R{}, nil
	}
	if maxWorkers <= 0 || maxWorkers > len(items) {
		maxWorkers = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		index int
		value R
		err   error
	}
	results := make([]R, len(items))
	resultChan := make(chan result, len(items))
	semaphore := make(chan struct{}, maxWorkers)

	for i, item := range items {
		go func(idx int, itm T) {
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				var zero R
				resultChan <- result{index: idx, value: zero, err: ctx.Err()}
				return
			}
			defer func() { <-semaphore }()

			val, err := fn(ctx, itm)
			resultChan <- result{index: idx, value: val, err: err}
		}(i, item)
	}

	var firstError error
	for range len(items) {
		res := <-resultChan
		if res.err != nil && firstError == nil {
			firstError = res.err
			cancel()
		}
		results[res.index] = res.value
	}

	if firstError != nil {
		return nil, firstError
	}
	return results, nil
}
