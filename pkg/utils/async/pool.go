package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of one task run by Map
type Result[R any] struct {
	Value R
	Err   error
}

// Map runs fn for every item with at most limit tasks in flight and returns results in
// item order, regardless of completion order.
//
// Behavior:
//   - limit < 1 is treated as 1, which runs tasks sequentially in item order
//   - A task's error is stored in its own slot and never stops other tasks
//   - A panic in a task is recovered and stored as that task's error with the stack
//   - Map returns only after every task has finished
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if limit < 1 {
		limit = 1
	}

	if limit == 1 {
		for i, item := range items {
			results[i] = run(ctx, item, fn)
		}
		return results
	}

	var eg errgroup.Group
	eg.SetLimit(limit)
	for i, item := range items {
		eg.Go(func() error {
			results[i] = run(ctx, item, fn)
			return nil
		})
	}
	_ = eg.Wait() // tasks never return errors to the group

	return results
}

func run[T, R any](ctx context.Context, item T, fn func(ctx context.Context, item T) (R, error)) (result Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			result = Result[R]{
				Err: goerr.New("panic in async task",
					goerr.V("recover", r),
					goerr.V("stack", string(debug.Stack()))),
			}
		}
	}()

	v, err := fn(ctx, item)
	return Result[R]{Value: v, Err: err}
}
