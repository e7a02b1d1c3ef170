package async

import (
	"context"
	"time"
)

// Future represents the result of an asynchronous computation.
// A Future is completed exactly once; every Await after completion
// returns the same value and error.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever comes first.
// The computation itself keeps running when ctx is cancelled; only the wait is abandoned.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	default:
	}

	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// If the timeout occurs before completion, returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future[U]) complete(res U, err error) {
	f.result = res
	f.err = err
	close(f.done)
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type T, and returns (U, error).
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		// Early exit prevents running work for an already cancelled caller
		select {
		case <-ctx.Done():
			var zero U
			f.complete(zero, ctx.Err())
			return
		default:
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}

// Resolve returns an already completed Future holding v.
func Resolve[U any](v U) *Future[U] {
	f := newFuture[U]()
	f.complete(v, nil)
	return f
}

// Reject returns an already completed Future holding err.
func Reject[U any](err error) *Future[U] {
	f := newFuture[U]()
	var zero U
	f.complete(zero, err)
	return f
}

// Then returns a Future that completes with fn applied to the result of f.
// If f fails, fn is not called and the error is propagated unchanged.
func Then[U any, V any](ctx context.Context, f *Future[U], fn func(U) (V, error)) *Future[V] {
	return Handle(ctx, f, func(res U, err error) (V, error) {
		if err != nil {
			var zero V
			return zero, err
		}
		return fn(res)
	})
}

// Handle returns a Future that completes with fn applied to both the result
// and the error of f, letting the continuation recover from a failure.
func Handle[U any, V any](ctx context.Context, f *Future[U], fn func(U, error) (V, error)) *Future[V] {
	return Async(ctx, f, func(ctx context.Context, f *Future[U]) (V, error) {
		res, err := f.AwaitContext(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil && err == ctxErr {
			var zero V
			return zero, err
		}
		return fn(res, err)
	})
}

// WaitAll waits for the futures in order and returns their results.
// The first error in declaration order is returned, even if a later
// future failed earlier in time.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// WaitAllContext is WaitAll bounded by ctx.
func WaitAllContext[U any](ctx context.Context, futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.AwaitContext(ctx)
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
