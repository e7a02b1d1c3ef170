package schema

import (
	"context"

	"github.com/dmitrymomot/schemakit/pkg/async"
)

// Result is the outcome of a successful validator call: either an immediate
// value or a pending one. Failures are reported through the accompanying error
// (synchronous) or through the future (asynchronous).
type Result struct {
	value   any
	pending *async.Future[any]
}

// Resolved wraps an immediate value.
func Resolved(v any) Result {
	return Result{value: v}
}

// Pending wraps a value that is not computed yet.
// A nil future is treated as an immediate nil value.
func Pending(f *async.Future[any]) Result {
	return Result{pending: f}
}

// IsPending reports whether the value is still being computed.
func (r Result) IsPending() bool {
	return r.pending != nil
}

// Value returns the immediate value. It is nil for pending results.
func (r Result) Value() any {
	return r.value
}

// Future returns the result as a future, wrapping immediate values in a completed one.
func (r Result) Future() *async.Future[any] {
	if r.pending != nil {
		return r.pending
	}
	return async.Resolve(r.value)
}

// Await returns the value, waiting for pending results until ctx is done.
func (r Result) Await(ctx context.Context) (any, error) {
	if r.pending == nil {
		return r.value, nil
	}
	return r.pending.AwaitContext(ctx)
}

// then applies fn to the value, immediately or once the pending value resolves.
// This is the one place where the sync/async split is handled.
func (r Result) then(ctx context.Context, fn func(any) (any, error)) (Result, error) {
	if r.pending == nil {
		v, err := fn(r.value)
		if err != nil {
			return Result{}, err
		}
		return Resolved(v), nil
	}
	return Pending(async.Then(ctx, r.pending, fn)), nil
}

// chain runs fn on the value, immediately or once the pending value resolves.
// Unlike then, fn may itself answer with a pending result.
func (r Result) chain(ctx context.Context, fn Func) (Result, error) {
	if r.pending == nil {
		return fn(ctx, r.value)
	}
	return Pending(async.Then(ctx, r.pending, func(v any) (any, error) {
		res, err := fn(ctx, v)
		if err != nil {
			return nil, err
		}
		return res.Await(ctx)
	})), nil
}
