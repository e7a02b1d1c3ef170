package schema

import (
	"context"

	"github.com/dmitrymomot/schemakit/pkg/async"
)

// Either returns a validator that succeeds with the first candidate that accepts
// the input. Candidates are tried in declared order, also when some of them are
// asynchronous: a later candidate only runs once every earlier one has failed.
//
// When all candidates fail, the error is an aggregated *ValidationError with one
// PathError per candidate (with an empty path), summarized by the first one.
// A candidate failing with a setup error such as ErrTypeMismatch stops the
// search and that error is returned unchanged.
//
// Candidates are schema descriptors, compiled with New.
func Either(candidates ...any) Validator {
	fns := compileAll(candidates)

	return NewValidator(func(ctx context.Context, input any) (Result, error) {
		errs := make([]PathError, 0, len(fns))

		for i, fn := range fns {
			res, err := fn(ctx, input)
			if err != nil {
				if isSetupError(err) {
					return Result{}, err
				}
				errs = append(errs, PathError{Err: err})
				continue
			}
			if !res.IsPending() {
				return res, nil
			}

			return Pending(async.Async(ctx, res, func(ctx context.Context, res Result) (any, error) {
				return eitherPending(ctx, fns[i+1:], res, input, errs)
			})), nil
		}

		return Result{}, CreateValidationError(errs, nil, input)
	})
}

// eitherPending settles a pending candidate and, if it failed, keeps trying
// the remaining candidates in order.
func eitherPending(ctx context.Context, rest []Func, res Result, input any, errs []PathError) (any, error) {
	v, err := res.Await(ctx)
	if err == nil {
		return v, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if isSetupError(err) {
		return nil, err
	}
	errs = append(errs, PathError{Err: err})

	for _, fn := range rest {
		res, err := fn(ctx, input)
		if err == nil {
			v, err = res.Await(ctx)
			if err == nil {
				return v, nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
		}
		if isSetupError(err) {
			return nil, err
		}
		errs = append(errs, PathError{Err: err})
	}

	return nil, CreateValidationError(errs, nil, input)
}

// Merge returns a validator that requires every argument to accept the input
// and combines their values with DeepConcat, so merging a {a} validator with a
// {b} validator yields one requiring and returning {a, b}.
//
// All branches see the same input. A synchronous failure is returned at once,
// without running later branches. Pending branches are awaited in declared
// order and the first failure in that order wins. Outputs that cannot be
// combined fail with ErrTypeMismatch, which is not a *ValidationError.
//
// Any number of arguments is accepted; with none the validator returns nil.
func Merge(args ...any) Validator {
	fns := compileAll(args)

	return NewValidator(func(ctx context.Context, input any) (Result, error) {
		results := make([]Result, len(fns))
		pending := false

		for i, fn := range fns {
			res, err := fn(ctx, input)
			if err != nil {
				return Result{}, err
			}
			results[i] = res
			pending = pending || res.IsPending()
		}

		if !pending {
			values := make([]any, len(results))
			for i, res := range results {
				values[i] = res.Value()
			}
			v, err := DeepConcat(values...)
			if err != nil {
				return Result{}, err
			}
			return Resolved(v), nil
		}

		futures := make([]*async.Future[any], len(results))
		for i, res := range results {
			futures[i] = res.Future()
		}

		return Pending(async.Async(ctx, futures, func(ctx context.Context, futures []*async.Future[any]) (any, error) {
			values, err := async.WaitAllContext(ctx, futures...)
			if err != nil {
				return nil, err
			}
			return DeepConcat(values...)
		})), nil
	})
}

// Enum returns a validator accepting only the descriptor's values. See EnumValue.
func Enum(descriptor any, errorLike ...ErrorLike) Validator {
	return NewValidator(EnumValue(descriptor, errorLike...))
}

func compileAll(descriptors []any) []Func {
	fns := make([]Func, len(descriptors))
	for i, d := range descriptors {
		fns[i] = mustCompile(d)
	}
	return fns
}
