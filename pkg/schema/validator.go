package schema

import (
	"context"
	"errors"
)

// ErrNilValidator is returned when calling a zero Validator.
var ErrNilValidator = errors.New("schema: validator has no function")

// Func is a validation function. It returns the validated, possibly transformed,
// value or fails with an error, which is a *ValidationError for invalid input.
type Func func(ctx context.Context, input any) (Result, error)

// Caller is implemented by every validator: Validator and the builtin
// validators that embed it.
type Caller interface {
	Call(ctx context.Context, input any) (Result, error)
}

// TransformFunc maps a validated value to a new one, or fails.
type TransformFunc func(value any) (any, error)

// Validator wraps a Func with chain operations. Every chain operation returns
// a new Validator; a Validator never changes after it is built and is safe for
// concurrent use.
type Validator struct {
	fn Func
}

// NewValidator wraps fn.
func NewValidator(fn Func) Validator {
	return Validator{fn: fn}
}

// Func returns the underlying validation function.
func (v Validator) Func() Func {
	return v.fn
}

// Call runs the validator. The result may be pending.
func (v Validator) Call(ctx context.Context, input any) (Result, error) {
	if v.fn == nil {
		return Result{}, ErrNilValidator
	}
	return v.fn(ctx, input)
}

// Validate runs the validator and waits for a pending result.
func (v Validator) Validate(ctx context.Context, input any) (any, error) {
	res, err := v.Call(ctx, input)
	if err != nil {
		return nil, err
	}
	return res.Await(ctx)
}

// Transform returns a validator that runs v and then fn on its value.
// A synchronous result stays synchronous; a pending one yields a pending
// result resolving to fn of the awaited value.
func (v Validator) Transform(fn TransformFunc) Validator {
	return Transform(v, fn, identity)
}

// Equals returns a validator that runs v and then requires its value to equal expected.
func (v Validator) Equals(expected any, errorLike ...ErrorLike) Validator {
	return v.Transform(equalsCheck(expected, firstErrorLike(errorLike)))
}

// Optional returns a validator that accepts nil as is and runs v for anything else.
func (v Validator) Optional() Validator {
	return NewValidator(func(ctx context.Context, input any) (Result, error) {
		if input == nil {
			return Resolved(nil), nil
		}
		return v.Call(ctx, input)
	})
}

// Transform is Validator.Transform with a constructor override: build turns
// the transformed Validator into V. Validators with extra methods use it to
// keep their own type across a chain.
func Transform[V any](v Validator, fn TransformFunc, build func(Validator) V) V {
	return build(NewValidator(func(ctx context.Context, input any) (Result, error) {
		res, err := v.Call(ctx, input)
		if err != nil {
			return Result{}, err
		}
		return res.then(ctx, fn)
	}))
}

func identity(v Validator) Validator {
	return v
}
