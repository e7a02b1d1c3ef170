package schema

import (
	"context"
	"fmt"
)

// ArrayValidator validates slices and arrays.
type ArrayValidator struct {
	Validator
}

// Array returns a validator accepting any slice or array.
func Array(errorLike ...ErrorLike) ArrayValidator {
	e := orDefault(firstErrorLike(errorLike), "Expect value to be \"array\"")
	return ArrayValidator{NewValidator(syncFunc(func(input any) (any, error) {
		if _, ok := asList(input); !ok {
			return nil, ToError(e, input)
		}
		return input, nil
	}))}
}

func newArray(v Validator) ArrayValidator {
	return ArrayValidator{v}
}

// Of validates every item against descriptor and returns the validated items as []any.
// Item failures are aggregated with the item index as path.
func (a ArrayValidator) Of(descriptor any, errorLike ...ErrorLike) ArrayValidator {
	item := mustCompile(descriptor)
	e := firstErrorLike(errorLike)

	items := func(ctx context.Context, value any) (Result, error) {
		l, _ := asList(value)
		entries := make([]entry, len(l))
		for i, v := range l {
			res, err := item(ctx, v)
			entries[i] = entry{key: i, present: true, res: res, err: err}
		}
		return settle(ctx, entries, nil, e, value, func(entries []entry) any {
			out := make([]any, len(entries))
			for i, en := range entries {
				out[i] = en.res.Value()
			}
			return out
		})
	}

	return newArray(NewValidator(func(ctx context.Context, input any) (Result, error) {
		res, err := a.Call(ctx, input)
		if err != nil {
			return Result{}, err
		}
		return res.chain(ctx, items)
	}))
}

// Min requires at least n items.
func (a ArrayValidator) Min(n int, errorLike ...ErrorLike) ArrayValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect array to have minimum of %d items", n))
	return a.length(func(l int) bool { return l >= n }, e)
}

// Max allows at most n items.
func (a ArrayValidator) Max(n int, errorLike ...ErrorLike) ArrayValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect array to have maximum of %d items", n))
	return a.length(func(l int) bool { return l <= n }, e)
}

func (a ArrayValidator) length(ok func(int) bool, e ErrorLike) ArrayValidator {
	return Transform(a.Validator, func(value any) (any, error) {
		l, _ := asList(value)
		if !ok(len(l)) {
			return nil, ToError(e, value)
		}
		return value, nil
	}, newArray)
}
