package schema

import (
	"context"

	"github.com/dmitrymomot/schemakit/pkg/async"
)

var (
	// Boolean accepts bool values.
	Boolean = NewValidator(TypeFunc(TagBoolean))

	// Unknown accepts anything and returns it unchanged.
	Unknown = NewValidator(func(_ context.Context, input any) (Result, error) {
		return Resolved(input), nil
	})
)

// Async adapts a blocking check into a validator that always answers with a
// pending result. fn runs in its own goroutine and receives the caller's context.
// Return a *ValidationError (see ToError) for invalid input.
func Async(fn func(ctx context.Context, input any) (any, error)) Validator {
	return NewValidator(func(ctx context.Context, input any) (Result, error) {
		return Pending(async.Async(ctx, input, fn)), nil
	})
}
