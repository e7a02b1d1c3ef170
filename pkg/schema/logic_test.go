package schema_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// counting wraps v and counts how many times it runs.
func counting(v schema.Validator, n *atomic.Int32) schema.Validator {
	return schema.NewValidator(func(ctx context.Context, input any) (schema.Result, error) {
		n.Add(1)
		return v.Call(ctx, input)
	})
}

// conflict returns a validator whose merged branches disagree on the output.
func conflict() schema.Validator {
	return schema.Merge(
		func(any) (any, error) { return 1, nil },
		func(any) (any, error) { return 2, nil },
	)
}

// slowConflict is conflict with an asynchronous first branch.
func slowConflict() schema.Validator {
	return schema.Merge(
		delayed(time.Millisecond, func(any) (any, error) { return 1, nil }),
		func(any) (any, error) { return 2, nil },
	)
}

func fail(msg string) schema.Validator {
	return schema.NewValidator(func(context.Context, any) (schema.Result, error) {
		return schema.Result{}, schema.NewValidationError(msg)
	})
}

func TestEither(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("first success wins", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		v := schema.Either(schema.Number(), counting(schema.Unknown, &calls))

		got, err := v.Validate(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, got)
		assert.Zero(t, calls.Load())
	})

	t.Run("falls through to later candidates", func(t *testing.T) {
		t.Parallel()
		v := schema.Either(schema.Number(), schema.String().ToUpperCase())

		got, err := v.Validate(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "ABC", got)
	})

	t.Run("descriptors are compiled", func(t *testing.T) {
		t.Parallel()
		v := schema.Either("on", "off", nil)

		for _, in := range []any{"on", "off", nil} {
			_, err := v.Validate(ctx, in)
			assert.NoError(t, err)
		}
		_, err := v.Validate(ctx, "maybe")
		assert.Error(t, err)
	})

	t.Run("aggregates every failure", func(t *testing.T) {
		t.Parallel()
		v := schema.Either(fail("first"), fail("second"))

		_, err := v.Validate(ctx, 1)
		verr, ok := schema.AsValidationError(err)
		require.True(t, ok)

		assert.Equal(t, "first", verr.Message)
		require.Len(t, verr.Errors, 2)
		assert.Empty(t, verr.Errors[0].Path)
		assert.EqualError(t, verr.Errors[0].Err, "first")
		assert.EqualError(t, verr.Errors[1].Err, "second")
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		_, err := schema.Either().Validate(ctx, 1)
		assert.EqualError(t, err, schema.DefaultErrorMessage)
	})

	t.Run("asynchronous candidate success skips the rest", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		v := schema.Either(delayed(5*time.Millisecond, pass), counting(schema.Unknown, &calls))

		res, err := v.Call(ctx, "x")
		require.NoError(t, err)
		require.True(t, res.IsPending())

		got, err := res.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "x", got)
		assert.Zero(t, calls.Load())
	})

	t.Run("later candidates wait for an asynchronous failure", func(t *testing.T) {
		t.Parallel()
		var (
			mu    sync.Mutex
			order []string
		)
		record := func(name string) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}

		slowFail := delayed(10*time.Millisecond, func(any) (any, error) {
			record("slow")
			return nil, schema.NewValidationError("slow failed")
		})
		fast := schema.Unknown.Transform(func(v any) (any, error) {
			record("fast")
			return v, nil
		})

		got, err := schema.Either(slowFail, fast).Validate(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 7, got)
		assert.Equal(t, []string{"slow", "fast"}, order)
	})

	t.Run("asynchronous failures are aggregated in order", func(t *testing.T) {
		t.Parallel()
		v := schema.Either(
			fail("sync"),
			delayed(5*time.Millisecond, func(any) (any, error) {
				return nil, schema.NewValidationError("slow")
			}),
			delayed(time.Millisecond, func(any) (any, error) {
				return nil, schema.NewValidationError("fast")
			}),
		)

		_, err := v.Validate(ctx, 1)
		verr, ok := schema.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "sync", verr.Message)
		require.Len(t, verr.Errors, 3)
		assert.EqualError(t, verr.Errors[1].Err, "slow")
		assert.EqualError(t, verr.Errors[2].Err, "fast")
	})

	t.Run("type mismatch is not collected", func(t *testing.T) {
		t.Parallel()
		_, err := schema.Either(conflict(), schema.Number()).Validate(ctx, "x")
		assert.ErrorIs(t, err, schema.ErrTypeMismatch)
		assert.False(t, schema.IsValidationError(err))
	})

	t.Run("type mismatch stops the search", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		v := schema.Either(conflict(), counting(schema.String().Validator, &calls))

		_, err := v.Validate(ctx, "x")
		assert.ErrorIs(t, err, schema.ErrTypeMismatch)
		assert.Zero(t, calls.Load())
	})

	t.Run("asynchronous type mismatch stops the search", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		v := schema.Either(slowConflict(), counting(schema.String().Validator, &calls))

		_, err := v.Validate(ctx, "x")
		assert.ErrorIs(t, err, schema.ErrTypeMismatch)
		assert.False(t, schema.IsValidationError(err))
		assert.Zero(t, calls.Load())
	})

	t.Run("type mismatch in a later candidate", func(t *testing.T) {
		t.Parallel()
		v := schema.Either(delayed(time.Millisecond, func(any) (any, error) {
			return nil, schema.NewValidationError("slow")
		}), conflict())

		_, err := v.Validate(ctx, "x")
		assert.ErrorIs(t, err, schema.ErrTypeMismatch)
		assert.False(t, schema.IsValidationError(err))
	})

	t.Run("zero validator candidate", func(t *testing.T) {
		t.Parallel()
		_, err := schema.Either(schema.Validator{}, schema.Unknown).Validate(ctx, 1)
		assert.ErrorIs(t, err, schema.ErrNilValidator)
		assert.False(t, schema.IsValidationError(err))
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("combines disjoint objects", func(t *testing.T) {
		t.Parallel()
		v := schema.Merge(
			map[string]any{"p": schema.Number()},
			map[string]any{"q": schema.Number()},
		)

		got, err := v.Validate(ctx, map[string]any{"p": 1, "q": 2})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"p": 1, "q": 2}, got)
	})

	t.Run("requires every branch", func(t *testing.T) {
		t.Parallel()
		v := schema.Merge(
			map[string]any{"p": schema.Number()},
			map[string]any{"q": schema.Number()},
		)

		_, err := v.Validate(ctx, map[string]any{"p": 1})
		require.Error(t, err)
		assert.EqualError(t, err, `q: Expect value to be "number"`)
	})

	t.Run("first failure wins without running later branches", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		v := schema.Merge(fail("a failed"), counting(fail("b failed"), &calls))

		_, err := v.Validate(ctx, 1)
		assert.EqualError(t, err, "a failed")
		assert.Zero(t, calls.Load())
	})

	t.Run("identical scalars merge", func(t *testing.T) {
		t.Parallel()
		got, err := schema.Merge(schema.Number(), schema.Number().Min(0)).Validate(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("conflicting scalars are a type mismatch", func(t *testing.T) {
		t.Parallel()
		one := schema.Unknown.Transform(func(any) (any, error) { return 1, nil })
		two := schema.Unknown.Transform(func(any) (any, error) { return 2, nil })

		_, err := schema.Merge(one, two).Validate(ctx, nil)
		assert.ErrorIs(t, err, schema.ErrTypeMismatch)
		assert.False(t, schema.IsValidationError(err))
	})

	t.Run("asynchronous conflict is a type mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := slowConflict().Validate(ctx, nil)
		assert.ErrorIs(t, err, schema.ErrTypeMismatch)
		assert.False(t, schema.IsValidationError(err))
	})

	t.Run("asynchronous branches", func(t *testing.T) {
		t.Parallel()
		v := schema.Merge(
			delayed(5*time.Millisecond, func(any) (any, error) { return map[string]any{"a": 1}, nil }),
			map[string]any{"b": schema.String()},
		)

		res, err := v.Call(ctx, map[string]any{"b": "x"})
		require.NoError(t, err)
		require.True(t, res.IsPending())

		got, err := res.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 1, "b": "x"}, got)
	})

	t.Run("asynchronous failures are reported in declared order", func(t *testing.T) {
		t.Parallel()
		v := schema.Merge(
			delayed(15*time.Millisecond, func(any) (any, error) {
				return nil, schema.NewValidationError("slow")
			}),
			delayed(time.Millisecond, func(any) (any, error) {
				return nil, schema.NewValidationError("fast")
			}),
		)

		_, err := v.Validate(ctx, 1)
		assert.EqualError(t, err, "slow")
	})

	t.Run("any arity", func(t *testing.T) {
		t.Parallel()
		parts := make([]any, 0, 8)
		input := map[string]any{}
		for _, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			parts = append(parts, map[string]any{key: schema.Number()})
			input[key] = len(key)
		}

		got, err := schema.Merge(parts...).Validate(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, input, got)

		got, err = schema.Merge().Validate(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestEnum(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	type Status string
	const (
		Active   Status = "active"
		Disabled Status = "disabled"
	)

	v := schema.Enum(map[string]Status{"Active": Active, "Disabled": Disabled})

	got, err := v.Validate(ctx, Active)
	require.NoError(t, err)
	assert.Equal(t, Active, got)

	_, err = v.Validate(ctx, "active")
	assert.EqualError(t, err, "Unknown enum value")

	_, err = v.Equals(Disabled).Validate(ctx, Active)
	assert.Error(t, err)

	_, err = schema.Enum([]int{1, 2}, schema.Err(errors.New("not allowed"))).Validate(ctx, 3)
	assert.EqualError(t, err, "not allowed")
}
