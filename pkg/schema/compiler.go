package schema

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/dmitrymomot/schemakit/pkg/async"
)

// Option configures how a descriptor is compiled.
type Option func(*options)

type options struct {
	err    ErrorLike
	strict bool
}

// WithError replaces the default failure message of the compiled validator.
func WithError(e ErrorLike) Option {
	return func(o *options) { o.err = e }
}

// WithMessage is WithError(Message(msg)).
func WithMessage(msg string) Option {
	return WithError(Message(msg))
}

// Strict rejects keys of object shapes, and items of tuple shapes, that the
// descriptor does not declare. It applies to nested shapes as well.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// New compiles descriptor into a Validator and panics if the descriptor is not supported.
// Validators are usually built once at package initialization, where failing
// fast beats carrying an error around.
func New(descriptor any, opts ...Option) Validator {
	fn, err := Compile(descriptor, opts...)
	if err != nil {
		panic(err)
	}
	return NewValidator(fn)
}

// Compile turns a schema descriptor into a validation function.
//
// Supported descriptors:
//   - any Caller, such as Validator and the builtin validators
//   - Func, func(context.Context, any) (Result, error)
//   - func(any) (any, error), TransformFunc and func(context.Context, any) (any, error)
//   - map[string]any: an object shape, each key compiled recursively
//   - []any: a tuple shape, each position compiled recursively
//   - any other non-function value: the input must equal it
func Compile(descriptor any, opts ...Option) (Func, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return compile(descriptor, o)
}

func mustCompile(descriptor any) Func {
	fn, err := compile(descriptor, options{})
	if err != nil {
		panic(err)
	}
	return fn
}

func compile(descriptor any, o options) (Func, error) {
	switch d := descriptor.(type) {
	case Caller:
		return withError(d.Call, o.err), nil
	case Func:
		if d == nil {
			return nil, fmt.Errorf("%w: nil function", ErrUnsupportedDescriptor)
		}
		return withError(d, o.err), nil
	case func(context.Context, any) (Result, error):
		if d == nil {
			return nil, fmt.Errorf("%w: nil function", ErrUnsupportedDescriptor)
		}
		return withError(d, o.err), nil
	case TransformFunc:
		return compileTransform(d, o)
	case func(any) (any, error):
		return compileTransform(d, o)
	case func(context.Context, any) (any, error):
		if d == nil {
			return nil, fmt.Errorf("%w: nil function", ErrUnsupportedDescriptor)
		}
		return withError(func(ctx context.Context, input any) (Result, error) {
			v, err := d(ctx, input)
			if err != nil {
				return Result{}, err
			}
			return Resolved(v), nil
		}, o.err), nil
	case map[string]any:
		return compileObject(d, o)
	case []any:
		return compileTuple(d, o)
	}

	if descriptor != nil && reflect.TypeOf(descriptor).Kind() == reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedDescriptor, descriptor)
	}

	return EqualsFunc(descriptor, o.err), nil
}

func compileTransform(fn TransformFunc, o options) (Func, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrUnsupportedDescriptor)
	}
	return withError(syncFunc(fn), o.err), nil
}

// withError reports failures of fn through e, when e is set.
func withError(fn Func, e ErrorLike) Func {
	if e == nil {
		return fn
	}
	return func(ctx context.Context, input any) (Result, error) {
		res, err := fn(ctx, input)
		if err != nil {
			if isSetupError(err) {
				return Result{}, err
			}
			return Result{}, ToError(e, input)
		}
		if !res.IsPending() {
			return res, nil
		}
		return Pending(async.Handle(ctx, res.pending, func(v any, err error) (any, error) {
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				if isSetupError(err) {
					return nil, err
				}
				return nil, ToError(e, input)
			}
			return v, nil
		})), nil
	}
}

type field struct {
	key any
	fn  Func
}

// entry is the outcome of one field of a shape for a single call.
type entry struct {
	key     any
	present bool
	res     Result
	err     error
}

func compileFields(keys []any, descriptors []any, o options) ([]field, error) {
	nested := options{strict: o.strict}
	fields := make([]field, len(keys))
	for i, key := range keys {
		fn, err := compile(descriptors[i], nested)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", key, err)
		}
		fields[i] = field{key: key, fn: fn}
	}
	return fields, nil
}

func compileObject(shape map[string]any, o options) (Func, error) {
	names := make([]string, 0, len(shape))
	for name := range shape {
		names = append(names, name)
	}
	// maps have no order; sorted keys keep error reports stable
	slices.Sort(names)

	keys := make([]any, len(names))
	descriptors := make([]any, len(names))
	for i, name := range names {
		keys[i] = name
		descriptors[i] = shape[name]
	}

	fields, err := compileFields(keys, descriptors, o)
	if err != nil {
		return nil, err
	}

	notObject := orDefault(o.err, fmt.Sprintf("Expect value to be \"%s\"", TagObject))

	return func(ctx context.Context, input any) (Result, error) {
		m, ok := asMap(input)
		if !ok || isNull(input) {
			return Result{}, ToError(notObject, input)
		}

		entries := make([]entry, len(fields))
		for i, f := range fields {
			val, present := m[f.key.(string)]
			res, err := f.fn(ctx, val)
			entries[i] = entry{key: f.key, present: present, res: res, err: err}
		}

		var unknown []PathError
		if o.strict {
			extra := make([]string, 0)
			for key := range m {
				if _, ok := shape[key]; !ok {
					extra = append(extra, key)
				}
			}
			slices.Sort(extra)
			for _, key := range extra {
				unknown = append(unknown, PathError{Path: Path{key}, Err: NewValidationError("Unknown property")})
			}
		}

		return settle(ctx, entries, unknown, o.err, input, func(entries []entry) any {
			out := make(map[string]any, len(entries))
			for _, en := range entries {
				v := en.res.Value()
				if !en.present && v == nil {
					continue
				}
				out[en.key.(string)] = v
			}
			return out
		})
	}, nil
}

func compileTuple(shape []any, o options) (Func, error) {
	keys := make([]any, len(shape))
	for i := range shape {
		keys[i] = i
	}

	fields, err := compileFields(keys, shape, o)
	if err != nil {
		return nil, err
	}

	notList := orDefault(o.err, "Expect value to be \"array\"")

	return func(ctx context.Context, input any) (Result, error) {
		l, ok := asList(input)
		if !ok {
			return Result{}, ToError(notList, input)
		}

		entries := make([]entry, len(fields))
		for i, f := range fields {
			var val any
			present := i < len(l)
			if present {
				val = l[i]
			}
			res, err := f.fn(ctx, val)
			entries[i] = entry{key: i, present: present, res: res, err: err}
		}

		var unknown []PathError
		if o.strict {
			for i := len(fields); i < len(l); i++ {
				unknown = append(unknown, PathError{Path: Path{i}, Err: NewValidationError("Unknown property")})
			}
		}

		return settle(ctx, entries, unknown, o.err, input, func(entries []entry) any {
			out := make([]any, len(entries))
			for i, en := range entries {
				out[i] = en.res.Value()
			}
			return out
		})
	}, nil
}

// settle waits for pending entries in order, aggregates every failure into
// one *ValidationError, and otherwise builds the output from the entries.
// A setup error of any entry is returned as is.
func settle(ctx context.Context, entries []entry, extra []PathError, e ErrorLike, input any, build func([]entry) any) (Result, error) {
	finish := func(ctx context.Context, entries []entry) (any, error) {
		var errs []PathError
		for i := range entries {
			en := &entries[i]
			if en.err == nil && en.res.IsPending() {
				v, err := en.res.Await(ctx)
				if err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return nil, ctxErr
					}
				}
				en.res, en.err = Resolved(v), err
			}
			if en.err != nil {
				if isSetupError(en.err) {
					return nil, en.err
				}
				errs = appendPathError(errs, Path{en.key}, en.err)
			}
		}
		errs = append(errs, extra...)

		if len(errs) > 0 {
			return nil, CreateValidationError(errs, e, input)
		}
		return build(entries), nil
	}

	pending := slices.ContainsFunc(entries, func(en entry) bool {
		return en.err == nil && en.res.IsPending()
	})
	if pending {
		return Pending(async.Async(ctx, entries, finish)), nil
	}

	v, err := finish(ctx, entries)
	if err != nil {
		return Result{}, err
	}
	return Resolved(v), nil
}

// appendPathError records err under prefix, flattening the breakdown of a
// nested *ValidationError so paths stay relative to the outermost value.
func appendPathError(errs []PathError, prefix Path, err error) []PathError {
	ve, ok := err.(*ValidationError)
	if !ok || len(ve.Errors) == 0 {
		return append(errs, PathError{Path: prefix, Err: err})
	}

	for _, sub := range ve.Errors {
		path := make(Path, 0, len(prefix)+len(sub.Path))
		path = append(path, prefix...)
		path = append(path, sub.Path...)
		errs = append(errs, PathError{Path: path, Err: sub.Err})
	}
	return errs
}
