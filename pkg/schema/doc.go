// Package schema builds runtime validators from declarative descriptors and
// composes them with a small combinator algebra.
//
// A Validator is an immutable value wrapping a Func. Calling it checks (and
// possibly transforms) an input and either returns the validated value or
// fails with a *ValidationError. The value may be immediate or pending: every
// validator works the same way whether its upstream steps are synchronous or
// asynchronous, because composition always goes through Result.
//
// # Architecture
//
//   - errors.go      – ValidationError, PathError, ErrorLike and aggregation
//   - validations.go – scalar checks: EqualsFunc, TypeFunc, EnumValue
//   - validator.go   – Validator with Call, Validate, Transform, Equals, Optional
//   - logic.go       – Either (union), Merge (intersection) and Enum
//   - concat.go      – DeepConcat, used by Merge to combine branch outputs
//   - compiler.go    – Compile/New: descriptor to Func, object and tuple shapes
//   - builtins       – Boolean, Unknown, String, Number, Array, Async
//
// There is no global state; validators are built once, typically at package
// initialization, and shared freely between goroutines.
//
// # Usage
//
//	var user = schema.New(map[string]any{
//	    "name":  schema.String().Trim().Min(1),
//	    "role":  schema.Enum(map[string]string{"Admin": "admin", "User": "user"}),
//	    "email": schema.Either(schema.String().Regexp(emailRe), nil),
//	})
//
//	v, err := user.Validate(ctx, input)
//	if err != nil {
//	    if verr, ok := schema.AsValidationError(err); ok {
//	        for _, pe := range verr.Errors {
//	            fmt.Println(pe.Path, pe.Err)
//	        }
//	    }
//	}
//
// Combinators accept any descriptor Compile understands:
//
//	id := schema.Either(schema.String().UUID(), schema.Number().Integer().Positive())
//	withAudit := schema.Merge(user, map[string]any{"created_by": schema.String()})
//	enabled := schema.Boolean.Equals(true)
//
// # Asynchronous validators
//
// A Func may answer with Pending(future). Transform, Either, Merge and the
// object shapes keep pending results pending and preserve declared order, so
// callers only deal with it once, through Validate or Result.Await:
//
//	unique := schema.Async(func(ctx context.Context, v any) (any, error) {
//	    taken, err := repo.EmailTaken(ctx, v.(string))
//	    if err != nil {
//	        return nil, err
//	    }
//	    if taken {
//	        return nil, schema.NewValidationError("email already registered")
//	    }
//	    return v, nil
//	})
//
// # Error Handling
//
// Invalid input always yields a *ValidationError, which matches both
// ErrValidation and ErrInvalidType with errors.Is and encodes to JSON as
// {"message": ..., "errors": [{"path": [...], "error": ...}]}.
// A Merge whose branches disagree on a scalar fails with ErrTypeMismatch
// instead: that is a schema bug, not bad input. New panics on descriptors it
// cannot compile; use Compile to get the error instead.
package schema
