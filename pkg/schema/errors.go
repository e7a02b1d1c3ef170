package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorName is the fixed name reported by every ValidationError.
const ErrorName = "ValidationError"

// DefaultErrorMessage is used when an aggregated failure has nothing to summarize.
const DefaultErrorMessage = "Unknown Validation Error"

// Error kinds a ValidationError can be matched against with errors.Is.
var (
	// ErrValidation identifies input validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidType identifies the broader "value has the wrong type" category.
	ErrInvalidType = errors.New("invalid type")
)

// Setup errors. These describe an inconsistent schema, not invalid input,
// and are never wrapped into a ValidationError.
var (
	// ErrTypeMismatch is returned by Merge when branches produce values that cannot be combined.
	ErrTypeMismatch = errors.New("Type mismatch on validation concat")

	// ErrUnsupportedDescriptor is returned by Compile for descriptors it cannot turn into a validator.
	ErrUnsupportedDescriptor = errors.New("unsupported schema descriptor")

	// ErrInvalidEnum is raised when an enum descriptor is neither a map nor a list of values.
	ErrInvalidEnum = errors.New("invalid enum descriptor")
)

// Path is the location of a failure inside a structured value.
// Keys are strings for object properties and ints for list positions.
type Path []any

// String joins the keys with ".".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, key := range p {
		parts[i] = fmt.Sprint(key)
	}
	return strings.Join(parts, ".")
}

// PathError records which position of a structural validation failed and why.
type PathError struct {
	Path Path
	Err  error
}

func (pe PathError) Error() string {
	msg := errorMessage(pe.Err)
	if len(pe.Path) == 0 {
		return msg
	}
	return pe.Path.String() + ": " + msg
}

func (pe PathError) Unwrap() error {
	return pe.Err
}

// MarshalJSON encodes the entry as {"path": [...], "error": ...}.
func (pe PathError) MarshalJSON() ([]byte, error) {
	path := pe.Path
	if path == nil {
		path = Path{}
	}
	return json.Marshal(struct {
		Path  Path `json:"path"`
		Error any  `json:"error"`
	}{
		Path:  path,
		Error: marshalableError(pe.Err),
	})
}

// ValidationError is the single failure type produced by validators.
type ValidationError struct {
	Message string
	// Errors holds the per-path breakdown of structural and union failures.
	// It is nil when the failure has no breakdown.
	Errors []PathError

	cause error
}

// NewValidationError creates a ValidationError with an optional breakdown.
func NewValidationError(message string, errs ...PathError) *ValidationError {
	return &ValidationError{Message: message, Errors: errs}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// String renders the error the way it prints in logs: "ValidationError: <message>".
func (e *ValidationError) String() string {
	return ErrorName + ": " + e.Message
}

// Name returns ErrorName regardless of how the error was built.
func (e *ValidationError) Name() string {
	return ErrorName
}

// Unwrap exposes the error a custom ErrorLike produced, if any.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Is reports true for both ErrValidation and ErrInvalidType.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || target == ErrInvalidType
}

// MarshalJSON encodes the error as {"message": ..., "errors": [...]}.
// Stack and name are not part of the encoded form.
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	out := struct {
		Message string       `json:"message"`
		Errors  *[]PathError `json:"errors,omitempty"`
	}{Message: e.Message}
	if e.Errors != nil {
		out.Errors = &e.Errors
	}
	return json.Marshal(out)
}

func (e *ValidationError) clone() *ValidationError {
	c := *e
	return &c
}

// ErrorLike resolves the error reported for a failing input.
// It is only called on the failure path, so building a descriptive
// message costs nothing while inputs are valid.
type ErrorLike func(input any) error

// Message returns an ErrorLike that always reports msg.
func Message(msg string) ErrorLike {
	return func(any) error {
		return NewValidationError(msg)
	}
}

// MessageFunc returns an ErrorLike that builds the message from the failing input.
func MessageFunc(fn func(input any) string) ErrorLike {
	return func(input any) error {
		return NewValidationError(fn(input))
	}
}

// Err returns an ErrorLike that always reports err.
func Err(err error) ErrorLike {
	return func(any) error {
		return err
	}
}

// ToError resolves e against the failing input.
// A *ValidationError is returned unchanged; any other error is wrapped so that
// every failure leaving a validator is a *ValidationError.
func ToError(e ErrorLike, input any) *ValidationError {
	if e == nil {
		return NewValidationError(DefaultErrorMessage)
	}

	err := e(input)
	if err == nil {
		return NewValidationError(DefaultErrorMessage)
	}

	if ve, ok := err.(*ValidationError); ok {
		return ve
	}

	return &ValidationError{Message: err.Error(), cause: err}
}

// CreateValidationError builds the error for an aggregate failure.
// Without e, the message summarizes the first entry of errs. The result always
// carries the full errs slice.
func CreateValidationError(errs []PathError, e ErrorLike, input any) *ValidationError {
	if e == nil {
		msg := DefaultErrorMessage
		if len(errs) > 0 {
			msg = errs[0].Error()
		}
		e = Message(msg)
	}

	err := ToError(e, input).clone()
	err.Errors = errs
	if err.Errors == nil {
		err.Errors = []PathError{}
	}

	return err
}

// AsValidationError extracts a *ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}

// isSetupError reports errors caused by the schema itself. They pass through
// combinators and shapes unchanged instead of being reported as bad input.
func isSetupError(err error) bool {
	return errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrNilValidator) ||
		errors.Is(err, ErrUnsupportedDescriptor) ||
		errors.Is(err, ErrInvalidEnum)
}

func errorMessage(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

func marshalableError(err error) any {
	if err == nil {
		return nil
	}
	if m, ok := err.(json.Marshaler); ok {
		return m
	}
	return err.Error()
}
