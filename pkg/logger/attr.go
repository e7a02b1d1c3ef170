package logger

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Group creates a group attribute.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil err yields an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errs under "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return Group("errors", as...)
}

// ValidationErrors groups the breakdown of a *schema.ValidationError under
// "validation" as path => message, plus its summary under "message".
// Errors that are not validation errors yield an empty Attr.
func ValidationErrors(err error) slog.Attr {
	ve, ok := schema.AsValidationError(err)
	if !ok {
		return slog.Attr{}
	}

	as := make([]slog.Attr, 0, len(ve.Errors)+1)
	as = append(as, slog.String("message", ve.Message))
	for _, pe := range ve.Errors {
		key := pe.Path.String()
		if key == "" {
			key = "_"
		}
		msg := "<nil>"
		if pe.Err != nil {
			msg = pe.Err.Error()
		}
		as = append(as, slog.String(key, msg))
	}
	return Group("validation", as...)
}

// Path records a value location under "path", joined with ".".
func Path(p schema.Path) slog.Attr {
	return slog.String("path", p.String())
}

// RequestID records id under "request_id". An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the name of the emitting component.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
