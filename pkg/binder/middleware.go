package binder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/schemakit/pkg/environment"
	"github.com/dmitrymomot/schemakit/pkg/logger"
)

type contextKey struct{}

// bound wraps a stored value so that a nil value still reads as present.
type bound struct{ value any }

// WithValue returns a copy of ctx carrying a validated request value.
func WithValue(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, contextKey{}, bound{v})
}

// FromContext returns the value stored by Middleware or WithValue.
func FromContext(ctx context.Context) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	b, ok := ctx.Value(contextKey{}).(bound)
	return b.value, ok
}

// Middleware runs bind for every request. Valid requests reach next with the
// value available through FromContext; rejected ones get an error response
// written by WriteError.
//
// Rejections are logged at debug level in production (see environment.Middleware)
// and at info level otherwise. Failures answered with a 5xx status are errors.
//
//	r := chi.NewRouter()
//	r.With(binder.Middleware(binder.JSON(signup))).Post("/signup", handleSignup)
func Middleware(bind Binder, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := bind(r)
			if err != nil {
				status := WriteError(w, err)
				logRejection(r, o.logger, status, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), v)))
		})
	}
}

func logRejection(r *http.Request, log *slog.Logger, status int, err error) {
	ctx := r.Context()
	attrs := []any{
		logger.Component("binder"),
		logger.RequestID(middleware.GetReqID(ctx)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
	}

	if status >= http.StatusInternalServerError {
		log.ErrorContext(ctx, "request binding failed", append(attrs, logger.Error(err))...)
		return
	}
	level := slog.LevelInfo
	if environment.IsProduction(ctx) {
		level = slog.LevelDebug
	}
	log.Log(ctx, level, "request rejected", append(attrs, logger.ValidationErrors(err), logger.Error(err))...)
}
