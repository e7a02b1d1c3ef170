// Package binder validates HTTP request data with schema validators.
//
// A Binder reads one part of a request, turns it into plain values
// (map[string]any, []any, strings, numbers and booleans) and runs a
// schema.Validator over it with the request context:
//
//   - JSON: the request body, which must be application/json or a +json type
//   - Form: url-encoded or multipart form fields
//   - Query: the URL query string
//   - Path: chi URL parameters
//
// Middleware plugs a Binder into a chi or net/http stack. Valid requests
// continue with the validated value available through FromContext:
//
//	signup := schema.New(map[string]any{
//	    "email":    schema.String().Trim().ToLowerCase(),
//	    "password": schema.String().Min(8),
//	})
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.With(binder.Middleware(binder.JSON(signup), binder.WithLogger(log))).
//	    Post("/signup", func(w http.ResponseWriter, r *http.Request) {
//	        v, _ := binder.FromContext(r.Context())
//	        form := v.(map[string]any)
//	        ...
//	    })
//
// # Configuration
//
// Limits come from options or from the environment through LoadConfig:
//
//	cfg, err := binder.LoadConfig() // BINDER_MAX_BODY_SIZE, BINDER_INTEGER_NUMBERS
//	bind := binder.JSON(signup, binder.WithConfig(cfg))
//
// # Error Handling
//
// Validation failures are *schema.ValidationError values and map to 422.
// Malformed input wraps ErrFailedToParseJSON, ErrFailedToParseForm or
// ErrFailedToParseQuery (400); content type problems wrap
// ErrMissingContentType or ErrUnsupportedMediaType (415); oversized bodies
// wrap ErrBodyTooLarge (413). StatusCode and WriteError implement this mapping.
package binder
