package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Binder extracts request data and returns it validated.
type Binder func(r *http.Request) (any, error)

// JSON returns a Binder that decodes a JSON request body and validates it with v.
//
// Objects decode to map[string]any and arrays to []any. Integral numbers
// decode to int unless WithFloatNumbers is given. The body must hold exactly
// one JSON value.
//
//	signup := binder.JSON(schema.New(map[string]any{
//		"email":    schema.String().Trim().ToLowerCase(),
//		"password": schema.String().Min(8),
//	}))
func JSON(v schema.Validator, opts ...Option) Binder {
	o := newOptions(opts)

	return func(r *http.Request) (any, error) {
		if err := requireMediaType(r, isJSON, "application/json"); err != nil {
			return nil, err
		}

		body, err := readBody(r, o.maxBodySize)
		if err != nil {
			return nil, err
		}

		data, err := decodeJSON(body, o.integerNumbers)
		if err != nil {
			return nil, err
		}

		return v.Validate(r.Context(), data)
	}
}

// Form returns a Binder that validates url-encoded or multipart form fields with v.
// A field with one value is a string; a repeated field is a []any of strings.
// Uploaded files are not part of the value; they stay on r.MultipartForm.
func Form(v schema.Validator, opts ...Option) Binder {
	o := newOptions(opts)

	return func(r *http.Request) (any, error) {
		isForm := func(mt string) bool {
			return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
		}
		if err := requireMediaType(r, isForm, "application/x-www-form-urlencoded or multipart/form-data"); err != nil {
			return nil, err
		}

		r.Body = http.MaxBytesReader(nil, r.Body, o.maxBodySize)

		var values url.Values
		if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return nil, formError(err)
			}
			values = r.MultipartForm.Value
		} else {
			if err := r.ParseForm(); err != nil {
				return nil, formError(err)
			}
			values = r.PostForm
		}

		return v.Validate(r.Context(), valuesMap(values))
	}
}

// Query returns a Binder that validates the URL query with v.
// A parameter with one value is a string; a repeated one is a []any of strings.
func Query(v schema.Validator) Binder {
	return func(r *http.Request) (any, error) {
		values, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseQuery, err)
		}
		return v.Validate(r.Context(), valuesMap(values))
	}
}

// Path returns a Binder that validates the named chi URL parameters with v.
// Parameters that are missing or empty are left out of the value.
func Path(v schema.Validator, names ...string) Binder {
	return func(r *http.Request) (any, error) {
		params := make(map[string]any, len(names))
		for _, name := range names {
			if value := chi.URLParam(r, name); value != "" {
				params[name] = value
			}
		}
		return v.Validate(r.Context(), params)
	}
}

func isJSON(mt string) bool {
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func requireMediaType(r *http.Request, ok func(string) bool, expected string) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: expected %s", ErrMissingContentType, expected)
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	if !ok(mt) {
		return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mt, expected)
	}
	return nil
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, limit)
	}
	return body, nil
}

func decodeJSON(body []byte, integers bool) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if integers {
		dec.UseNumber()
	}

	var data any
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
	}

	if integers {
		data = normalizeNumbers(data)
	}
	return data, nil
}

// normalizeNumbers replaces json.Number values with int when they are integral
// and with float64 otherwise.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for key, val := range t {
			t[key] = normalizeNumbers(val)
		}
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		f, _ := t.Float64()
		return f
	}
	return v
}

func valuesMap(values url.Values) map[string]any {
	m := make(map[string]any, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
		case 1:
			m[key] = vals[0]
		default:
			list := make([]any, len(vals))
			for i, val := range vals {
				list[i] = val
			}
			m[key] = list
		}
	}
	return m
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
}
