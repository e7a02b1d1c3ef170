package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")
)
