package binder

import (
	"log/slog"

	"github.com/dmitrymomot/schemakit/pkg/config"
	"github.com/dmitrymomot/schemakit/pkg/logger"
)

const (
	// DefaultMaxBodySize limits request bodies read by JSON and Form.
	DefaultMaxBodySize = 1 << 20 // 1 MB
	// DefaultMaxMemory is the part of a multipart form kept in memory.
	DefaultMaxMemory = 10 << 20 // 10 MB
)

// Config holds the binder settings that can be set through the environment.
type Config struct {
	MaxBodySize int64 `env:"BINDER_MAX_BODY_SIZE" envDefault:"1048576"`
	// IntegerNumbers decodes integral JSON numbers as int instead of float64.
	IntegerNumbers bool `env:"BINDER_INTEGER_NUMBERS" envDefault:"true"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option configures binders and Middleware.
type Option func(*options)

type options struct {
	maxBodySize    int64
	integerNumbers bool
	logger         *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		maxBodySize:    DefaultMaxBodySize,
		integerNumbers: true,
		logger:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithConfig applies cfg. A non-positive MaxBodySize keeps the default.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		if cfg.MaxBodySize > 0 {
			o.maxBodySize = cfg.MaxBodySize
		}
		o.integerNumbers = cfg.IntegerNumbers
	}
}

// WithMaxBodySize limits the request body to n bytes.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithFloatNumbers decodes every JSON number as float64, like encoding/json does.
func WithFloatNumbers() Option {
	return func(o *options) { o.integerNumbers = false }
}

// WithLogger sets the logger Middleware reports rejected requests to.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
