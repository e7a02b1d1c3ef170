package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)

	dotenvOnce sync.Once
)

// Load fills v from environment variables according to its `env` struct tags.
//
// The first call loads a .env file from the working directory when there is one;
// variables that are already set win. Each type is parsed once: later calls for
// the same T copy the cached value, until ResetCache.
//
//	type Config struct {
//		MaxBodySize int64 `env:"BINDER_MAX_BODY_SIZE" envDefault:"1048576"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// a missing .env file is not an error
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[key] = parsed
	*v = parsed

	return nil
}

// MustLoad is Load that panics on failure, for configuration required at startup.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load %T: %v", *new(T), err))
	}
}

// LoadEnv loads the given .env files into the process environment, overriding
// variables that are already set. Later files win. Cached configurations are
// dropped so the next Load sees the new values.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return ErrNoEnvFiles
	}
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	ResetCache()
	return nil
}

// ResetCache drops every cached configuration.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cache)
}
