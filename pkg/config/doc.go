// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with github.com/caarlos0/env/v11 tags;
// .env files are read with github.com/joho/godotenv. Parsed values are cached
// per type, so packages can call Load wherever they need their settings:
//
//	type Config struct {
//		MaxBodySize int64 `env:"BINDER_MAX_BODY_SIZE" envDefault:"1048576"`
//		StrictJSON  bool  `env:"BINDER_STRICT_JSON" envDefault:"false"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Load reads ./.env once, without overriding variables that are already set.
// LoadEnv loads explicit files, overriding the environment, and resets the cache.
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile; use errors.Is to check them.
package config
