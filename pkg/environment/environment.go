package environment

import (
	"context"
	"strings"
)

// Environment names the deployment stage a process runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps an environment name, or its short alias, to an Environment.
// Unknown and empty names fall back to Development.
func Parse(name string) Environment {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) String() string {
	return string(e)
}

type contextKey struct{}

// WithContext stores env in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" if there is none.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether ctx carries the production environment.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}
