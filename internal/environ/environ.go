// Package environ provides environment lookups for the resolver: the live
// process environment, static maps, and dotenv files layered beneath them.
package environ

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/eugenenazirov/siteconfig/internal/siteconfig"
)

// ErrNoEnvFiles is returned by WithDotenv when called without any paths.
var ErrNoEnvFiles = errors.New("no env files provided")

// Process returns a lookup backed by the process environment.
func Process() siteconfig.LookupFunc {
	return os.LookupEnv
}

// Map returns a lookup over a fixed set of values. The map is copied.
func Map(values map[string]string) siteconfig.LookupFunc {
	snapshot := make(map[string]string, len(values))
	for k, v := range values {
		snapshot[k] = v
	}
	return func(key string) (string, bool) {
		v, ok := snapshot[key]
		return v, ok
	}
}

// WithDotenv layers the given dotenv files beneath base. Keys present in base
// always win; file values only fill keys base does not define. When several
// files define a key, the earliest file wins. The process environment is not
// modified.
func WithDotenv(base siteconfig.LookupFunc, paths ...string) (siteconfig.LookupFunc, error) {
	if len(paths) == 0 {
		return nil, ErrNoEnvFiles
	}

	merged := make(map[string]string)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
		for k, v := range values {
			if _, exists := merged[k]; !exists {
				merged[k] = v
			}
		}
	}

	fallback := Map(merged)
	return func(key string) (string, bool) {
		if base != nil {
			if v, ok := base(key); ok {
				return v, true
			}
		}
		return fallback(key)
	}, nil
}
