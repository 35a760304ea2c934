// Package config loads the tool's runtime settings (output format, env files,
// HTTP server tuning) from multiple sources with precedence: CLI flags > YAML
// config > Environment variables > Defaults. BASE_PATH is not part of these
// settings; the resolver reads it from the environment as-is.
package config
