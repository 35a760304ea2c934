package siteconfig

import (
	"os"
	"slices"
)

const (
	devToken    = "dev"
	basePathEnv = "BASE_PATH"
)

// DefaultAdapterOptions returns the fixed static-output adapter settings.
func DefaultAdapterOptions() AdapterOptions {
	return AdapterOptions{
		PagesDir:         "build",
		AssetsDir:        "build",
		FallbackDocument: "404.html",
		Precompress:      false,
		Strict:           true,
	}
}

// DetectMode reports ModeDev when args contains the literal "dev" token at
// any position.
func DetectMode(args []string) Mode {
	if slices.Contains(args, devToken) {
		return ModeDev
	}
	return ModeProduction
}

// Resolve builds the SiteConfig for the given arguments and environment.
// In dev mode the base path is always empty; otherwise it is BASE_PATH as
// provided, and nil when the variable is absent.
func Resolve(args []string, lookup LookupFunc) SiteConfig {
	cfg := SiteConfig{
		Adapter: DefaultAdapterOptions(),
	}

	if DetectMode(args) == ModeDev {
		empty := ""
		cfg.Paths.Base = &empty
		return cfg
	}

	if lookup == nil {
		return cfg
	}
	if value, ok := lookup(basePathEnv); ok {
		cfg.Paths.Base = &value
	}
	return cfg
}

// ResolveProcess resolves against os.Args and the process environment.
func ResolveProcess() SiteConfig {
	return Resolve(os.Args, os.LookupEnv)
}
