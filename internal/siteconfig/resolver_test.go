package siteconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDetectMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want Mode
	}{
		{name: "NoArgs", args: nil, want: ModeProduction},
		{name: "BuildCommand", args: []string{"node", "vite", "build"}, want: ModeProduction},
		{name: "DevLast", args: []string{"node", "vite", "dev"}, want: ModeDev},
		{name: "DevFirst", args: []string{"dev", "node", "vite"}, want: ModeDev},
		{name: "DevMiddle", args: []string{"node", "dev", "--port", "5173"}, want: ModeDev},
		{name: "SubstringIsNotToken", args: []string{"node", "vite", "--dev", "devserver"}, want: ModeProduction},
		{name: "CaseSensitive", args: []string{"node", "DEV"}, want: ModeProduction},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectMode(tc.args))
		})
	}
}

func TestResolveScenarios(t *testing.T) {
	t.Parallel()

	t.Run("ProductionWithoutBasePath", func(t *testing.T) {
		cfg := Resolve([]string{"node", "script.js"}, envOf(map[string]string{}))
		base, ok := cfg.BaseValue()
		assert.False(t, ok)
		assert.Empty(t, base)
		assert.Nil(t, cfg.Paths.Base)
	})

	t.Run("DevIgnoresBasePath", func(t *testing.T) {
		cfg := Resolve([]string{"node", "script.js", "dev"}, envOf(map[string]string{"BASE_PATH": "/repo"}))
		base, ok := cfg.BaseValue()
		require.True(t, ok)
		assert.Equal(t, "", base)
	})

	t.Run("ProductionUsesBasePath", func(t *testing.T) {
		cfg := Resolve([]string{"node", "script.js"}, envOf(map[string]string{"BASE_PATH": "/my-repo"}))
		base, ok := cfg.BaseValue()
		require.True(t, ok)
		assert.Equal(t, "/my-repo", base)
	})

	t.Run("ProductionKeepsEmptyBasePath", func(t *testing.T) {
		cfg := Resolve([]string{"node", "script.js"}, envOf(map[string]string{"BASE_PATH": ""}))
		base, ok := cfg.BaseValue()
		require.True(t, ok)
		assert.Equal(t, "", base)
	})

	t.Run("ProductionPassesValueVerbatim", func(t *testing.T) {
		cfg := Resolve([]string{"node"}, envOf(map[string]string{"BASE_PATH": " /with space/ "}))
		base, ok := cfg.BaseValue()
		require.True(t, ok)
		assert.Equal(t, " /with space/ ", base)
	})

	t.Run("NilLookup", func(t *testing.T) {
		cfg := Resolve([]string{"node"}, nil)
		assert.Nil(t, cfg.Paths.Base)
	})
}

func TestAdapterOptionsAreConstant(t *testing.T) {
	t.Parallel()

	want := AdapterOptions{
		PagesDir:         "build",
		AssetsDir:        "build",
		FallbackDocument: "404.html",
		Precompress:      false,
		Strict:           true,
	}

	inputs := []struct {
		args []string
		env  map[string]string
	}{
		{args: nil, env: nil},
		{args: []string{"dev"}, env: map[string]string{"BASE_PATH": "/x"}},
		{args: []string{"node", "build"}, env: map[string]string{"BASE_PATH": "/y", "PAGES": "other"}},
	}

	assert.Equal(t, want, DefaultAdapterOptions())
	for _, in := range inputs {
		assert.Equal(t, want, Resolve(in.args, envOf(in.env)).Adapter)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	args := []string{"node", "script.js"}
	env := envOf(map[string]string{"BASE_PATH": "/my-repo"})

	first := Resolve(args, env)
	second := Resolve(args, env)
	assert.Equal(t, first, second)
	require.NotNil(t, first.Paths.Base)
	assert.NotSame(t, first.Paths.Base, second.Paths.Base)
}

func TestResolveDoesNotRetainArgs(t *testing.T) {
	t.Parallel()

	args := []string{"node", "dev"}
	cfg := Resolve(args, nil)
	args[1] = "build"

	base, ok := cfg.BaseValue()
	require.True(t, ok)
	assert.Equal(t, "", base)
}

func TestResolveProcess(t *testing.T) {
	t.Setenv("BASE_PATH", "/from-process")

	cfg := ResolveProcess()
	base, ok := cfg.BaseValue()
	require.True(t, ok)
	// go test never passes a bare "dev" argument, so this is production mode.
	assert.Equal(t, "/from-process", base)
}

func TestDocumentShape(t *testing.T) {
	t.Parallel()

	cfg := Resolve([]string{"node"}, envOf(map[string]string{"BASE_PATH": "/docs"}))
	data, err := json.Marshal(cfg.Document())
	require.NoError(t, err)

	want := `{"kit":{"adapter":{"name":"adapter-static","options":{"pages":"build","assets":"build","fallback":"404.html","precompress":false,"strict":true}},"paths":{"base":"/docs"}}}`
	assert.JSONEq(t, want, string(data))
}

func TestDocumentEmitsNullForAbsentBase(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Resolve(nil, nil).Document())
	require.NoError(t, err)

	var decoded struct {
		Kit struct {
			Paths map[string]any `json:"paths"`
		} `json:"kit"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	value, present := decoded.Kit.Paths["base"]
	assert.True(t, present)
	assert.Nil(t, value)
}
