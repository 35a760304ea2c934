package siteconfig

// Mode is the execution mode inferred from the process arguments.
type Mode string

const (
	// ModeDev is selected when the argument list contains the "dev" token.
	ModeDev Mode = "dev"
	// ModeProduction is selected for every other invocation.
	ModeProduction Mode = "production"
)

// AdapterName identifies the static-output adapter collaborator.
const AdapterName = "adapter-static"

// LookupFunc reads a single environment variable. It has the shape of
// os.LookupEnv so that the absent case stays distinguishable from "".
type LookupFunc func(key string) (string, bool)

// AdapterOptions parameterises the static-output adapter.
type AdapterOptions struct {
	PagesDir         string `json:"pages" yaml:"pages"`
	AssetsDir        string `json:"assets" yaml:"assets"`
	FallbackDocument string `json:"fallback" yaml:"fallback"`
	Precompress      bool   `json:"precompress" yaml:"precompress"`
	Strict           bool   `json:"strict" yaml:"strict"`
}

// PathsOptions holds URL path settings. A nil Base means BASE_PATH was not
// set in production mode; it is emitted as null rather than defaulted.
type PathsOptions struct {
	Base *string `json:"base" yaml:"base"`
}

// SiteConfig is the resolved configuration record.
type SiteConfig struct {
	Adapter AdapterOptions `json:"adapter" yaml:"adapter"`
	Paths   PathsOptions   `json:"paths" yaml:"paths"`
}

// Document is the configuration object in the shape the build tool expects.
type Document struct {
	Kit KitConfig `json:"kit" yaml:"kit"`
}

// KitConfig is the "kit" section of Document.
type KitConfig struct {
	Adapter AdapterRef   `json:"adapter" yaml:"adapter"`
	Paths   PathsOptions `json:"paths" yaml:"paths"`
}

// AdapterRef names an adapter together with its options.
type AdapterRef struct {
	Name    string         `json:"name" yaml:"name"`
	Options AdapterOptions `json:"options" yaml:"options"`
}

// BaseValue returns the base path and whether it was set.
func (c SiteConfig) BaseValue() (string, bool) {
	if c.Paths.Base == nil {
		return "", false
	}
	return *c.Paths.Base, true
}

// Document wraps the record in the build tool's configuration shape.
func (c SiteConfig) Document() Document {
	return Document{
		Kit: KitConfig{
			Adapter: AdapterRef{
				Name:    AdapterName,
				Options: c.Adapter,
			},
			Paths: c.Paths,
		},
	}
}
