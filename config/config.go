// Package config loads the daemon configuration from a YAML file.
// The configuration is read once at startup and treated as read-only
// afterwards.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider type identifiers accepted in the providers list.
const (
	TypeBackend   = "backend"
	TypeAnthropic = "anthropic"
	TypeLorem     = "lorem"
)

// Config is the daemon configuration.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// DefaultProvider is used when a generation request names none.
	DefaultProvider string `yaml:"defaultProvider"`

	// Providers lists the generation backends to register.
	Providers []ProviderConfig `yaml:"providers"`

	// Highlight configures the highlighting service.
	Highlight HighlightConfig `yaml:"highlight"`
}

// ProviderConfig describes one generation backend.
type ProviderConfig struct {
	// Name is the identifier the provider is selected under.
	// Fixed-name types (anthropic, lorem) ignore it.
	Name string `yaml:"name"`

	// Type selects the implementation: backend (default), anthropic, lorem.
	Type string `yaml:"type"`

	// Endpoint is the generation URL (backend type only).
	Endpoint string `yaml:"endpoint"`

	// APIKeyEnv names the environment variable holding the API key, so the
	// key itself never lives in the config file.
	APIKeyEnv string `yaml:"apiKeyEnv"`

	// Model selects the backend model where applicable.
	Model string `yaml:"model"`
}

// APIKey resolves the provider's API key from the environment.
func (p ProviderConfig) APIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// HighlightConfig configures the highlighting service.
type HighlightConfig struct {
	// Style names the chroma style used for rendered markup.
	Style string `yaml:"style"`
}

// Default returns the configuration used when no file is given: a local
// listen address and the lorem mock provider, so the daemon is usable
// without any setup.
func Default() *Config {
	return &Config{
		Listen:          ":8787",
		DefaultProvider: "lorem",
		Providers:       []ProviderConfig{{Type: TypeLorem}},
	}
}

// Load reads the configuration from path. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Listen == "" {
		cfg.Listen = ":8787"
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Providers) == 0 {
		return fmt.Errorf("config: at least one provider is required")
	}

	seen := make(map[string]bool)
	for i, p := range c.Providers {
		name := p.Name
		switch p.Type {
		case TypeAnthropic:
			name = "anthropic"
		case TypeLorem:
			name = "lorem"
		case TypeBackend, "":
			if p.Name == "" {
				return fmt.Errorf("config: providers[%d]: name is required", i)
			}
			if p.Endpoint == "" {
				return fmt.Errorf("config: provider %q: endpoint is required", p.Name)
			}
		default:
			return fmt.Errorf("config: provider %q: unknown type %q", p.Name, p.Type)
		}
		if seen[name] {
			return fmt.Errorf("config: duplicate provider %q", name)
		}
		seen[name] = true
	}

	if c.DefaultProvider != "" && !seen[c.DefaultProvider] {
		return fmt.Errorf("config: default provider %q is not configured", c.DefaultProvider)
	}
	return nil
}
