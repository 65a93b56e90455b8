package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the scalpel.yaml configuration.
type Config struct {
	// Source configuration
	Source *SourceConfig `yaml:"source,omitempty"`

	// Lint configuration
	Lint *LintConfig `yaml:"lint,omitempty"`

	// Development server configuration
	Dev *DevConfig `yaml:"dev,omitempty"`

	// Expansion cache configuration
	Cache *CacheConfig `yaml:"cache,omitempty"`
}

// SourceConfig describes where component sources live.
type SourceConfig struct {
	// Directory scanned for sources
	Dir string `yaml:"dir,omitempty"`

	// File extensions treated as sources
	Extensions []string `yaml:"extensions,omitempty"`
}

// LintConfig controls the static analysis pass.
type LintConfig struct {
	// Issue kinds to suppress
	Disabled []string `yaml:"disabled,omitempty"`

	// Whether lint findings fail the expand command
	Strict bool `yaml:"strict,omitempty"`
}

// DevConfig contains development server configuration.
type DevConfig struct {
	// Server port
	Port int `yaml:"port,omitempty"`

	// Server host
	Host string `yaml:"host,omitempty"`
}

// CacheConfig controls the expansion cache.
type CacheConfig struct {
	// Whether caching is enabled
	Enabled bool `yaml:"enabled"`

	// Cache directory override
	Dir string `yaml:"dir,omitempty"`
}

// Load loads configuration from scalpel.yaml in projectPath, returning
// defaults when no file exists.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, "scalpel.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	return &config, nil
}

// Save writes configuration to scalpel.yaml in projectPath.
func Save(config *Config, projectPath string) error {
	configPath := filepath.Join(projectPath, "scalpel.yaml")
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: &SourceConfig{
			Dir:        "app",
			Extensions: []string{".sx"},
		},
		Lint: &LintConfig{
			Disabled: nil,
			Strict:   false,
		},
		Dev: &DevConfig{
			Port: 5310,
			Host: "localhost",
		},
		Cache: &CacheConfig{
			Enabled: true,
		},
	}
}

// applyDefaults fills missing values from the defaults.
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Source == nil {
		config.Source = defaults.Source
	} else {
		if config.Source.Dir == "" {
			config.Source.Dir = defaults.Source.Dir
		}
		if len(config.Source.Extensions) == 0 {
			config.Source.Extensions = defaults.Source.Extensions
		}
	}

	if config.Lint == nil {
		config.Lint = defaults.Lint
	}

	if config.Dev == nil {
		config.Dev = defaults.Dev
	} else {
		if config.Dev.Port == 0 {
			config.Dev.Port = defaults.Dev.Port
		}
		if config.Dev.Host == "" {
			config.Dev.Host = defaults.Dev.Host
		}
	}

	if config.Cache == nil {
		config.Cache = defaults.Cache
	}
}

// LintDisabled reports whether an issue kind is suppressed.
func (c *Config) LintDisabled(kind string) bool {
	if c.Lint == nil {
		return false
	}
	for _, k := range c.Lint.Disabled {
		if k == kind {
			return true
		}
	}
	return false
}

// IsSource reports whether path has one of the configured extensions.
func (c *Config) IsSource(path string) bool {
	ext := filepath.Ext(path)
	if c.Source == nil {
		return ext == ".sx"
	}
	for _, e := range c.Source.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
