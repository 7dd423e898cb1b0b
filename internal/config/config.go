// Package config provides reading and writing of hyperspell-mcp configuration.
// Supports both global (~/.hyperspell/config.yaml) and local (.hyperspell/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
//
// The file is the lowest-precedence source. LoadServer layers a .env file and
// the process environment on top of it to produce the ServerConfig the
// server runs with.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.hyperspell/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .hyperspell/config.yaml
	ScopeLocal
)

// String returns "global" or "local".
func (s Scope) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

// API holds settings for the remote API connection.
type API struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// Config is the on-disk configuration file.
type Config struct {
	Token        string `yaml:"token,omitempty"`
	UseResources string `yaml:"use_resources,omitempty"`
	Collection   string `yaml:"collection,omitempty"`
	API          API    `yaml:"api,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks values that have a fixed format.
// Unset values are valid; defaults apply later.
func (c *Config) Validate() error {
	if c.UseResources != "" {
		if _, _, err := ParseMode(c.UseResources); err != nil {
			return err
		}
	}
	if c.API.Timeout != "" {
		if _, err := ParseTimeout(c.API.Timeout); err != nil {
			return err
		}
	}
	return nil
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(".hyperspell", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.hyperspell/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hyperspell", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// The file may hold a token, so it is created with mode 0600.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
