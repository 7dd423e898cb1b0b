// server.go builds the immutable ServerConfig from layered sources.
//
// Precedence, highest first: process environment, a .env file in the working
// directory, the YAML config file, built-in defaults. A .env file never
// overrides a variable that is already set in the environment.

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hyperspell/hyperspell-mcp/internal/hyperspell"
	"github.com/spf13/viper"
)

// Environment variables recognised by LoadServer.
const (
	EnvToken        = "HYPERSPELL_TOKEN"
	EnvUseResources = "HYPERSPELL_USE_RESOURCES"
	EnvCollection   = "HYPERSPELL_COLLECTION"
	EnvBaseURL      = "HYPERSPELL_BASE_URL"
	EnvTimeout      = "HYPERSPELL_TIMEOUT"
)

// DefaultEnvFile is the optional dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// DefaultUseResources exposes operations as tools only. Some MCP hosts
// handle resources poorly, so resources are opt-in.
const DefaultUseResources = "false"

var (
	// ErrMissingToken is returned when no API credential is configured.
	ErrMissingToken = errors.New(EnvToken + " is not set")
	// ErrInvalidMode is returned for an unrecognised output-mode value.
	ErrInvalidMode = errors.New("invalid value for " + EnvUseResources)
)

// ServerConfig is loaded once at startup and never modified.
type ServerConfig struct {
	APIKey       string
	UseTools     bool
	UseResources bool
	// Collection scopes search and ingestion when the caller names none.
	Collection string
	BaseURL    string
	Timeout    time.Duration
}

// Mode describes which MCP surfaces are enabled.
func (c ServerConfig) Mode() string {
	switch {
	case c.UseTools && c.UseResources:
		return "tools and resources"
	case c.UseResources:
		return "resources"
	default:
		return "tools"
	}
}

// LogValue keeps the credential out of log output.
func (c ServerConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", c.Mode()),
		slog.String("collection", c.Collection),
		slog.String("base_url", c.BaseURL),
		slog.Duration("timeout", c.Timeout),
		slog.String("token", MaskToken(c.APIKey)),
	)
}

// viper keys match the lowercased variable names so .env entries map
// directly onto them.
var envBindings = map[string]string{
	strings.ToLower(EnvToken):        EnvToken,
	strings.ToLower(EnvUseResources): EnvUseResources,
	strings.ToLower(EnvCollection):   EnvCollection,
	strings.ToLower(EnvBaseURL):      EnvBaseURL,
	strings.ToLower(EnvTimeout):      EnvTimeout,
}

// LoadServer resolves the server configuration. envFile is read if it exists;
// pass "" to skip it. No network access happens here.
func LoadServer(envFile string) (ServerConfig, error) {
	file, err := Load()
	if err != nil {
		return ServerConfig{}, err
	}

	v := viper.New()
	// An explicitly empty variable counts as set, so HYPERSPELL_USE_RESOURCES=""
	// is rejected rather than silently defaulted.
	v.AllowEmptyEnv(true)

	v.SetDefault(strings.ToLower(EnvToken), file.Token)
	v.SetDefault(strings.ToLower(EnvUseResources), firstNonEmpty(file.UseResources, DefaultUseResources))
	v.SetDefault(strings.ToLower(EnvCollection), file.Collection)
	v.SetDefault(strings.ToLower(EnvBaseURL), firstNonEmpty(file.API.BaseURL, hyperspell.DefaultBaseURL))
	v.SetDefault(strings.ToLower(EnvTimeout), file.API.Timeout)

	if envFile != "" {
		if _, statErr := os.Stat(envFile); statErr == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return ServerConfig{}, fmt.Errorf("reading %s: %w", envFile, err)
			}
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return ServerConfig{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	return resolve(
		v.GetString(strings.ToLower(EnvToken)),
		v.GetString(strings.ToLower(EnvUseResources)),
		v.GetString(strings.ToLower(EnvCollection)),
		v.GetString(strings.ToLower(EnvBaseURL)),
		v.GetString(strings.ToLower(EnvTimeout)),
	)
}

// resolve validates raw values and builds the ServerConfig.
func resolve(token, mode, collection, baseURL, timeout string) (ServerConfig, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ServerConfig{}, ErrMissingToken
	}

	useTools, useResources, err := ParseMode(mode)
	if err != nil {
		return ServerConfig{}, err
	}

	d := hyperspell.DefaultTimeout
	if strings.TrimSpace(timeout) != "" {
		if d, err = ParseTimeout(timeout); err != nil {
			return ServerConfig{}, err
		}
	}

	return ServerConfig{
		APIKey:       token,
		UseTools:     useTools,
		UseResources: useResources,
		Collection:   strings.TrimSpace(collection),
		BaseURL:      strings.TrimRight(firstNonEmpty(strings.TrimSpace(baseURL), hyperspell.DefaultBaseURL), "/"),
		Timeout:      d,
	}, nil
}

// ParseMode interprets an output-mode string case-insensitively.
// "true", "1" and "both" enable resources; "false", "0" and "both" enable tools.
func ParseMode(s string) (useTools, useResources bool, err error) {
	v := strings.ToLower(strings.TrimSpace(s))
	useResources = v == "true" || v == "1" || v == "both"
	useTools = v == "false" || v == "0" || v == "both"
	if !useTools && !useResources {
		return false, false, fmt.Errorf("%w: %q (want true, false, 1, 0 or both)", ErrInvalidMode, s)
	}
	return useTools, useResources, nil
}

// ParseTimeout accepts a Go duration ("30s", "2m") or a whole number of seconds.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("%w: timeout must be positive, got %q", ErrInvalidValue, s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be a positive duration, got %q", ErrInvalidValue, s)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
