// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the "config" command.

package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"token",
		"use_resources",
		"collection",
		"api.base_url", "api.timeout",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "token":
		return c.Token, nil
	case "use_resources":
		return c.UseResources, nil
	case "collection":
		return c.Collection, nil
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.timeout":
		return c.API.Timeout, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "token":
		c.Token = strings.TrimSpace(value)
	case "use_resources":
		if _, _, err := ParseMode(value); err != nil {
			return err
		}
		c.UseResources = strings.ToLower(strings.TrimSpace(value))
	case "collection":
		c.Collection = value
	case "api.base_url":
		if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%w: api.base_url must start with http:// or https://", ErrInvalidValue)
		}
		c.API.BaseURL = value
	case "api.timeout":
		if _, err := ParseTimeout(value); err != nil {
			return err
		}
		c.API.Timeout = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map. The token is masked.
func (c *Config) All() map[string]string {
	return map[string]string{
		"token":         MaskToken(c.Token),
		"use_resources": c.UseResources,
		"collection":    c.Collection,
		"api.base_url":  c.API.BaseURL,
		"api.timeout":   c.API.Timeout,
	}
}

// IsSet returns true if the key has an explicit value.
func (c *Config) IsSet(key string) bool {
	v, err := c.Get(key)
	return err == nil && v != ""
}

// MaskToken hides all but the last four characters of a credential.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
