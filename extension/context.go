// context.go defines the Context through which extensions reach the
// configured service.
//
// Extensions receive the Context during Init(), not at construction, because
// they register before the configuration is loaded.

package extension

import (
	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/config"
)

// Context provides extensions access to shared resources.
type Context interface {
	// Service runs Hyperspell operations.
	Service() *adapter.Service

	// Config returns the resolved server configuration.
	Config() config.ServerConfig
}

type extContext struct {
	svc *adapter.Service
	cfg config.ServerConfig
}

// NewContext creates a new extension context.
func NewContext(svc *adapter.Service, cfg config.ServerConfig) Context {
	return &extContext{svc: svc, cfg: cfg}
}

func (c *extContext) Service() *adapter.Service { return c.svc }

func (c *extContext) Config() config.ServerConfig { return c.cfg }
