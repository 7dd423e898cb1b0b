// Package core provides the core extension for hyperspell-mcp.
// It registers commands: serve, config, guide, version.
package core

import (
	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc *adapter.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Offline       = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the service for the serve command.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newServeCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// OfflineCommands returns the commands that need no API token.
func (e *Extension) OfflineCommands() []string {
	return []string{"config", "guide", "version"}
}
