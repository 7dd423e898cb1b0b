// Package extension provides the plugin architecture for hyperspell-mcp.
// Extensions group related CLI commands and register themselves at init
// time, so new command groups need no changes to the root command.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for hyperspell-mcp extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared Context once the
// configuration has been loaded.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Offline is implemented by extensions with commands that work without an
// API token. Commands named by OfflineCommands skip configuration loading
// in PersistentPreRunE, so they run even when HYPERSPELL_TOKEN is unset.
type Offline interface {
	OfflineCommands() []string
}
