// serve.go implements the "serve" command, which runs the MCP server over
// stdio until the host closes stdin or the process is signalled.

package core

import (
	"github.com/hyperspell/hyperspell-mcp/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

Operations are exposed as tools, resources or both depending on
HYPERSPELL_USE_RESOURCES (false: tools, true: resources, both: both).
Search, add_file and add_memory are always available as tools.

  hyperspell-mcp serve
  HYPERSPELL_USE_RESOURCES=both hyperspell-mcp serve`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(e.svc)
		},
	}
}
