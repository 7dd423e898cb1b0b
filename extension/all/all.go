// Package all imports all built-in hyperspell-mcp extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each registers itself via init()
	_ "github.com/hyperspell/hyperspell-mcp/extension/collection"
	_ "github.com/hyperspell/hyperspell-mcp/extension/core"
	_ "github.com/hyperspell/hyperspell-mcp/extension/document"
	_ "github.com/hyperspell/hyperspell-mcp/extension/search"
)
