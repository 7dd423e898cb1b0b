/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/
package main

import (
	"github.com/hyperspell/hyperspell-mcp/cmd"

	// Import extensions - each registers itself via init()
	_ "github.com/hyperspell/hyperspell-mcp/extension/all"
)

func main() {
	cmd.Execute()
}
