/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// PersistentPreRunE loads the server configuration and initialises the
// extensions for every command that talks to the API. Offline commands
// (config, guide, version) run without a token.

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hyperspell-mcp",
	Short: "MCP server for the Hyperspell API",
	Long: `Exposes your Hyperspell collections, documents and search to AI agents over the
Model Context Protocol. Run "hyperspell-mcp serve" from your MCP host; the other
commands call the same operations from a terminal.`,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		// Arguments are valid by now; further failures are not usage errors.
		cmd.SilenceUsage = true

		if offlineCommands[topLevelCmdName(cmd)] {
			return nil
		}
		if err := initExtensions(); err != nil {
			slog.Error("configuration error", "error", err)
			if JSON() {
				_ = PrintJSON(adapter.Describe(err))
			}
			return errPrinted{err}
		}
		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and exits with status 1 on any error.
func Execute() {
	setupLogging()

	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	registerExtensions()
	err := rootCmd.Execute()
	log.Close()

	if err != nil {
		var printed errPrinted
		if !errors.As(err, &printed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// setupLogging routes slog to stderr. --verbose enables debug records.
func setupLogging() {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	cobra.OnInitialize(func() {
		if verbose {
			level.Set(slog.LevelDebug)
		}
	})
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
