/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// call.go wraps a single API-backed command invocation.

package cmd

import (
	"context"
	"log/slog"

	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/hyperspell"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/hyperspell/hyperspell-mcp/internal/progress"
	"github.com/spf13/cobra"
)

// Call runs fn with a fresh request id, shows a spinner on stderr while it
// waits and writes an audit entry with source "cli:<command>". fn may add
// details to the entry.
func Call(c *cobra.Command, action, target string, fn func(ctx context.Context, l *log.Builder) error) error {
	ctx, reqID := hyperspell.NewRequestID(c.Context())
	source := "cli:" + c.Name()
	l := log.Event(source, action).Target(target).RequestID(reqID)

	slog.Debug("operation", "source", source, "target", target, "request_id", reqID)

	spin := progress.NewSpinner("Contacting Hyperspell")
	if !JSON() {
		spin.Start()
	}
	err := fn(ctx, l)
	spin.Stop()

	if err != nil {
		l.Kind(adapter.Kind(err))
		slog.Debug("operation failed", "source", source, "request_id", reqID, "error", err)
	}
	l.Write(err)
	return err
}
