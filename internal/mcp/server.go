// Package mcp implements the Model Context Protocol server that exposes the
// Hyperspell operations to an AI-agent host over stdio.
//
// Which surfaces are registered depends on the server configuration: every
// operation can be a tool, and the read operations can also be resources.
// Search, Add File and Add Memory have no resource form and are always
// registered as tools.
package mcp

import (
	"context"
	"errors"
	stdlog "log"
	"log/slog"
	"os"

	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/version"
	"github.com/mark3labs/mcp-go/server"
)

// Name is advertised to clients during initialisation.
const Name = "Hyperspell"

const instructions = "Hyperspell gives you access to the user's documents, memories and connected data. " +
	"Use search_hyperspell to find information, list_collections and get_collection to browse, " +
	"get_document to read a single document, and add_memory or add_file to store new information."

// Serve runs the MCP server over stdio until stdin closes or the process is
// signalled.
func Serve(svc *adapter.Service) error {
	// The default slog handler already writes to stderr; stdout is reserved
	// for MCP JSON-RPC messages.
	s := NewServer(svc)
	slog.Debug("registered tools", "count", len(s.ListTools()))

	cfg := svc.Config()
	slog.Info("hyperspell MCP server ready",
		"version", version.Version,
		"transport", "stdio",
		"config", cfg,
	)

	err := server.ServeStdio(s,
		server.WithErrorLogger(stdlog.New(os.Stderr, "mcp: ", stdlog.LstdFlags)),
	)
	if err == nil || errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds an MCP server with the operations registered according to
// the service configuration.
func NewServer(svc *adapter.Service) *server.MCPServer {
	cfg := svc.Config()

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
	}
	if cfg.UseResources {
		opts = append(opts, server.WithResourceCapabilities(false, false))
	}

	s := server.NewMCPServer(Name, version.Version, opts...)

	h := &handlers{svc: svc}
	register(s, h, h.operations(), cfg.UseTools, cfg.UseResources)
	return s
}

// handlers binds the operation table to a service.
type handlers struct {
	svc *adapter.Service
}
