// Package document provides the document extension.
// Registers commands: document, add-file, add-memory.
//
// Each command lives in its own file; they share the service injected by Init.

package document

import (
	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the document extension.
type Extension struct {
	svc *adapter.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "document".
func (e *Extension) Name() string { return "document" }

// Init connects to the shared service for document operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the document read and ingest commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newDocumentCmd(),
		e.newAddFileCmd(),
		e.newAddMemoryCmd(),
	}
}
