// Package collection provides collection browsing commands.
// Registers commands: collections, collection.
package collection

import (
	"context"
	"fmt"

	"github.com/hyperspell/hyperspell-mcp/cmd"
	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/config"
	"github.com/hyperspell/hyperspell-mcp/internal/format"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/hyperspell/hyperspell-mcp/internal/record"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the collection extension.
type Extension struct {
	svc *adapter.Service
	cfg config.ServerConfig
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "collection".
func (e *Extension) Name() string { return "collection" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns collections and collection.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newCollectionsCmd(),
		e.newCollectionCmd(),
	}
}

func (e *Extension) newCollectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List collections",
		Long:  adapter.DescListCollections + ".",
		Args:  cobra.NoArgs,
		RunE:  e.runCollections,
	}
}

func (e *Extension) runCollections(c *cobra.Command, _ []string) error {
	var cols []record.Collection
	err := cmd.Call(c, "list", "", func(ctx context.Context, l *log.Builder) error {
		var err error
		cols, err = e.svc.ListCollections(ctx)
		l.Detail("count", len(cols))
		return err
	})
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(cols)
	}
	return format.Collections(cmd.Out(), cols)
}

func (e *Extension) newCollectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collection [name]",
		Short: "List the documents in a collection",
		Long:  adapter.DescGetCollection + ". Defaults to the configured collection.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  e.runCollection,
	}
}

func (e *Extension) runCollection(c *cobra.Command, args []string) error {
	name := e.cfg.Collection
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return cmd.PrintJSONError(fmt.Errorf("%w: no collection given and none configured", adapter.ErrInvalidInput))
	}

	var docs []record.Document
	err := cmd.Call(c, "list", name, func(ctx context.Context, l *log.Builder) error {
		var err error
		docs, err = e.svc.GetCollection(ctx, name)
		l.Detail("count", len(docs))
		return err
	})
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(docs)
	}
	return format.Documents(cmd.Out(), docs)
}
