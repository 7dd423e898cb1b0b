// Package search provides the search command.
// Registers commands: search.
package search

import (
	"context"
	"strings"

	"github.com/hyperspell/hyperspell-mcp/cmd"
	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/format"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/hyperspell/hyperspell-mcp/internal/record"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc *adapter.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service for search operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newSearchCmd()}
}

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search documents",
		Long: adapter.DescSearch + `.

Words are joined into a single query. Without --collection the configured
collection is searched, or every collection when none is configured.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().StringSliceP(extension.FlagCollection, "c", nil, "Collections to search (repeatable)")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	collections, _ := c.Flags().GetStringSlice(extension.FlagCollection)

	var docs []record.Document
	err := cmd.Call(c, "search", strings.Join(collections, ","), func(ctx context.Context, l *log.Builder) error {
		var err error
		docs, err = e.svc.Search(ctx, query, collections)
		l.Detail("query", query).Detail("count", len(docs))
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
