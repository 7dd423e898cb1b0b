// get.go implements the "document" command.

package document

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hyperspell/hyperspell-mcp/cmd"
	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/format"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/hyperspell/hyperspell-mcp/internal/record"
	"github.com/spf13/cobra"
)

func (e *Extension) newDocumentCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "document <id>",
		Short: "Show a document",
		Long:  adapter.DescGetDocument + ".",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runDocument,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}

func (e *Extension) runDocument(c *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return cmd.PrintJSONError(fmt.Errorf("%w: document id must be a positive integer, got %q", adapter.ErrInvalidInput, args[0]))
	}
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	var doc record.Document
	err = cmd.Call(c, "read", args[0], func(ctx context.Context, _ *log.Builder) error {
		var err error
		doc, err = e.svc.GetDocument(ctx, id)
		return err
	})
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(doc)
	}
	cmd.PrintMarkdown(format.Document(doc), raw)
	return nil
}
