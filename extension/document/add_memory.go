// add_memory.go implements the "add-memory" command. The text comes from the
// argument, or from stdin when the argument is "-".

package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperspell/hyperspell-mcp/cmd"
	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/format"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/hyperspell/hyperspell-mcp/internal/record"
	"github.com/spf13/cobra"
)

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

func (e *Extension) newAddMemoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add-memory <text|->",
		Short: "Store a memory in Hyperspell",
		Long:  adapter.DescAddMemory + `. Use "-" to read the text from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runAddMemory,
	}
	c.Flags().StringP(extension.FlagTitle, "t", "", "Memory title")
	c.Flags().StringP(extension.FlagCollection, "c", "", "Collection to add to (default: configured collection)")
	return c
}

func (e *Extension) runAddMemory(c *cobra.Command, args []string) error {
	title, _ := c.Flags().GetString(extension.FlagTitle)
	collection, _ := c.Flags().GetString(extension.FlagCollection)

	text := args[0]
	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read stdin: %w", err))
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return cmd.PrintJSONError(fmt.Errorf("%w: memory text is empty", adapter.ErrInvalidInput))
	}

	var status record.DocumentStatus
	err := cmd.Call(c, "add", title, func(ctx context.Context, l *log.Builder) error {
		var err error
		status, err = e.svc.AddMemory(ctx, text, title, collection)
		l.Detail("collection", collection).Detail("length", len(text))
		return err
	})
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(status)
	}
	return format.Status(cmd.Out(), status)
}
