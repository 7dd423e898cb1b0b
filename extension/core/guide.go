// guide.go implements the "guide" command. Guides are embedded in the
// binary, rendered with glamour on a terminal and printed raw otherwise.

package core

import (
	"fmt"
	"strings"

	"github.com/hyperspell/hyperspell-mcp/cmd"
	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/guide"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the hyperspell-mcp usage guide",
		Long: `Outputs the hyperspell-mcp guide.

  hyperspell-mcp guide          # main guide
  hyperspell-mcp guide config   # configuration reference
  hyperspell-mcp guide tools    # MCP tools and resources`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := "guide"
			if len(args) > 0 {
				name = args[0]
			}
			raw, _ := c.Flags().GetBool(extension.FlagRaw)

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}
			cmd.PrintMarkdown(content, raw)
			return nil
		},
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}
