// add_file.go implements the "add-file" command. Several URLs may be given;
// each is submitted separately and a failure does not stop the rest.

package document

import (
	"context"
	"fmt"

	"github.com/hyperspell/hyperspell-mcp/cmd"
	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/format"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/hyperspell/hyperspell-mcp/internal/progress"
	"github.com/hyperspell/hyperspell-mcp/internal/record"
	"github.com/spf13/cobra"
)

// addFileResult is one line of add-file JSON output.
type addFileResult struct {
	URL    string                 `json:"url"`
	Status *record.DocumentStatus `json:"status,omitempty"`
	Error  *record.Error          `json:"error,omitempty"`
}

func (e *Extension) newAddFileCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add-file <url>...",
		Short: "Add files to Hyperspell by URL",
		Long:  adapter.DescAddFile + ".",
		Args:  cobra.MinimumNArgs(1),
		RunE:  e.runAddFile,
	}
	c.Flags().StringP(extension.FlagCollection, "c", "", "Collection to add to (default: configured collection)")
	return c
}

func (e *Extension) runAddFile(c *cobra.Command, args []string) error {
	collection, _ := c.Flags().GetString(extension.FlagCollection)

	results := make([]addFileResult, 0, len(args))
	p := progress.New("Adding", len(args))
	for _, url := range args {
		var status record.DocumentStatus
		err := cmd.Call(c, "add", url, func(ctx context.Context, l *log.Builder) error {
			var err error
			status, err = e.svc.AddFile(ctx, url, collection)
			l.Detail("collection", collection)
			return err
		})
		p.Increment(err)

		r := addFileResult{URL: url}
		if err != nil {
			d := adapter.Describe(err)
			r.Error = &d
		} else {
			r.Status = &status
		}
		results = append(results, r)
	}
	p.Done()

	if cmd.JSON() {
		if err := cmd.PrintJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Error != nil {
				fmt.Fprintf(cmd.Out(), "%s  %s: %s\n", r.URL, r.Error.Kind, r.Error.Message)
				continue
			}
			if err := format.Status(cmd.Out(), *r.Status); err != nil {
				return err
			}
		}
	}

	if n := p.Failed(); n > 0 {
		return fmt.Errorf("add-file: %d of %d failed", n, len(args))
	}
	return nil
}
