/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// render.go prints markdown, rendered with glamour when stdout is a terminal
// and raw otherwise so pipes and LLM hosts get plain text.

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintMarkdown writes content to the output writer. raw disables rendering.
func PrintMarkdown(content string, raw bool) {
	if !raw && isTerminal() {
		rendered, err := glamour.Render(content, "dark")
		if err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprint(out, content)
}
