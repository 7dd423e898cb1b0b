/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than
// touching the variables or cobra directly.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/config"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output  string
	envFile string
	verbose bool
)

// out is the output writer for commands. Tests replace it to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// EnvFile returns the dotenv file consulted when loading configuration.
func EnvFile() string { return envFile }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints err as an Error record if output is JSON and marks
// it as printed so Execute does not report it twice. Otherwise err is
// returned unchanged.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(adapter.Describe(err))
	return errPrinted{err}
}

// errPrinted marks an error that has already been reported as JSON. The
// command still fails, but Cobra does not print it again.
type errPrinted struct{ error }

func (e errPrinted) Unwrap() error { return e.error }

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Dotenv file to read settings from")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API requests to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
