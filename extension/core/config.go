// config.go implements the "config" command for the YAML configuration file.
//
// Config follows a cascade model similar to git: local config
// (.hyperspell/config.yaml) takes precedence over global
// (~/.hyperspell/config.yaml). --local forces the local file even if it
// doesn't exist yet. Environment variables and .env still override whatever
// the file holds.

package core

import (
	"fmt"
	"sort"

	"github.com/hyperspell/hyperspell-mcp/cmd"
	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/internal/config"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  hyperspell-mcp config                      # show config (token masked)
  hyperspell-mcp config collection           # show collection value
  hyperspell-mcp config collection notes     # set collection
  hyperspell-mcp config use_resources both   # expose tools and resources

Keys: token, use_resources, collection, api.base_url, api.timeout

Configuration locations:
  Global: ~/.hyperspell/config.yaml
  Local:  .hyperspell/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.hyperspell/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}
	scope := cfg.Scope().String()

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("cli:config", "list").Detail("scope", scope).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		key := args[0]
		v, err := cfg.Get(key)
		log.Event("cli:config", "get").Detail("key", key).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", key, err))
		}
		if key == "token" {
			v = config.MaskToken(v)
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{key: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		key := args[0]
		if err := cfg.Set(key, args[1]); err != nil {
			log.Event("cli:config", "set").Detail("key", key).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", key, err))
		}

		saveErr := cfg.Save()
		// The value is not logged; it may be the token.
		log.Event("cli:config", "set").Detail("key", key).Detail("scope", scope).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}

		shown, _ := cfg.Get(key)
		if key == "token" {
			shown = config.MaskToken(shown)
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": key, "value": shown, "scope": scope, "path": cfg.Path()})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", key, shown, scope)
	}
	return nil
}
