/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until the first
// command that needs the API runs. The configuration is loaded and the
// service is created once, then shared with every extension via the Context.

package cmd

import (
	"sync"

	"github.com/hyperspell/hyperspell-mcp/extension"
	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/config"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/hyperspell/hyperspell-mcp/internal/version"
)

// offlineCommands lists commands that run without loading the server
// configuration. Built from extension declarations.
var offlineCommands map[string]bool

func buildOfflineCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if o, ok := ext.(extension.Offline); ok {
			for _, name := range o.OfflineCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads the configuration, builds the API client and service,
// and injects them into every Initializable extension.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.LoadServer(EnvFile())
		if err != nil {
			initErr = err
			return
		}

		log.SetAccount(cfg.APIKey)

		client := adapter.NewClient(cfg, version.UserAgent())
		extContext = extension.NewContext(adapter.New(client, cfg), cfg)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = err
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		offlineCommands = buildOfflineCommands()
	})
}
