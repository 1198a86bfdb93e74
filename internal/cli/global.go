// Package cli provides global state and utilities for CLI commands.
package cli

import (
	"sync"

	"github.com/spf13/cobra"

	"github.com/chazuruo/resub/internal/config"
)

var (
	// NoTUI indicates that TUI/interactive mode should be disabled.
	// This is set by the global --no-tui flag.
	NoTUI bool

	// noTUIMutex protects NoTUI for concurrent access.
	noTUIMutex sync.RWMutex
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoTUI, "no-tui", false,
		"disable TUI/interactive mode; use plain text or JSON output")
}

// IsNoTUI returns true if TUI mode is disabled.
func IsNoTUI() bool {
	noTUIMutex.RLock()
	defer noTUIMutex.RUnlock()
	return NoTUI
}

// loadConfig loads the tool configuration from an explicit path, or from
// the XDG default location (falling back to defaults) when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadWithDefaults()
}
