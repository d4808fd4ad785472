package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage projfold configuration",
	Long: `Provides commands for creating and inspecting the projfold config file.

The config file is TOML and lives at the path printed by 'projfold config
show'. Set PROJFOLD_CONFIG or pass --config to use another file. The
PROJECT_BASE_PATH environment variable overrides base_path.

Examples:
  # Create a config file pointing at the project share
  projfold config init --base-path /srv/projects

  # Use a Redis record store
  projfold config init --base-path /srv/projects --driver redis

  # Show the effective configuration
  projfold config show`,
	PersistentPreRun: initLogger,
}

func init() {
	addPersistentFlags(ConfigCmd)

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// resetConfigCommandState resets the config command flags for testing.
func resetConfigCommandState() {
	resetConfigInitState()
}
