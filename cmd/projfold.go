package cmd

import (
	"context"
	"os"

	"github.com/PolarWolf314/projfold/internal/configs"
	logger "github.com/PolarWolf314/projfold/internal/logging"
	"github.com/PolarWolf314/projfold/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger
)

// Commands returns every top-level command for the root command to register.
func Commands() []*cobra.Command {
	return []*cobra.Command{FolderCmd, ProjectCmd, RecordsCmd, ConfigCmd, LogCmd}
}

// addPersistentFlags registers the flags shared by every command group.
func addPersistentFlags(c *cobra.Command) {
	c.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	c.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	c.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file (default "+configs.DefaultConfigPath()+")")
}

// initLogger is the PersistentPreRun of every command group.
func initLogger(cmd *cobra.Command, args []string) {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
}

// resolveConfigPath returns --config when set, otherwise the default location.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return configs.DefaultConfigPath()
}

// loadConfig reads the config file and warns about keys it does not know.
func loadConfig() (*configs.Config, error) {
	path := resolveConfigPath()
	Logger.Debugf("Loading config from %s", path)

	cfg, err := configs.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	for _, key := range cfg.UnknownKeys {
		Logger.Warnf("Unknown config key %q in %s", key, path)
	}
	return cfg, nil
}

// openCoordinator loads the config and opens the record store.
// The caller must Close the coordinator.
func openCoordinator(ctx context.Context) (*workflows.Coordinator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return workflows.NewFromConfig(ctx, cfg, Logger)
}

// closeCoordinator closes the record store and logs a failure.
func closeCoordinator(c *workflows.Coordinator) {
	if err := c.Close(); err != nil {
		Logger.Warnf("Failed to close record store: %v", err)
	}
}

// Helper functions for testing

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetConfigPath sets the config file path for testing.
func SetConfigPath(p string) {
	configPath = p
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	resetCommandFlags()
	resetPromptInput()
	checkExitFunc = os.Exit
}

// resetCommandFlags resets every flag variable and the cobra flag state.
func resetCommandFlags() {
	verbose = false
	debug = false
	configPath = ""
	resetFolderCommandState()
	resetProjectCommandState()
	resetConfigCommandState()
	resetLogCommandState()
	for _, c := range Commands() {
		resetCobraFlagState(c)
	}
}

// resetCobraFlagState clears the Changed mark on every flag of c and its subcommands.
func resetCobraFlagState(c *cobra.Command) {
	visit := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(visit)
	c.PersistentFlags().VisitAll(visit)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
