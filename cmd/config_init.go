package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/projfold/internal/configs"
	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configInitBasePath string
	configInitDriver   string
	configInitDBPath   string
	configInitAddr     string
	configInitForce    bool
)

func init() {
	configInitCmd.Flags().StringVarP(&configInitBasePath, "base-path", "b", "", "directory holding the lifecycle roots")
	configInitCmd.Flags().StringVar(&configInitDriver, "driver", configs.DriverSQLite, "record store driver (sqlite or redis)")
	configInitCmd.Flags().StringVar(&configInitDBPath, "db-path", "", "SQLite database file")
	configInitCmd.Flags().StringVar(&configInitAddr, "redis-addr", "", "Redis address (host:port)")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitBasePath = ""
	configInitDriver = configs.DriverSQLite
	configInitDBPath = ""
	configInitAddr = ""
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the projfold config file",
	Long: `Writes a config file with the project base path and record store settings.

The base path is asked for when --base-path is not given and projfold runs
in a terminal. An existing config file is only replaced with --force.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// promptForInput prompts the user for input with an optional default value.
func promptForInput(reader *bufio.Reader, prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Printf("%s: ", prompt)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" && defaultValue != "" {
		return defaultValue, nil
	}
	return input, nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config init command")
	path := resolveConfigPath()

	exists, err := utils.PathExists(path)
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to check config file %s: %v", path, err)
	}
	if exists && !configInitForce {
		fmt.Println(ui.Info.Sprint("ℹ") + " Config file already exists at " + ui.Path.Sprint(path) + "\n" +
			ui.Arrow() + " Use " + ui.Code.Sprint("--force") + " to replace it, or " + ui.Code.Sprint("projfold config show") + " to see it")
		return nil
	}

	basePath := configInitBasePath
	if basePath == "" {
		if !canPrompt() {
			fmt.Println(ui.Cross() + " No base path given\n" +
				ui.Arrow() + " Re-run with " + ui.Code.Sprint("--base-path <path>"))
			return nil
		}
		fmt.Println(color.CyanString("Welcome to projfold!") + " Let's point it at your project folders.\n")
		basePath, err = promptForInput(bufio.NewReader(promptInput), "Project base path", os.Getenv(configs.BasePathEnv))
		if err != nil {
			return err
		}
	}

	cfg := configs.DefaultConfig()
	cfg.BasePath = basePath
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(configInitDriver))
	if configInitDBPath != "" {
		cfg.Database.Path = configInitDBPath
	}
	if configInitAddr != "" {
		cfg.Database.Addr = configInitAddr
	}

	if _, err := cfg.ResolveBasePath(); err != nil {
		fmt.Println(formatError(err))
		return nil
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(formatError(err))
		return nil
	}

	if err := configs.SaveConfig(path, cfg); err != nil {
		return Logger.ErrorfAndReturn("Failed to write config: %v", err)
	}
	Logger.Infof("Config written to %s", path)

	fmt.Println(ui.Tick() + " Wrote config to " + ui.Path.Sprint(path))
	if ok, _ := utils.DirExists(basePath); !ok {
		fmt.Println(ui.Warning.Sprint("⚠") + " Base path " + ui.Path.Sprint(basePath) + " does not exist yet")
	}
	fmt.Println(ui.Arrow() + " Run " + ui.Code.Sprint("projfold folder validate") + " to check the lifecycle roots")
	return nil
}
