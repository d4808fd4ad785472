package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/spf13/cobra"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Prints the configuration projfold uses after defaults and the
PROJECT_BASE_PATH override are applied. The Redis password is masked.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config show command")
	path := resolveConfigPath()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(formatError(err))
		return err
	}

	if cfg.Database.Password != "" {
		cfg.Database.Password = "********"
	}

	fmt.Printf("# %s\n", ui.Path.Sprint(path))
	if _, statErr := os.Stat(path); statErr != nil {
		fmt.Println("# file not found, showing defaults")
	}
	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		return Logger.ErrorfAndReturn("Failed to encode config: %v", err)
	}
	return nil
}
