package configs

import (
	"os"
	"path/filepath"

	"github.com/PolarWolf314/projfold/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
	Username        string
}

var ProjfoldSettings *UserSettings

func init() {
	ProjfoldSettings = defaultUserSettings()
}

func defaultUserSettings() *UserSettings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(homeDir, ".config")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	return &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "projfold"),
		UserDataPath:    filepath.Join(dataDir, "projfold"),
		Username:        username,
	}
}

// DefaultConfigPath returns the config file location, honouring PROJFOLD_CONFIG.
func DefaultConfigPath() string {
	if p := os.Getenv("PROJFOLD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ProjfoldSettings.UserConfigsPath, "config.toml")
}
