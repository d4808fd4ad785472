package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
)

const (
	// DefaultTemplateSet is provisioned when a project is awarded.
	DefaultTemplateSet = "awarded"

	DefaultTemplateOrigin = "11 Current/00 Additional Folders"
	DefaultProjectPattern = "[0-9][0-9]-[0-9][0-9][0-9][0-9][0-9]*"

	DriverSQLite = "sqlite"
	DriverRedis  = "redis"

	// BasePathEnv overrides Config.BasePath.
	BasePathEnv = "PROJECT_BASE_PATH"
)

// DefaultAwardedFolders are the template folders copied into a newly awarded project.
var DefaultAwardedFolders = []string{
	"03 Contract",
	"04 Deliverables",
	"05 Submittals",
	"11 SubContractors",
	"98 Outgoing",
	"99 Temp",
}

type Config struct {
	BasePath       string                       `toml:"base_path"`
	TemplateOrigin string                       `toml:"template_origin"`
	ProjectPattern string                       `toml:"project_pattern"`
	AuditLog       string                       `toml:"audit_log"`
	Database       DatabaseConfig               `toml:"database"`
	Templates      map[string]TemplateSetConfig `toml:"templates"`

	// UnknownKeys lists keys in the file that are not recognised.
	UnknownKeys []string `toml:"-"`
}

type DatabaseConfig struct {
	Driver   string `toml:"driver"`
	Path     string `toml:"path"`
	Addr     string `toml:"addr"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type TemplateSetConfig struct {
	Folders []string `toml:"folders"`
}

// DefaultConfig returns a configuration with every optional field populated.
func DefaultConfig() *Config {
	return &Config{
		TemplateOrigin: DefaultTemplateOrigin,
		ProjectPattern: DefaultProjectPattern,
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Addr:   "localhost:6379",
			Prefix: "projfold",
		},
		Templates: map[string]TemplateSetConfig{
			DefaultTemplateSet: {Folders: append([]string(nil), DefaultAwardedFolders...)},
		},
	}
}

// LoadConfig reads the config file at path and applies defaults and the
// environment override. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		unknown, err := LoadTOML(path, config)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		config.UnknownKeys = unknown
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the configuration to path.
func SaveConfig(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.TemplateOrigin == "" {
		c.TemplateOrigin = DefaultTemplateOrigin
	}
	if c.ProjectPattern == "" {
		c.ProjectPattern = DefaultProjectPattern
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Prefix == "" {
		c.Database.Prefix = "projfold"
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		c.Database.Path = filepath.Join(ProjfoldSettings.UserDataPath, "records.db")
	}
	if c.AuditLog == "" {
		c.AuditLog = filepath.Join(ProjfoldSettings.UserDataPath, "audit.jsonl")
	}
	if c.Templates == nil {
		c.Templates = map[string]TemplateSetConfig{}
	}
	if _, ok := c.Templates[DefaultTemplateSet]; !ok {
		c.Templates[DefaultTemplateSet] = TemplateSetConfig{Folders: append([]string(nil), DefaultAwardedFolders...)}
	}
}

func (c *Config) applyEnv() {
	if p := os.Getenv(BasePathEnv); p != "" {
		c.BasePath = p
	}
}

// Validate checks fields that would otherwise fail much later.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("%w: %q", perrors.ErrUnknownDriver, c.Database.Driver)
	}
	if filepath.IsAbs(c.TemplateOrigin) {
		return fmt.Errorf("template_origin must be relative to base_path, got %q", c.TemplateOrigin)
	}
	for name, set := range c.Templates {
		for _, folder := range set.Folders {
			if folder == "" || strings.ContainsAny(folder, `/\`) {
				return fmt.Errorf("template set %q: invalid folder name %q", name, folder)
			}
		}
	}
	return nil
}

// ResolveBasePath returns the configured base path or ErrBasePathNotConfigured.
func (c *Config) ResolveBasePath() (string, error) {
	if strings.TrimSpace(c.BasePath) == "" {
		return "", fmt.Errorf("%w: set base_path in the config file or %s", perrors.ErrBasePathNotConfigured, BasePathEnv)
	}
	return filepath.Clean(c.BasePath), nil
}

// TemplateFolders returns the folder names of a named template set.
func (c *Config) TemplateFolders(name string) ([]string, error) {
	set, ok := c.Templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (configured: %s)", perrors.ErrUnknownTemplateSet, name, strings.Join(c.TemplateSetNames(), ", "))
	}
	return append([]string(nil), set.Folders...), nil
}

// TemplateSetNames returns the configured template set names, sorted.
func (c *Config) TemplateSetNames() []string {
	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
