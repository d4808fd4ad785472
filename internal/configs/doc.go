// Package configs manages projfold configuration.
//
// Configuration is stored in TOML at <UserConfigDir>/projfold/config.toml.
// The location can be overridden with the PROJFOLD_CONFIG environment
// variable or the --config flag.
//
// # Configuration File
//
//	base_path       = "/Volumes/base/projects"
//	template_origin = "11 Current/00 Additional Folders"
//	project_pattern = "[0-9][0-9]-[0-9][0-9][0-9][0-9][0-9]*"
//	audit_log       = ""   # defaults to <data dir>/projfold/audit.jsonl
//
//	[database]
//	driver = "sqlite"      # or "redis"
//	path   = ""            # sqlite file, defaults to <data dir>/projfold/records.db
//	addr   = "localhost:6379"
//	prefix = "projfold"
//
//	[templates.awarded]
//	folders = ["03 Contract", "04 Deliverables", ...]
//
// # Environment
//
// PROJECT_BASE_PATH overrides base_path when set. A missing config file is
// not an error; defaults are returned.
//
// # Settings
//
// UserSettings holds the per-user directories resolved at startup
// (config, data, username). Tests replace ProjfoldSettings with temporary
// directories.
package configs
