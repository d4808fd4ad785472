package cmd

import (
	"github.com/spf13/cobra"
)

// RecordsCmd groups the commands that manage project and proposal records.
var RecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Import and list project and proposal records",
	Long: `Manages the project and proposal records kept in the record store.

The store is SQLite by default and Redis when [database] driver = "redis".

Examples:
  # Load records from a TOML file
  projfold records import records.toml

  # Show every record
  projfold records list`,
	PersistentPreRun: initLogger,
}

func init() {
	addPersistentFlags(RecordsCmd)

	RecordsCmd.AddCommand(recordsImportCmd)
	RecordsCmd.AddCommand(recordsListCmd)
}

// GetRecordsCmd returns the RecordsCmd for testing.
func GetRecordsCmd() *cobra.Command {
	return RecordsCmd
}
