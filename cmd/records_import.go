package cmd

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/utils"
	"github.com/spf13/cobra"
)

var recordsImportCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Load project and proposal records from a TOML file",
	Long: `Reads [[projects]] and [[proposals]] tables from a TOML file and writes
them to the record store. Records with an existing ID are replaced.

Example file:

  [[projects]]
  id = "25-97105"
  name = "Hotel Tower"
  short_name = "Hotel"
  status = "RFP"

  [[proposals]]
  id = "fee-1"
  number = "P-0142"
  project = "25-97105"
  status = "Sent"`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordsImport,
}

func runRecordsImport(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting records import command")
	path := args[0]

	spinner, cleanup := startSpinner("Importing records...", verbose)
	defer cleanup()

	ctx := context.Background()
	coordinator, err := openCoordinator(ctx)
	if err != nil {
		spinner.FinalMSG = formatError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	defer closeCoordinator(coordinator)

	result, err := coordinator.ImportRecords(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			spinner.FinalMSG = ui.Cross() + " Record file " + ui.Path.Sprint(path) + " does not exist"
			return nil
		}
		spinner.FinalMSG = formatError(err)
		return err
	}

	spinner.FinalMSG = ui.Tick() + " Imported " + utils.Plural(result.Projects, "project", "projects") +
		" and " + utils.Plural(result.Proposals, "proposal", "proposals") + " from " + ui.Path.Sprint(result.SourcePath)
	if len(result.NonStandardIDs) > 0 {
		spinner.FinalMSG += "\n" + ui.Warning.Sprint("⚠") + " Not in YY-CCCNN form: " + strings.Join(result.NonStandardIDs, ", ")
	}
	return nil
}
