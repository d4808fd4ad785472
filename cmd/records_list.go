package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/spf13/cobra"
)

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project and proposal records",
	Args:  cobra.NoArgs,
	RunE:  runRecordsList,
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting records list command")

	spinner, cleanup := startSpinner("Loading records...", verbose)
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

	records, err := coordinator.ListRecords(ctx)
	if err != nil {
		spinner.FinalMSG = formatError(err)
		return err
	}

	if len(records.Projects) == 0 && len(records.Proposals) == 0 {
		spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No records found\n" +
			ui.Arrow() + " Import some with " + ui.Code.Sprint("projfold records import <file>")
		return nil
	}

	msg := ""
	if len(records.Projects) > 0 {
		msg += "Projects:\n"
		for _, p := range records.Projects {
			msg += fmt.Sprintf("  %-10s  %-12s  %s\n", p.ID, p.Status, p.Name)
		}
	}
	if len(records.Proposals) > 0 {
		if msg != "" {
			msg += "\n"
		}
		msg += "Proposals:\n"
		for _, p := range records.Proposals {
			msg += fmt.Sprintf("  %-10s  %-10s  %-14s  %s\n", p.ID, p.ProjectRef, p.Status, p.Name)
		}
	}
	spinner.FinalMSG = msg
	return nil
}
