package cmd

import (
	"context"

	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/spf13/cobra"
)

var folderLocateCmd = &cobra.Command{
	Use:   "locate <project-id>",
	Short: "Find the folder of a project",
	Long: `Searches every lifecycle root for the folder of a project.

A folder belongs to a project when its name is the project ID or starts with
the ID followed by a space, so 25-9710 never matches "25-97105 Hotel".
Finding the folder under more than one root is reported as an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runFolderLocate,
}

func runFolderLocate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting folder locate command")
	id := projectIDArg(args[0])

	spinner, cleanup := startSpinner("Locating project folder...", verbose)
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

	loc, err := coordinator.LocateProjectFolder(ctx, id)
	if err != nil {
		spinner.FinalMSG = formatError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Tick() + " " + ui.Highlight.Sprint(loc.ProjectID) + " is under " + ui.Root.Sprint(loc.Root.DirName()) + "\n" +
		"    " + ui.Path.Sprint(loc.Path)
	return nil
}
