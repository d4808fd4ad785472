package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/utils"
	"github.com/spf13/cobra"
)

var folderListCmd = &cobra.Command{
	Use:   "list <root>",
	Short: "List the project folders under a lifecycle root",
	Long: `Lists the project folders directly under a lifecycle root, sorted by name.

The root may be given as its directory name ("01 RFPs") or as an alias:
inactive, rfps, current, completed.

Only folders matching the configured project_pattern are listed, so the
template origin "11 Current/00 Additional Folders" is left out.`,
	Args: cobra.ExactArgs(1),
	RunE: runFolderList,
}

func runFolderList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting folder list command")

	root, err := parseRootArg(args[0])
	if err != nil {
		fmt.Println(formatError(err))
		return nil
	}

	spinner, cleanup := startSpinner("Listing project folders...", verbose)
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

	names, err := coordinator.ListProjectsUnderRoot(ctx, root)
	if err != nil {
		spinner.FinalMSG = formatError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	if len(names) == 0 {
		spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No project folders under " + ui.Root.Sprint(root.DirName())
		return nil
	}

	msg := ui.Tick() + " " + utils.Plural(len(names), "project", "projects") + " under " + ui.Root.Sprint(root.DirName()) + ":\n"
	for _, name := range names {
		msg += "    " + name + "\n"
	}
	spinner.FinalMSG = msg
	return nil
}
