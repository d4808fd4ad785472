package cmd

import (
	"context"
	"strings"

	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/utils"
	"github.com/spf13/cobra"
)

var provisionSet templateSetValue

func init() {
	folderProvisionCmd.Flags().Var(&provisionSet, "set", "template set to copy")
}

func resetFolderProvisionState() {
	provisionSet = templateSetValue{}
}

var folderProvisionCmd = &cobra.Command{
	Use:   "provision <project-id|path>",
	Short: "Copy template folders into a project folder",
	Long: `Copies the folders of a template set from the template origin
("11 Current/00 Additional Folders") into a project folder.

Folders the project already has are left untouched, so running the command
again only adds what is missing. The target is located by project ID, or
used directly when it is a path.

Template sets are configured under [templates] in the config file. The
"awarded" set is used when --set is not given.

Examples:
  projfold folder provision 25-97105
  projfold folder provision "./25-97105 Hotel" --set awarded`,
	Args: cobra.ExactArgs(1),
	RunE: runFolderProvision,
}

func runFolderProvision(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting folder provision command")
	target := args[0]
	if !strings.ContainsAny(target, `/\`) && target != "." && target != ".." {
		target = projectIDArg(target)
	}

	spinner, cleanup := startSpinner("Provisioning template folders...", verbose)
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

	result, err := coordinator.ProvisionTemplates(ctx, target, provisionSet.name)
	if result == nil {
		spinner.FinalMSG = formatError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	var msg strings.Builder
	switch {
	case len(result.Copied) > 0:
		msg.WriteString(ui.Tick() + " Added " + utils.Plural(len(result.Copied), "folder", "folders") + " from set " +
			ui.Highlight.Sprint(result.Set) + " to " + ui.Path.Sprint(result.ProjectPath) + "\n")
		for _, name := range result.Copied {
			msg.WriteString("    + " + name + "\n")
		}
	case err == nil:
		msg.WriteString(ui.Tick() + " " + ui.Path.Sprint(result.ProjectPath) + " already has every folder of set " + ui.Highlight.Sprint(result.Set) + "\n")
	}
	if len(result.Skipped) > 0 {
		Logger.Infof("Already present: %s", strings.Join(result.Skipped, ", "))
	}
	for _, name := range result.Missing {
		msg.WriteString(ui.Warning.Sprint("⚠") + " " + name + " is missing from the template origin\n")
	}
	for _, failure := range result.Failed {
		msg.WriteString(ui.Cross() + " " + failure.Folder + ": " + failure.Err.Error() + "\n")
	}
	spinner.FinalMSG = msg.String()
	return err
}
