package cmd

import (
	"context"

	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/spf13/cobra"
)

var folderValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the base path and lifecycle roots exist",
	Long: `Checks that the configured project base path exists and reports which
lifecycle roots and the template origin are present.

The base path comes from base_path in the config file, or from the
PROJECT_BASE_PATH environment variable when it is set.`,
	Args: cobra.NoArgs,
	RunE: runFolderValidate,
}

func runFolderValidate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting folder validate command")

	spinner, cleanup := startSpinner("Checking base path...", verbose)
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

	validation, err := coordinator.ValidateBasePathConfigured()
	if err != nil {
		spinner.FinalMSG = formatError(err)
		return err
	}

	msg := "Base path: " + ui.Path.Sprint(validation.BasePath) + "\n"
	for _, root := range validation.Roots {
		if root.Exists {
			msg += ui.Tick() + " " + ui.Root.Sprint(root.Root.DirName()) + "\n"
		} else {
			msg += ui.Cross() + " " + ui.Root.Sprint(root.Root.DirName()) + " is missing\n"
		}
	}
	if validation.TemplateOriginExists {
		msg += ui.Tick() + " Template origin " + ui.Path.Sprint(validation.TemplateOrigin) + "\n"
	} else {
		msg += ui.Warning.Sprint("⚠") + " Template origin " + ui.Path.Sprint(validation.TemplateOrigin) + " is missing; awarded projects will not get template folders\n"
	}

	if validation.Healthy() {
		msg += ui.Tick() + " Base path is ready"
	} else if missing := validation.MissingRoots(); len(missing) > 0 {
		msg += ui.Arrow() + " Create the missing roots under " + ui.Path.Sprint(validation.BasePath)
	}
	spinner.FinalMSG = msg
	return nil
}
