package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/spf13/cobra"
)

var projectImpactCmd = &cobra.Command{
	Use:   "impact <project-id> <status>",
	Short: "Show the proposals affected by a status change",
	Long: `Lists the proposals that reference a project and the proposal status
the new project status suggests. Nothing is changed.

Lost and Cancelled suggest the same proposal status; Awarded and Active
suggest Awarded. Other statuses suggest nothing.`,
	Args: cobra.ExactArgs(2),
	RunE: runProjectImpact,
}

func runProjectImpact(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting project impact command")
	id := projectIDArg(args[0])

	status, err := parseStatusArg(args[1])
	if err != nil {
		fmt.Println(formatError(err))
		return nil
	}

	spinner, cleanup := startSpinner("Analyzing impact...", verbose)
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

	im, err := coordinator.AnalyzeStatusChangeImpact(ctx, id, status)
	if err != nil {
		spinner.FinalMSG = formatError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	msg := ""
	for _, line := range im.Lines() {
		msg += line + "\n"
	}
	if im.HasSuggestion() {
		msg += ui.Arrow() + " " + ui.Code.Sprint(fmt.Sprintf("projfold project status %s %q --apply-proposals", id, status)) +
			" sets them to " + ui.Status.Sprint(im.Suggested)
	}
	spinner.FinalMSG = msg
	return nil
}
