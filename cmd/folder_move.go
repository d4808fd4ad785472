package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/projfold/internal/folders"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/utils"
	"github.com/spf13/cobra"
)

var (
	moveDryRun bool
	moveForce  bool
)

func init() {
	folderMoveCmd.Flags().BoolVar(&moveDryRun, "dry-run", false, "show what would be moved without moving it")
	folderMoveCmd.Flags().BoolVarP(&moveForce, "force", "f", false, "move without asking for confirmation")
}

func resetFolderMoveState() {
	moveDryRun = false
	moveForce = false
}

var folderMoveCmd = &cobra.Command{
	Use:   "move <project-id> <from-root> <to-root>",
	Short: "Move a project folder between lifecycle roots",
	Long: `Moves a project folder from one lifecycle root to another without
changing the project record.

The folder must currently be under <from-root>. Moving into the root it is
already in does nothing. A folder of the same name under <to-root> stops the
move and nothing is changed. Moving from "01 RFPs" to "11 Current" also
copies the award template folders into the project.

Prefer 'projfold project status' so the record and the folder stay in step.

Examples:
  projfold folder move 25-97105 rfps current
  projfold folder move 25-97105 "11 Current" "99 Completed" --force
  projfold folder move 25-97105 current inactive --dry-run`,
	Args: cobra.ExactArgs(3),
	RunE: runFolderMove,
}

func runFolderMove(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting folder move command")
	id := projectIDArg(args[0])

	from, err := parseRootArg(args[1])
	if err != nil {
		fmt.Println(formatError(err))
		return nil
	}
	to, err := parseRootArg(args[2])
	if err != nil {
		fmt.Println(formatError(err))
		return nil
	}
	Logger.Debugf("Moving %s from %s to %s (dry-run=%t, force=%t)", id, from, to, moveDryRun, moveForce)

	ctx := context.Background()
	coordinator, err := openCoordinator(ctx)
	if err != nil {
		fmt.Println(formatError(err))
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	defer closeCoordinator(coordinator)

	loc, dest, err := coordinator.PreviewMoveProjectFolder(ctx, id, from, to)
	if err != nil {
		fmt.Println(formatError(err))
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	if from == to {
		fmt.Println(ui.Info.Sprint("ℹ") + " " + ui.Highlight.Sprint(id) + " is already under " + ui.Root.Sprint(to.DirName()) + "; nothing to move")
		return nil
	}

	fmt.Printf("%s %s\n", ui.Highlight.Sprint(id), ui.Muted.Sprint(loc.Name))
	fmt.Printf("  From: %s\n", ui.Path.Sprint(loc.Path))
	fmt.Printf("  To:   %s\n", ui.Path.Sprint(dest))
	if lifecycle.IsAward(from, to) {
		fmt.Printf("  Award template folders will be added\n")
	}

	if moveDryRun {
		fmt.Println(ui.Info.Sprint("ℹ") + " Dry run: nothing was moved")
		return nil
	}

	if !moveForce {
		if !canPrompt() {
			fmt.Println(ui.Cross() + " Refusing to move without confirmation\n" +
				ui.Arrow() + " Re-run with " + ui.Code.Sprint("--force") + " when not in a terminal")
			return nil
		}
		ok, err := confirm("Move this folder?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(ui.Warning.Sprint("⚠") + " Move cancelled")
			return nil
		}
	}

	spinner, cleanup := startSpinner("Moving project folder...", verbose)
	defer cleanup()

	result, err := coordinator.MoveProjectFolder(ctx, id, from, to)
	if err != nil {
		spinner.FinalMSG = formatError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	msg := ui.Tick() + " Moved " + ui.Highlight.Sprint(id) + " from " + ui.Root.Sprint(from.DirName()) + " to " + ui.Root.Sprint(to.DirName()) + "\n" +
		"    " + ui.Path.Sprint(result.NewPath) + "\n"
	msg += formatProvisionOutcome(id, result.Provision, result.ProvisionErr)
	spinner.FinalMSG = msg
	return nil
}

// formatProvisionOutcome describes template provisioning that followed a move.
// Provisioning failures are reported as warnings; the move itself stands.
func formatProvisionOutcome(id string, result *folders.ProvisionResult, err error) string {
	if result == nil && err == nil {
		return ""
	}

	var msg strings.Builder
	if result != nil && len(result.Copied) > 0 {
		msg.WriteString(ui.Tick() + " Added " + utils.Plural(len(result.Copied), "template folder", "template folders") +
			": " + strings.Join(result.Copied, ", ") + "\n")
	}
	if err != nil {
		msg.WriteString(ui.Warning.Sprint("⚠") + " Template folders were not fully provisioned: " + err.Error() + "\n")
		msg.WriteString(ui.Arrow() + " Run " + ui.Code.Sprint("projfold folder provision "+id) + " to retry\n")
	}
	return msg.String()
}
