package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/utils"
	"github.com/PolarWolf314/projfold/internal/workflows"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	statusDryRun         bool
	statusYes            bool
	statusApplyProposals bool
)

func init() {
	projectStatusCmd.Flags().BoolVar(&statusDryRun, "dry-run", false, "show the change without applying it")
	projectStatusCmd.Flags().BoolVarP(&statusYes, "yes", "y", false, "apply without asking for confirmation")
	projectStatusCmd.Flags().BoolVar(&statusApplyProposals, "apply-proposals", false, "also set the suggested status on affected proposals")
}

func resetProjectStatusState() {
	statusDryRun = false
	statusYes = false
	statusApplyProposals = false
}

var projectStatusCmd = &cobra.Command{
	Use:   "status <project-id> <status>",
	Short: "Change a project's status and move its folder",
	Long: `Changes the status of a project record and moves the project folder to
the lifecycle root of the new status.

The change is previewed first: the folder move, any template folders an
award adds, and the proposals that reference the project. It is applied
after you confirm, or straight away with --yes. Outside a terminal --yes is
required.

The folder is moved before the record is written. If the write fails the
folder stays in its new place and the command says so; running the same
command again saves the status without moving anything.

Examples:
  projfold project status 25-97105 Awarded
  projfold project status 25-97105 Lost --apply-proposals --yes
  projfold project status 25-97105 Completed --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runProjectStatus,
}

func runProjectStatus(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting project status command")
	id := projectIDArg(args[0])

	status, err := parseStatusArg(args[1])
	if err != nil {
		fmt.Println(formatError(err))
		return nil
	}
	Logger.Debugf("Changing %s to %s (dry-run=%t, yes=%t, apply-proposals=%t)", id, status, statusDryRun, statusYes, statusApplyProposals)

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

	if statusDryRun {
		preview, err := coordinator.PreviewStatusChange(ctx, id, status)
		if err != nil {
			fmt.Println(formatError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}
		printStatusPreview(preview)
		fmt.Println(ui.Info.Sprint("ℹ") + " Dry run: nothing was changed")
		return nil
	}

	// The spinner starts once the change is confirmed.
	var s *spinner.Spinner
	cleanup := func() {}
	defer func() { cleanup() }()

	confirmChange := func(preview *workflows.Preview) (bool, error) {
		printStatusPreview(preview)
		if !statusYes {
			if !canPrompt() {
				fmt.Println(ui.Cross() + " Not running in a terminal\n" +
					ui.Arrow() + " Re-run with " + ui.Code.Sprint("--yes") + " to apply the change")
				return false, nil
			}
			ok, err := confirm("Apply this change?")
			if err != nil || !ok {
				return false, err
			}
		}
		s, cleanup = startSpinner("Applying status change...", verbose)
		return true, nil
	}

	finish := func(msg string) {
		if s != nil {
			s.FinalMSG = msg
			return
		}
		fmt.Println(strings.TrimSuffix(msg, "\n"))
	}

	opts := workflows.ApplyOptions{ApplyProposalSuggestion: statusApplyProposals}
	result, err := coordinator.ChangeStatus(ctx, id, status, confirmChange, opts)
	if errors.Is(err, perrors.ErrChangeDeclined) {
		if canPrompt() {
			finish(ui.Warning.Sprint("⚠") + " Status change cancelled")
		}
		return nil
	}
	if err != nil {
		finish(formatError(err))
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	finish(formatStatusResult(result))
	return nil
}

// printStatusPreview prints what a status change will do.
func printStatusPreview(p *workflows.Preview) {
	title := ui.Highlight.Sprint(p.Project.ID)
	if p.Project.Name != "" {
		title += " " + p.Project.Name
	}
	fmt.Println(title)
	fmt.Printf("  Status:    %s → %s\n", ui.Status.Sprint(p.Transition.From), ui.Status.Sprint(p.Transition.To))

	switch p.Action {
	case workflows.ActionMove:
		fmt.Printf("  Folder:    %s\n", ui.Path.Sprint(p.Location.Path))
		fmt.Printf("          →  %s\n", ui.Path.Sprint(p.Destination))
	case workflows.ActionAlreadyInPlace:
		fmt.Printf("  Folder:    already under %s %s\n", ui.Root.Sprint(p.Transition.ToRoot.DirName()), ui.Muted.Sprint(p.Location.Path))
	case workflows.ActionNone:
		fmt.Printf("  Folder:    stays under %s\n", ui.Root.Sprint(p.Transition.ToRoot.DirName()))
	}

	if p.ProvisionsTemplates() {
		switch {
		case p.Templates == nil:
			fmt.Println("  Templates: award template folders will be added")
		case len(p.Templates.Copied) > 0:
			fmt.Printf("  Templates: add %s (%s)\n", utils.Plural(len(p.Templates.Copied), "folder", "folders"), strings.Join(p.Templates.Copied, ", "))
		default:
			fmt.Println("  Templates: already present")
		}
		if p.Templates != nil && len(p.Templates.Missing) > 0 {
			fmt.Printf("  %s Missing from the template origin: %s\n", ui.Warning.Sprint("⚠"), strings.Join(p.Templates.Missing, ", "))
		}
	}

	if p.Impact != nil {
		for i, line := range p.Impact.Lines() {
			if i == 0 {
				fmt.Printf("  Proposals: %s\n", line)
				continue
			}
			fmt.Printf("  %s\n", line)
		}
	}
}

// formatStatusResult describes an applied status change.
func formatStatusResult(result *workflows.ApplyResult) string {
	p := result.Preview
	var msg strings.Builder

	msg.WriteString(ui.Tick() + " " + ui.Highlight.Sprint(p.Project.ID) + " is now " + ui.Status.Sprint(p.Transition.To) + "\n")
	switch p.Action {
	case workflows.ActionMove:
		msg.WriteString("    moved to " + ui.Path.Sprint(result.NewPath) + "\n")
	case workflows.ActionAlreadyInPlace:
		msg.WriteString("    folder was already at " + ui.Path.Sprint(result.NewPath) + "\n")
	}

	msg.WriteString(formatProvisionOutcome(p.Project.ID, result.Provision, result.ProvisionErr))

	if len(result.ProposalsUpdated) > 0 {
		msg.WriteString(ui.Tick() + " Set " + utils.Plural(len(result.ProposalsUpdated), "proposal", "proposals") +
			" to " + ui.Status.Sprint(p.Impact.Suggested) + "\n")
	}
	if result.ProposalErr != nil {
		msg.WriteString(ui.Warning.Sprint("⚠") + " " + result.ProposalErr.Error() + "\n")
	}
	if !statusApplyProposals && p.Impact != nil && p.Impact.HasSuggestion() {
		msg.WriteString(ui.Arrow() + " " + utils.Plural(len(p.Impact.Changes()), "proposal", "proposals") +
			" could be set to " + ui.Status.Sprint(p.Impact.Suggested) + "; re-run with " + ui.Code.Sprint("--apply-proposals") + "\n")
	}
	return msg.String()
}
