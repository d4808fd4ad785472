package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	checkJSONOutput bool
	// checkExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	checkExitFunc = os.Exit
)

func init() {
	projectCheckCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "output in JSON format")
}

func resetProjectCheckState() {
	checkJSONOutput = false
}

// SetCheckExitFunc sets the exit function for testing purposes.
func SetCheckExitFunc(f func(int)) {
	checkExitFunc = f
}

var projectCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare project records with the folder tree",
	Long: `Compares every project record with the folders under the base path and
reports disagreements:

  drift          the folder is under a root its status does not map to
  missing        no folder exists for the record
  inconsistent   the folder exists under more than one root
  unknown        the record has a status outside the status set
  orphan         a folder matches no record

Nothing is changed. Each problem comes with a suggested fix.

Exit codes:
  0 - Records and folders agree
  1 - Problems found

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runProjectCheck,
}

func runProjectCheck(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting project check command")

	spinner, cleanup := startSpinner("Checking records against folders...", verbose)

	ctx := context.Background()
	coordinator, err := openCoordinator(ctx)
	if err != nil {
		spinner.FinalMSG = formatError(err)
		cleanup()
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	defer closeCoordinator(coordinator)

	report, err := coordinator.CheckConsistency(ctx)
	if err != nil {
		spinner.FinalMSG = formatError(err)
		cleanup()
		return err
	}

	for _, check := range report.Checks {
		Logger.Debugf("Check %s: state=%s", check.ProjectID, check.State)
	}

	spinner.FinalMSG = ""
	if checkJSONOutput {
		cleanup()
		if err := outputCheckJSON(report); err != nil {
			return err
		}
	} else {
		problems := report.Summary.Problems()
		if problems > 0 {
			spinner.FinalMSG = ui.Cross() + " " + fmt.Sprintf("%d problem(s) found", problems)
		} else {
			spinner.FinalMSG = ui.Tick() + " Records and folders agree"
		}
		// The report is printed before the final message.
		printCheckReport(report)
		cleanup()
	}

	if report.Summary.Problems() > 0 {
		checkExitFunc(1)
	}
	return nil
}

// outputCheckJSON outputs the report as JSON.
func outputCheckJSON(report *workflows.ConsistencyReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// printCheckReport prints the problems of a consistency report.
func printCheckReport(report *workflows.ConsistencyReport) {
	for _, check := range report.Checks {
		if check.State == workflows.StateOK {
			continue
		}

		line := fmt.Sprintf("%s %-12s %s", ui.Cross(), check.State, ui.Highlight.Sprint(check.ProjectID))
		if check.Status != "" {
			line += " " + ui.Status.Sprint(check.Status)
		}
		if len(check.FoundRoots) > 0 {
			line += " under " + strings.Join(check.FoundRoots, ", ")
		}
		fmt.Println(line)
		for _, path := range check.Paths {
			fmt.Printf("    %s\n", ui.Path.Sprint(path))
		}
		if check.Suggestion != "" {
			fmt.Printf("  %s %s\n", ui.Arrow(), check.Suggestion)
		}
	}

	s := report.Summary
	fmt.Println()
	fmt.Printf("Summary: %d ok", s.OK)
	for _, part := range []struct {
		n    int
		name string
	}{
		{s.Drift, "drifted"},
		{s.Missing, "missing"},
		{s.Inconsistent, "inconsistent"},
		{s.UnknownStatus, "unknown status"},
		{s.Orphans, "orphan"},
	} {
		if part.n > 0 {
			fmt.Printf(", %s", ui.Error.Sprint(fmt.Sprintf("%d %s", part.n, part.name)))
		}
	}
	fmt.Println()
}
