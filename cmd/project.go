package cmd

import (
	"github.com/spf13/cobra"
)

// ProjectCmd groups the commands that keep project records and folders in step.
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Change project statuses and check records against folders",
	Long: `Changes the status of a project record and moves its folder to the
matching lifecycle root in one step.

Status to root:
  Draft, RFP                  01 RFPs
  Awarded, Active             11 Current
  Completed                   99 Completed
  Lost, Cancelled, On Hold    00 Inactive

Examples:
  # See which proposals a status change affects
  projfold project impact 25-97105 Lost

  # Award a project: move its folder to 11 Current and add template folders
  projfold project status 25-97105 Awarded

  # Report records whose folder is missing or in the wrong root
  projfold project check`,
	PersistentPreRun: initLogger,
}

func init() {
	addPersistentFlags(ProjectCmd)

	ProjectCmd.AddCommand(projectImpactCmd)
	ProjectCmd.AddCommand(projectStatusCmd)
	ProjectCmd.AddCommand(projectCheckCmd)
}

// GetProjectCmd returns the ProjectCmd for testing.
func GetProjectCmd() *cobra.Command {
	return ProjectCmd
}

// resetProjectCommandState resets the project command flags for testing.
func resetProjectCommandState() {
	resetProjectStatusState()
	resetProjectCheckState()
}
