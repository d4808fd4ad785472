package cmd

import (
	"github.com/spf13/cobra"
)

// FolderCmd groups the commands that work on project folders directly.
var FolderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Locate, list, move and provision project folders",
	Long: `Provides direct access to the project folder tree under the base path.

Project folders live under one of four lifecycle roots:
  00 Inactive     lost, cancelled or on-hold projects
  01 RFPs         proposals being prepared
  11 Current      awarded and active projects
  99 Completed    finished projects

These commands do not change project records. Use
'projfold project status' to change a status and move its folder together.

Examples:
  # Find the folder of a project
  projfold folder locate 25-97105

  # List the projects under a root
  projfold folder list rfps

  # Move a folder between roots
  projfold folder move 25-97105 rfps current

  # Copy the award template folders into a project
  projfold folder provision 25-97105`,
	PersistentPreRun: initLogger,
}

func init() {
	addPersistentFlags(FolderCmd)

	FolderCmd.AddCommand(folderLocateCmd)
	FolderCmd.AddCommand(folderListCmd)
	FolderCmd.AddCommand(folderMoveCmd)
	FolderCmd.AddCommand(folderProvisionCmd)
	FolderCmd.AddCommand(folderValidateCmd)
}

// GetFolderCmd returns the FolderCmd for testing.
func GetFolderCmd() *cobra.Command {
	return FolderCmd
}

// resetFolderCommandState resets the folder command flags for testing.
func resetFolderCommandState() {
	resetFolderMoveState()
	resetFolderProvisionState()
}
