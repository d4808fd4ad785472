package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/projfold/cmd"
	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/utils"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "projfold",
	Short: "projfold - keeps project records and project folders in step.",
	Long: `projfold manages the folders of projects as they move through their
lifecycle, and keeps them matched to the status recorded for each project.

Features:
  - Move a project folder to the root of its new status
  - Add template folders when a project is awarded
  - Show which proposals a status change affects
  - Report records and folders that disagree

Usage:
  projfold <command> [flags]

Available Commands:
  folder     Locate, list, move and provision project folders
  project    Change project statuses and check records against folders
  records    Import and list project and proposal records
  config     Manage projfold configuration
  log        View the audit log

Run 'projfold help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if utils.IsStdoutTerminal() {
			fmt.Println()
			figure.NewColorFigure("projfold", "alligator2", "green", true).Print()
			fmt.Println()
		}
		fmt.Println("Welcome to projfold! Run " + ui.Code.Sprint("projfold --help") + " to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.Commands()...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
