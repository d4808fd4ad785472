package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PolarWolf314/projfold/internal/audit"
	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logProject   string
	logChange    string
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	addPersistentFlags(LogCmd)

	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVar(&logProject, "project", "", "filter by project ID")
	LogCmd.Flags().StringVar(&logChange, "change", "", "filter by status change ID")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	LogCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	LogCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	LogCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logProject = ""
	logChange = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

// GetLogCmd returns the LogCmd for testing.
func GetLogCmd() *cobra.Command {
	return LogCmd
}

// LogCmd shows the audit log.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of folder moves, status changes, template
provisioning and proposal updates.

Every step of one status change shares a change ID, so --change shows the
whole change. Failed steps are marked as failed.

Examples:
  projfold log                           # View full log
  projfold log -n 10                     # Last 10 entries
  projfold log --reverse                 # Most recent first
  projfold log --project 25-97105        # One project
  projfold log --operation move,status   # Filter by operation
  projfold log --since 2025-01-01        # Filter by date
  projfold log --json                    # JSON output`,
	Args:             cobra.NoArgs,
	PersistentPreRun: initLogger,
	RunE:             runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...", verbose)
	defer cleanup()

	cfg, err := loadConfig()
	if err != nil {
		spinner.FinalMSG = formatError(err)
		return err
	}

	opts := workflows.LogOptions{
		Path:       cfg.AuditLog,
		Limit:      logLimit,
		Reverse:    logReverse,
		Project:    projectIDArgOrEmpty(logProject),
		ChangeID:   logChange,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		spinner.FinalMSG = formatLogError(err)
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	spinner.FinalMSG = ""
	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}
	if logOneline {
		outputLogOneline(result.Entries)
		return nil
	}
	outputLogDefault(result.Entries)
	return nil
}

func projectIDArgOrEmpty(arg string) string {
	if arg == "" {
		return ""
	}
	return projectIDArg(arg)
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, perrors.ErrInvalidDateFormat):
		return ui.Cross() + " " + err.Error()
	default:
		return ui.Cross() + " Failed to read audit log: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	return !errors.Is(err, perrors.ErrInvalidDateFormat)
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		date := workflows.FormatDate(e.Timestamp)
		details := workflows.FormatDetailsOneline(e)
		fmt.Printf("%s %s %s %s\n", date, e.User, e.Operation, details)
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-12s  %-10s  %s\n", datetime, e.User, e.Operation, details)
	}
}
