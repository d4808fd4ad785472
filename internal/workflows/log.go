package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/projfold/internal/audit"
	perrors "github.com/PolarWolf314/projfold/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Path is the audit log file.
	Path string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Project filters entries by project ID.
	Project string

	// ChangeID filters entries to one status change.
	ChangeID string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log. A missing log yields no entries.
//
// Returns ErrInvalidDateFormat if a date filter is malformed.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	entries, err := audit.ReadEntries(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}
	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	filtered := entries

	if opts.Project != "" {
		filtered = audit.FilterByProject(filtered, opts.Project)
	}

	if opts.ChangeID != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool { return e.ChangeID == opts.ChangeID })
	}

	if opts.Operations != "" {
		ops := map[string]bool{}
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool { return ops[strings.ToLower(e.Operation)] })
	}

	if opts.Since != "" {
		since, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", perrors.ErrInvalidDateFormat)
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.Before(since)
		})
	}

	if opts.Until != "" {
		until, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", perrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.After(until)
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

func entryTime(e audit.Entry) (time.Time, bool) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err == nil
}

// FormatDate formats a timestamp string to YYYY-MM-DD.
func FormatDate(ts string) string {
	t, ok := entryTime(audit.Entry{Timestamp: ts})
	if !ok {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	t, ok := entryTime(audit.Entry{Timestamp: ts})
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry in verbose format.
func FormatDetails(e audit.Entry) string {
	details := formatDetails(e, true)
	if e.Error != "" {
		details += " [failed: " + e.Error + "]"
	}
	return strings.TrimSpace(details)
}

// FormatDetailsOneline formats the details for a log entry in compact format.
func FormatDetailsOneline(e audit.Entry) string {
	details := formatDetails(e, false)
	if e.Error != "" {
		details += " [failed]"
	}
	return strings.TrimSpace(details)
}

func formatDetails(e audit.Entry, long bool) string {
	switch e.Operation {
	case audit.OpMove:
		if long {
			return fmt.Sprintf("%s %s -> %s", e.Project, e.FromPath, e.ToPath)
		}
		return e.Project
	case audit.OpStatus:
		return fmt.Sprintf("%s %s -> %s", e.Project, e.FromStatus, e.ToStatus)
	case audit.OpProposal:
		return fmt.Sprintf("%s/%s %s -> %s", e.Project, e.Proposal, e.FromStatus, e.ToStatus)
	case audit.OpProvision:
		if long && len(e.Folders) > 0 && len(e.Folders) <= 3 {
			return fmt.Sprintf("%s %s", e.Project, strings.Join(e.Folders, ", "))
		}
		return fmt.Sprintf("%s %d folders", e.Project, len(e.Folders))
	case audit.OpImport:
		if long {
			return fmt.Sprintf("%d records from %s", e.Count, e.ToPath)
		}
		return fmt.Sprintf("%d records", e.Count)
	}
	return e.Project
}
