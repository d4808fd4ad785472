package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PolarWolf314/projfold/internal/audit"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

func TestLogShowsOneStatusChange(t *testing.T) {
	w := setupTestWorkspace(t)
	w.importRecords(t, awardRecords)
	w.addFolder(t, lifecycle.RootRFPs, "25-97199 Test Project")

	if output, err := w.run(t, "project", "status", "25-97199", "Awarded", "--yes"); err != nil {
		t.Fatalf("Failed to change status: %v\nOutput: %s", err, output)
	}

	output, err := w.run(t, "log", "--project", "25-97199", "--json")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var entries []audit.Entry
	start := strings.Index(output, "[")
	if start < 0 {
		t.Fatalf("Expected JSON output, got: %s", output)
	}
	if err := json.Unmarshal([]byte(output[start:]), &entries); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	ops := map[string]bool{}
	for _, e := range entries {
		ops[e.Operation] = true
		if e.ChangeID != entries[0].ChangeID {
			t.Errorf("Expected one change ID, got %s and %s", entries[0].ChangeID, e.ChangeID)
		}
	}
	for _, op := range []string{audit.OpMove, audit.OpProvision, audit.OpStatus} {
		if !ops[op] {
			t.Errorf("Expected a %s entry, got: %+v", op, entries)
		}
	}
}

func TestLogEmpty(t *testing.T) {
	w := setupTestWorkspace(t)

	output, err := w.run(t, "log")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(output, "No audit log entries found") {
		t.Errorf("Expected empty log message, got: %s", output)
	}
}

func TestLogInvalidDate(t *testing.T) {
	w := setupTestWorkspace(t)
	w.importRecords(t, awardRecords)

	output, err := w.run(t, "log", "--since", "01/02/2025")
	if err != nil {
		t.Fatalf("Expected no error for invalid input, got: %v", err)
	}
	if !strings.Contains(output, "invalid date format") {
		t.Errorf("Expected date format message, got: %s", output)
	}
}
