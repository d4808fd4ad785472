package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

const checkRecords = `
[[projects]]
id = "25-97105"
name = "Hotel Tower"
status = "Awarded"

[[projects]]
id = "25-97106"
name = "Depot"
status = "RFP"

[[projects]]
id = "25-97107"
name = "Library"
status = "Completed"
`

func TestProjectCheckReportsProblems(t *testing.T) {
	w := setupTestWorkspace(t)
	w.importRecords(t, checkRecords)
	w.addFolder(t, lifecycle.RootCurrent, "25-97105 Hotel Tower")
	w.addFolder(t, lifecycle.RootCurrent, "25-97106 Depot")
	w.addFolder(t, lifecycle.RootRFPs, "25-99999 Stray")

	exitCode := 0
	SetCheckExitFunc(func(code int) { exitCode = code })

	output, err := w.run(t, "project", "check")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got: %d", exitCode)
	}
	for _, want := range []string{"drift", "25-97106", "missing", "25-97107", "orphan", "25-99999"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestProjectCheckJSON(t *testing.T) {
	w := setupTestWorkspace(t)
	w.importRecords(t, checkRecords)
	w.addFolder(t, lifecycle.RootCurrent, "25-97105 Hotel Tower")
	w.addFolder(t, lifecycle.RootRFPs, "25-97106 Depot")
	w.addFolder(t, lifecycle.RootCompleted, "25-97107 Library")

	exitCode := 0
	SetCheckExitFunc(func(code int) { exitCode = code })

	output, err := w.run(t, "project", "check", "--json")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got: %d", exitCode)
	}

	var report struct {
		Checks []struct {
			Project string `json:"project"`
			State   string `json:"state"`
		} `json:"checks"`
		Summary struct {
			OK int `json:"ok"`
		} `json:"summary"`
	}
	start := strings.Index(output, "{")
	if start < 0 {
		t.Fatalf("Expected JSON output, got: %s", output)
	}
	if err := json.Unmarshal([]byte(output[start:]), &report); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	if report.Summary.OK != 3 {
		t.Errorf("Expected 3 consistent projects, got: %d", report.Summary.OK)
	}
}
