package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRecordsImportWarnsAboutNonStandardIDs(t *testing.T) {
	w := setupTestWorkspace(t)
	path := filepath.Join(w.Dir, "legacy.toml")
	mustWriteFile(t, path, `
[[projects]]
id = "25-97105"
name = "Hotel Tower"
status = "RFP"

[[projects]]
id = "OLD-17"
name = "Warehouse"
status = "Completed"
`)

	output, err := w.run(t, "records", "import", path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Imported 2 projects") {
		t.Errorf("Expected the import count, got: %s", output)
	}
	if !strings.Contains(output, "Not in YY-CCCNN form: OLD-17") {
		t.Errorf("Expected a warning for OLD-17, got: %s", output)
	}
	if strings.Contains(output, "form: 25-97105") {
		t.Errorf("Did not expect 25-97105 to be flagged, got: %s", output)
	}
}
