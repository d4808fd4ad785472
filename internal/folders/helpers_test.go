package folders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/projfold/internal/lifecycle"
	logger "github.com/PolarWolf314/projfold/internal/logging"
)

var awardedFolders = []string{
	"03 Contract",
	"04 Deliverables",
	"05 Submittals",
	"11 SubContractors",
	"98 Outgoing",
	"99 Temp",
}

const testPattern = "[0-9][0-9]-[0-9][0-9][0-9][0-9][0-9]*"

// newTestLayout creates a base path with all four roots and a populated template origin.
func newTestLayout(t *testing.T) Layout {
	t.Helper()

	base := t.TempDir()
	for _, root := range lifecycle.Roots {
		mkdir(t, filepath.Join(base, root.DirName()))
	}

	origin := filepath.Join(base, "11 Current", "00 Additional Folders")
	for _, name := range awardedFolders {
		mkdir(t, filepath.Join(origin, name))
		writeFile(t, filepath.Join(origin, name, "README.txt"), "template "+name)
	}

	layout, err := NewLayout(base, "11 Current/00 Additional Folders", testPattern)
	if err != nil {
		t.Fatalf("Failed to create layout: %v", err)
	}
	return layout
}

func newTestMover(layout Layout) *Mover {
	log := logger.Quiet()
	locator := NewLocator(layout, log)
	provisioner := NewProvisioner(layout, log)
	return NewMover(locator, provisioner, TemplateSet{Name: "awarded", Folders: awardedFolders}, log)
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err != nil {
		t.Fatalf("Expected %s to exist, got: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected %s not to exist, got: %v", path, err)
	}
}

// snapshot records relative path -> content ("<dir>" for directories) under root.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if info.IsDir() {
			files[rel] = "<dir>"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot %s: %v", root, err)
	}
	return files
}
