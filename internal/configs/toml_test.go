package configs

import (
	"path/filepath"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "nested", "test.toml")

	type TestStruct struct {
		Name    string
		Folders []string
	}

	originalData := TestStruct{
		Name:    "awarded",
		Folders: []string{"03 Contract", "99 Temp"},
	}

	if err := SaveTOML(testFile, originalData); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loadedData := TestStruct{}
	undecoded, err := LoadTOML(testFile, &loadedData)
	if err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if len(undecoded) != 0 {
		t.Errorf("Expected no undecoded keys, got: %v", undecoded)
	}

	if loadedData.Name != originalData.Name {
		t.Errorf("Expected Name %q, got %q", originalData.Name, loadedData.Name)
	}
	if len(loadedData.Folders) != 2 || loadedData.Folders[1] != "99 Temp" {
		t.Errorf("Unexpected folders: %v", loadedData.Folders)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data struct{ Name string }
	if _, err := LoadTOML(filepath.Join(t.TempDir(), "missing.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}
