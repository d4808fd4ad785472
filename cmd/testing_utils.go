// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up a project tree,
// capturing output, and running commands against it.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/projfold/internal/configs"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	logger "github.com/PolarWolf314/projfold/internal/logging"
	"github.com/spf13/cobra"
)

// testWorkspace is a base path with the four lifecycle roots and a config
// file pointing at it.
type testWorkspace struct {
	Dir        string
	BasePath   string
	ConfigPath string
	AuditLog   string
	DBPath     string
}

// setupTestWorkspace creates the lifecycle roots, the template origin with
// the award folders, and a config file using a SQLite store in a temp dir.
func setupTestWorkspace(t *testing.T) *testWorkspace {
	t.Helper()

	dir := t.TempDir()
	w := &testWorkspace{
		Dir:        dir,
		BasePath:   filepath.Join(dir, "projects"),
		ConfigPath: filepath.Join(dir, "config.toml"),
		AuditLog:   filepath.Join(dir, "audit.jsonl"),
		DBPath:     filepath.Join(dir, "records.db"),
	}

	for _, root := range lifecycle.Roots {
		mustMkdir(t, filepath.Join(w.BasePath, root.DirName()))
	}
	origin := filepath.Join(w.BasePath, configs.DefaultTemplateOrigin)
	for _, folder := range configs.DefaultAwardedFolders {
		mustMkdir(t, filepath.Join(origin, folder))
		mustWriteFile(t, filepath.Join(origin, folder, "README.txt"), folder)
	}

	cfg := configs.DefaultConfig()
	cfg.BasePath = w.BasePath
	cfg.AuditLog = w.AuditLog
	cfg.Database.Path = w.DBPath
	if err := configs.SaveConfig(w.ConfigPath, cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	// The environment override would point the commands elsewhere.
	t.Setenv(configs.BasePathEnv, "")

	ResetGlobalState()
	t.Cleanup(ResetGlobalState)
	return w
}

// addFolder creates a project folder under a root and returns its path.
func (w *testWorkspace) addFolder(t *testing.T, root lifecycle.RootID, name string) string {
	t.Helper()
	path := filepath.Join(w.BasePath, root.DirName(), name)
	mustMkdir(t, path)
	mustWriteFile(t, filepath.Join(path, "notes.txt"), name)
	return path
}

// importRecords writes a record file and imports it through the CLI.
func (w *testWorkspace) importRecords(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(w.Dir, "records.toml")
	mustWriteFile(t, path, content)

	output, err := w.run(t, "records", "import", path)
	if err != nil {
		t.Fatalf("Failed to import records: %v\nOutput: %s", err, output)
	}
}

// run executes the CLI with args against the workspace config and returns the output.
func (w *testWorkspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	args = append(args, "--config", w.ConfigPath)
	return captureOutput(func() error {
		return createTestCLI(args, false, false).Execute()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance for testing with the specified arguments.
func createTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	resetCommandFlags()
	SetVerbose(verboseFlag)
	SetDebug(debugFlag)
	SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	rootCmd := &cobra.Command{
		Use:           "projfold",
		Short:         "projfold - keeps project records and project folders in step.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(Commands()...)
	rootCmd.SetArgs(args)
	return rootCmd
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func assertPathExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected %s to exist, got: %v", path, err)
	}
}

func assertPathMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected %s not to exist, got: %v", path, err)
	}
}
