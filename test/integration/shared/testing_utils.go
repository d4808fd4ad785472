// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up a project tree,
// capturing output, and running the CLI against it.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/projfold/cmd"
	"github.com/PolarWolf314/projfold/internal/configs"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	logger "github.com/PolarWolf314/projfold/internal/logging"
	"github.com/spf13/cobra"
)

// TestProjectID is the project used by the award scenario.
const TestProjectID = "25-97199"

// TestProjectFolder is the folder name of TestProjectID.
const TestProjectFolder = "25-97199 Test Project"

// Workspace is a temporary base path with a config file pointing at it.
type Workspace struct {
	Dir        string
	BasePath   string
	ConfigPath string
	DBPath     string
	AuditLog   string

	// ExitCode is the code the last run passed to the check exit hook, or -1.
	ExitCode int
}

// SetupWorkspace creates the four lifecycle roots, the template origin with
// the award folders, and a config file with a SQLite store.
func SetupWorkspace(t *testing.T) *Workspace {
	t.Helper()

	dir := t.TempDir()
	w := &Workspace{
		Dir:        dir,
		BasePath:   filepath.Join(dir, "projects"),
		ConfigPath: filepath.Join(dir, "config.toml"),
		DBPath:     filepath.Join(dir, "records.db"),
		AuditLog:   filepath.Join(dir, "audit.jsonl"),
		ExitCode:   -1,
	}

	for _, root := range lifecycle.Roots {
		if err := os.MkdirAll(filepath.Join(w.BasePath, root.DirName()), 0755); err != nil {
			t.Fatalf("Failed to create root %s: %v", root, err)
		}
	}
	origin := filepath.Join(w.BasePath, configs.DefaultTemplateOrigin)
	for _, folder := range configs.DefaultAwardedFolders {
		if err := os.MkdirAll(filepath.Join(origin, folder), 0755); err != nil {
			t.Fatalf("Failed to create template folder %s: %v", folder, err)
		}
		if err := os.WriteFile(filepath.Join(origin, folder, "README.txt"), []byte(folder), 0644); err != nil {
			t.Fatalf("Failed to write template file: %v", err)
		}
	}

	cfg := configs.DefaultConfig()
	cfg.BasePath = w.BasePath
	cfg.AuditLog = w.AuditLog
	cfg.Database.Path = w.DBPath
	if err := configs.SaveConfig(w.ConfigPath, cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	t.Setenv(configs.BasePathEnv, "")
	cmd.ResetGlobalState()
	t.Cleanup(cmd.ResetGlobalState)
	return w
}

// AddFolder creates a project folder under root and returns its path.
func (w *Workspace) AddFolder(t *testing.T, root lifecycle.RootID, name string) string {
	t.Helper()
	path := filepath.Join(w.BasePath, root.DirName(), name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create project folder: %v", err)
	}
	return path
}

// Path joins elements onto the base path.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.BasePath}, elem...)...)
}

// WriteRecords writes a record file and returns its path.
func (w *Workspace) WriteRecords(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(w.Dir, "records.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write records: %v", err)
	}
	return path
}

// Run executes the CLI against the workspace config and returns its output.
func (w *Workspace) Run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd.ResetGlobalState()
	w.ExitCode = -1
	cmd.SetCheckExitFunc(func(code int) { w.ExitCode = code })

	args = append(args, "--config", w.ConfigPath)
	return CaptureOutput(func() error {
		return CreateTestCLIWithArgs(args, nil, nil, false, false).Execute()
	})
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
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

// CreateTestCLIWithArgs creates a complete CLI instance for testing with the specified arguments.
func CreateTestCLIWithArgs(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	rootCmd := &cobra.Command{
		Use:           "projfold",
		Short:         "projfold - keeps project records and project folders in step.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(cmd.Commands()...)

	if stdout != nil {
		rootCmd.SetOut(stdout)
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
	}

	rootCmd.SetArgs(args)
	return rootCmd
}
