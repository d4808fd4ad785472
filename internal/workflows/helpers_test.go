package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/PolarWolf314/projfold/internal/audit"
	"github.com/PolarWolf314/projfold/internal/folders"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	logger "github.com/PolarWolf314/projfold/internal/logging"
	"github.com/PolarWolf314/projfold/internal/store"
)

var awardedFolders = []string{
	"03 Contract",
	"04 Deliverables",
	"05 Submittals",
	"11 SubContractors",
	"98 Outgoing",
	"99 Temp",
}

type testEnv struct {
	coord    *Coordinator
	store    *store.MemoryStore
	base     string
	auditLog string
}

// newTestEnv builds a coordinator over a fresh base path and an in-memory store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	base := t.TempDir()
	for _, root := range lifecycle.Roots {
		mkdir(t, filepath.Join(base, root.DirName()))
	}
	origin := filepath.Join(base, "11 Current", "00 Additional Folders")
	for _, name := range awardedFolders {
		mkdir(t, filepath.Join(origin, name))
		writeFile(t, filepath.Join(origin, name, "README.txt"), name)
	}
	mkdir(t, filepath.Join(origin, "Site Photos"))

	layout, err := folders.NewLayout(base, "11 Current/00 Additional Folders", "[0-9][0-9]-[0-9][0-9][0-9][0-9][0-9]*")
	if err != nil {
		t.Fatalf("Failed to create layout: %v", err)
	}

	s := store.NewMemoryStore()
	auditLog := filepath.Join(t.TempDir(), "audit.jsonl")
	award := folders.TemplateSet{Name: "awarded", Folders: awardedFolders}

	coord := NewCoordinator(Deps{
		Store:    s,
		Layout:   layout,
		AwardSet: award,
		TemplateSets: map[string]folders.TemplateSet{
			"photos": {Name: "photos", Folders: []string{"Site Photos"}},
		},
		Audit: &audit.Recorder{Path: auditLog, User: "tester"},
		Log:   logger.Quiet(),
	})

	return &testEnv{coord: coord, store: s, base: base, auditLog: auditLog}
}

// addProject creates both the record and the folder.
func (e *testEnv) addProject(t *testing.T, id, shortName string, status lifecycle.Status, root lifecycle.RootID) string {
	t.Helper()
	err := e.store.PutProject(context.Background(), &store.Project{ID: id, Name: shortName, ShortName: shortName, Status: status})
	if err != nil {
		t.Fatalf("Failed to add project: %v", err)
	}
	path := filepath.Join(e.base, root.DirName(), lifecycle.FolderName(id, shortName))
	mkdir(t, path)
	return path
}

func (e *testEnv) project(t *testing.T, id string) *store.Project {
	t.Helper()
	p, err := e.store.GetProject(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to load project %s: %v", id, err)
	}
	return p
}

func (e *testEnv) auditEntries(t *testing.T) []audit.Entry {
	t.Helper()
	entries, err := audit.ReadEntries(e.auditLog)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return entries
}

// flakyStore fails project status writes while failStatus is set.
type flakyStore struct {
	store.Store

	mu         sync.Mutex
	failStatus bool
}

var errWriteFailed = errors.New("database unavailable")

func (f *flakyStore) UpdateProjectStatus(ctx context.Context, id string, status lifecycle.Status, folder string) error {
	f.mu.Lock()
	fail := f.failStatus
	f.mu.Unlock()
	if fail {
		return errWriteFailed
	}
	return f.Store.UpdateProjectStatus(ctx, id, status, folder)
}

func (f *flakyStore) setFail(fail bool) {
	f.mu.Lock()
	f.failStatus = fail
	f.mu.Unlock()
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
