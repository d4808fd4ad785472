package folders

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

func TestMoveAwardProvisionsTemplates(t *testing.T) {
	layout := newTestLayout(t)
	mkdir(t, filepath.Join(layout.BasePath, "01 RFPs", "25-97199 Test Project"))
	writeFile(t, filepath.Join(layout.BasePath, "01 RFPs", "25-97199 Test Project", "rfp.pdf"), "rfp")
	mover := newTestMover(layout)

	result, err := mover.Move(context.Background(), "25-97199", lifecycle.RootRFPs, lifecycle.RootCurrent)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.ProvisionErr != nil {
		t.Fatalf("Expected provisioning to succeed, got: %v", result.ProvisionErr)
	}

	newPath := filepath.Join(layout.BasePath, "11 Current", "25-97199 Test Project")
	if result.NewPath != newPath {
		t.Errorf("Expected new path %s, got: %s", newPath, result.NewPath)
	}
	for _, name := range awardedFolders {
		assertExists(t, filepath.Join(newPath, name))
	}
	if got := readFile(t, filepath.Join(newPath, "rfp.pdf")); got != "rfp" {
		t.Errorf("Expected existing content to move with the folder, got: %q", got)
	}

	entries, err := os.ReadDir(filepath.Join(layout.BasePath, "01 RFPs"))
	if err != nil {
		t.Fatalf("Failed to read RFPs root: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 01 RFPs to be empty, got %d entries", len(entries))
	}

	loc, err := mover.Locator.Locate(context.Background(), "25-97199")
	if err != nil {
		t.Fatalf("Expected folder to be locatable, got: %v", err)
	}
	if loc.Root != lifecycle.RootCurrent {
		t.Errorf("Expected folder under %s, got: %s", lifecycle.RootCurrent, loc.Root)
	}

	// A later Current -> Inactive move provisions nothing.
	before := snapshot(t, newPath)
	result, err = mover.Move(context.Background(), "25-97199", lifecycle.RootCurrent, lifecycle.RootInactive)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Provision != nil {
		t.Errorf("Expected no provisioning on Current -> Inactive, got: %+v", result.Provision)
	}
	after := snapshot(t, filepath.Join(layout.BasePath, "00 Inactive", "25-97199 Test Project"))
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Expected contents unchanged by move.\nbefore: %v\nafter: %v", before, after)
	}
}

func TestMoveNonAwardDoesNotProvision(t *testing.T) {
	transitions := []struct {
		from, to lifecycle.RootID
	}{
		{lifecycle.RootRFPs, lifecycle.RootInactive},
		{lifecycle.RootInactive, lifecycle.RootCurrent},
		{lifecycle.RootCurrent, lifecycle.RootCompleted},
		{lifecycle.RootCompleted, lifecycle.RootRFPs},
	}

	for _, tr := range transitions {
		t.Run(tr.from.String()+" to "+tr.to.String(), func(t *testing.T) {
			layout := newTestLayout(t)
			mkdir(t, filepath.Join(layout.RootPath(tr.from), "25-97105 Hotel"))

			result, err := newTestMover(layout).Move(context.Background(), "25-97105", tr.from, tr.to)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if result.Provision != nil {
				t.Errorf("Expected no provisioning, got: %+v", result.Provision)
			}
			entries, _ := os.ReadDir(result.NewPath)
			if len(entries) != 0 {
				t.Errorf("Expected moved folder to stay empty, got %d entries", len(entries))
			}
		})
	}
}

func TestMoveSameRootIsNoOp(t *testing.T) {
	layout := newTestLayout(t)
	folder := filepath.Join(layout.BasePath, "11 Current", "25-97105 Hotel")
	mkdir(t, folder)
	before := snapshot(t, layout.BasePath)

	result, err := newTestMover(layout).Move(context.Background(), "25-97105", lifecycle.RootCurrent, lifecycle.RootCurrent)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.NoOp {
		t.Error("Expected NoOp result")
	}
	if result.NewPath != folder {
		t.Errorf("Expected path %s, got: %s", folder, result.NewPath)
	}
	if after := snapshot(t, layout.BasePath); !reflect.DeepEqual(before, after) {
		t.Error("Expected no filesystem changes for a same-root move")
	}
}

func TestMoveFolderUnderTwoRootsLeavesBothUntouched(t *testing.T) {
	layout := newTestLayout(t)
	source := filepath.Join(layout.BasePath, "01 RFPs", "25-97105 Hotel")
	mkdir(t, filepath.Join(source, "drawings"))
	writeFile(t, filepath.Join(source, "drawings", "a.dwg"), "drawing-a")
	writeFile(t, filepath.Join(source, "notes.txt"), "notes")
	dest := filepath.Join(layout.BasePath, "11 Current", "25-97105 Hotel")
	mkdir(t, dest)
	writeFile(t, filepath.Join(dest, "other.txt"), "other")

	sourceBefore := snapshot(t, source)
	destBefore := snapshot(t, dest)

	_, err := newTestMover(layout).Move(context.Background(), "25-97105", lifecycle.RootRFPs, lifecycle.RootCurrent)
	if !errors.Is(err, perrors.ErrInconsistent) {
		t.Fatalf("Expected ErrInconsistent, got: %v", err)
	}
	if !reflect.DeepEqual(sourceBefore, snapshot(t, source)) {
		t.Error("Expected source unchanged")
	}
	if !reflect.DeepEqual(destBefore, snapshot(t, dest)) {
		t.Error("Expected destination unchanged")
	}
}

func TestMoveDestinationConflictWithFile(t *testing.T) {
	layout := newTestLayout(t)
	source := filepath.Join(layout.BasePath, "01 RFPs", "25-97105 Hotel")
	mkdir(t, source)
	writeFile(t, filepath.Join(source, "notes.txt"), "notes")
	// A plain file with the folder's name is not a project folder, but still blocks the rename.
	writeFile(t, filepath.Join(layout.BasePath, "11 Current", "25-97105 Hotel"), "squatter")
	sourceBefore := snapshot(t, source)

	_, err := newTestMover(layout).Move(context.Background(), "25-97105", lifecycle.RootRFPs, lifecycle.RootCurrent)
	if !errors.Is(err, perrors.ErrDestinationConflict) {
		t.Fatalf("Expected ErrDestinationConflict, got: %v", err)
	}

	var folderErr *perrors.FolderError
	if !errors.As(err, &folderErr) {
		t.Fatalf("Expected *FolderError, got: %T", err)
	}
	if folderErr.Path != source || folderErr.Dest != filepath.Join(layout.BasePath, "11 Current", "25-97105 Hotel") {
		t.Errorf("Expected attempted paths in error, got: %+v", folderErr)
	}
	if !reflect.DeepEqual(sourceBefore, snapshot(t, source)) {
		t.Error("Expected source unchanged")
	}
}

func TestMoveRequiresFolderUnderFromRoot(t *testing.T) {
	layout := newTestLayout(t)
	mkdir(t, filepath.Join(layout.BasePath, "99 Completed", "25-97105 Hotel"))

	_, err := newTestMover(layout).Move(context.Background(), "25-97105", lifecycle.RootRFPs, lifecycle.RootCurrent)
	if !errors.Is(err, perrors.ErrFolderNotFound) {
		t.Fatalf("Expected ErrFolderNotFound, got: %v", err)
	}
	assertExists(t, filepath.Join(layout.BasePath, "99 Completed", "25-97105 Hotel"))
}

func TestMoveFolderNotFound(t *testing.T) {
	layout := newTestLayout(t)

	_, err := newTestMover(layout).Move(context.Background(), "25-97105", lifecycle.RootRFPs, lifecycle.RootCurrent)
	if !errors.Is(err, perrors.ErrFolderNotFound) {
		t.Fatalf("Expected ErrFolderNotFound, got: %v", err)
	}
}

func TestMoveLeavesTemplateOriginInPlace(t *testing.T) {
	layout := newTestLayout(t)
	origin := layout.TemplateOriginPath()

	_, err := newTestMover(layout).Move(context.Background(), "00", lifecycle.RootCurrent, lifecycle.RootInactive)
	if !errors.Is(err, perrors.ErrFolderNotFound) {
		t.Fatalf("Expected ErrFolderNotFound, got: %v", err)
	}
	assertExists(t, filepath.Join(origin, awardedFolders[0], "README.txt"))
	assertNotExists(t, filepath.Join(layout.BasePath, "00 Inactive", "00 Additional Folders"))
}

func TestMoveDestinationRootMissing(t *testing.T) {
	layout := newTestLayout(t)
	mkdir(t, filepath.Join(layout.BasePath, "11 Current", "25-97105 Hotel"))
	if err := os.RemoveAll(layout.RootPath(lifecycle.RootCompleted)); err != nil {
		t.Fatalf("Failed to remove root: %v", err)
	}

	_, err := newTestMover(layout).Move(context.Background(), "25-97105", lifecycle.RootCurrent, lifecycle.RootCompleted)
	if !errors.Is(err, perrors.ErrRootMissing) {
		t.Fatalf("Expected ErrRootMissing, got: %v", err)
	}
	assertExists(t, filepath.Join(layout.BasePath, "11 Current", "25-97105 Hotel"))
}

func TestMoveCancelledBeforeRename(t *testing.T) {
	layout := newTestLayout(t)
	source := filepath.Join(layout.BasePath, "01 RFPs", "25-97105 Hotel")
	mkdir(t, source)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestMover(layout).Move(ctx, "25-97105", lifecycle.RootRFPs, lifecycle.RootCurrent)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got: %v", err)
	}
	assertExists(t, source)
}

func TestMoveAwardProvisioningFailureIsAdvisory(t *testing.T) {
	layout := newTestLayout(t)
	if err := os.RemoveAll(layout.TemplateOriginPath()); err != nil {
		t.Fatalf("Failed to remove template origin: %v", err)
	}
	mkdir(t, filepath.Join(layout.BasePath, "01 RFPs", "25-97105 Hotel"))

	result, err := newTestMover(layout).Move(context.Background(), "25-97105", lifecycle.RootRFPs, lifecycle.RootCurrent)
	if err != nil {
		t.Fatalf("Expected the move to succeed, got: %v", err)
	}
	if !errors.Is(result.ProvisionErr, perrors.ErrTemplateProvisioningFailed) {
		t.Errorf("Expected advisory ErrTemplateProvisioningFailed, got: %v", result.ProvisionErr)
	}
	assertExists(t, filepath.Join(layout.BasePath, "11 Current", "25-97105 Hotel"))
	assertNotExists(t, filepath.Join(layout.BasePath, "01 RFPs", "25-97105 Hotel"))
}

func TestMoveRejectsUnknownRoot(t *testing.T) {
	layout := newTestLayout(t)

	_, err := newTestMover(layout).Move(context.Background(), "25-97105", lifecycle.RootID(42), lifecycle.RootCurrent)
	if !errors.Is(err, perrors.ErrUnknownRoot) {
		t.Fatalf("Expected ErrUnknownRoot, got: %v", err)
	}
}
