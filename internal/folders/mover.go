package folders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	logger "github.com/PolarWolf314/projfold/internal/logging"
	"github.com/PolarWolf314/projfold/internal/utils"
)

// MoveResult describes a completed move.
type MoveResult struct {
	ProjectID string
	From      lifecycle.RootID
	To        lifecycle.RootID
	NoOp      bool
	OldPath   string
	NewPath   string

	// Provision is set when the move was an award and templates were provisioned.
	Provision *ProvisionResult

	// ProvisionErr is advisory. The move itself succeeded.
	ProvisionErr error
}

// Mover relocates project folders between lifecycle roots.
type Mover struct {
	Locator     *Locator
	Provisioner *Provisioner

	// AwardTemplates is provisioned after an RFPs -> Current move.
	AwardTemplates TemplateSet

	Log logger.Logger
}

func NewMover(locator *Locator, provisioner *Provisioner, award TemplateSet, log logger.Logger) *Mover {
	return &Mover{Locator: locator, Provisioner: provisioner, AwardTemplates: award, Log: log}
}

// Move relocates the folder of project id from one root to another with a
// single rename.
//
// The folder must currently be under from. A folder of the same name under
// to is a conflict and nothing is touched. When from equals to the call is a
// no-op and the filesystem is not modified. After an award move the
// AwardTemplates set is provisioned; its failure is reported in
// MoveResult.ProvisionErr and never undoes the move.
func (m *Mover) Move(ctx context.Context, id string, from, to lifecycle.RootID) (*MoveResult, error) {
	if !from.Valid() || !to.Valid() {
		return nil, perrors.ErrUnknownRoot
	}

	loc, err := m.Locator.Locate(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc.Root != from {
		return nil, &perrors.FolderError{
			Op:        "move",
			ProjectID: id,
			Path:      loc.Path,
			Err:       fmt.Errorf("%w under %s (found under %s)", perrors.ErrFolderNotFound, from, loc.Root),
		}
	}

	result := &MoveResult{ProjectID: id, From: from, To: to, OldPath: loc.Path, NewPath: loc.Path}
	if from == to {
		result.NoOp = true
		m.Log.Debugf("%s is already under %s, nothing to move", id, to)
		return result, nil
	}

	destRoot := m.Locator.Layout.RootPath(to)
	ok, err := utils.DirExists(destRoot)
	if err != nil {
		return nil, &perrors.FolderError{Op: "move", ProjectID: id, Path: loc.Path, Dest: destRoot, Err: classifyFSError(err)}
	}
	if !ok {
		return nil, &perrors.FolderError{Op: "move", ProjectID: id, Path: loc.Path, Dest: destRoot, Err: perrors.ErrRootMissing}
	}

	dest := filepath.Join(destRoot, loc.Name)
	exists, err := utils.PathExists(dest)
	if err != nil {
		return nil, &perrors.FolderError{Op: "move", ProjectID: id, Path: loc.Path, Dest: dest, Err: classifyFSError(err)}
	}
	if exists {
		return nil, &perrors.FolderError{Op: "move", ProjectID: id, Path: loc.Path, Dest: dest, Err: perrors.ErrDestinationConflict}
	}

	// Last point at which cancellation is honoured.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.Rename(loc.Path, dest); err != nil {
		return nil, &perrors.FolderError{Op: "move", ProjectID: id, Path: loc.Path, Dest: dest, Err: classifyFSError(err)}
	}
	result.NewPath = dest
	m.Log.Infof("Moved %s from %s to %s", id, from, to)

	if lifecycle.IsAward(from, to) && m.Provisioner != nil && len(m.AwardTemplates.Folders) > 0 {
		result.Provision, result.ProvisionErr = m.Provisioner.Provision(context.WithoutCancel(ctx), dest, m.AwardTemplates)
		if result.ProvisionErr != nil {
			m.Log.Warnf("Folder moved but templates were not fully provisioned: %v", result.ProvisionErr)
		}
	}
	return result, nil
}
