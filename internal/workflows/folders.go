package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/PolarWolf314/projfold/internal/audit"
	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/folders"
	"github.com/PolarWolf314/projfold/internal/impact"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

// LocateProjectFolder returns the single folder of project id.
func (c *Coordinator) LocateProjectFolder(ctx context.Context, id string) (*folders.Location, error) {
	return c.Locator.Locate(ctx, id)
}

// ListProjectsUnderRoot returns the sorted project folder names under root.
func (c *Coordinator) ListProjectsUnderRoot(ctx context.Context, root lifecycle.RootID) ([]string, error) {
	return c.Locator.List(ctx, root)
}

// MoveProjectFolder moves a folder between roots without touching its record.
// It holds the project lock so it cannot interleave with a status change.
func (c *Coordinator) MoveProjectFolder(ctx context.Context, id string, from, to lifecycle.RootID) (*folders.MoveResult, error) {
	unlock := c.locks.Lock(id)
	defer unlock()

	changeID := uuid.NewString()
	result, err := c.Mover.Move(ctx, id, from, to)

	entry := audit.Entry{Operation: audit.OpMove, ChangeID: changeID, Project: id, Error: errorString(err)}
	if result != nil {
		if result.NoOp {
			return result, nil
		}
		entry.FromPath, entry.ToPath = result.OldPath, result.NewPath
	}
	c.Audit.Log(entry)

	if result != nil && result.Provision != nil {
		c.recordProvision(changeID, id, result.Provision, result.ProvisionErr)
	}
	return result, err
}

// PreviewMoveProjectFolder reports where MoveProjectFolder would put the folder.
func (c *Coordinator) PreviewMoveProjectFolder(ctx context.Context, id string, from, to lifecycle.RootID) (*folders.Location, string, error) {
	loc, err := c.Locator.Locate(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if loc.Root != from {
		return loc, "", &perrors.FolderError{
			Op:        "move",
			ProjectID: id,
			Path:      loc.Path,
			Err:       fmt.Errorf("%w under %s (found under %s)", perrors.ErrFolderNotFound, from, loc.Root),
		}
	}
	return loc, filepath.Join(c.Layout.RootPath(to), loc.Name), nil
}

// ProvisionTemplates copies a template set into a project folder.
// target is either a project ID, which is located, or a directory path.
// An empty setName selects the award set.
func (c *Coordinator) ProvisionTemplates(ctx context.Context, target, setName string) (*folders.ProvisionResult, error) {
	set, err := c.templateSet(setName)
	if err != nil {
		return nil, err
	}

	path, id, err := c.resolveProvisionTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.Lock(id)
	defer unlock()

	result, err := c.Provisioner.Provision(ctx, path, set)
	if result != nil {
		c.recordProvision(uuid.NewString(), id, result, err)
	}
	return result, err
}

func (c *Coordinator) templateSet(name string) (folders.TemplateSet, error) {
	if name == "" {
		return c.Mover.AwardTemplates, nil
	}
	set, ok := c.TemplateSets[name]
	if !ok {
		return folders.TemplateSet{}, fmt.Errorf("%w: %q", perrors.ErrUnknownTemplateSet, name)
	}
	return set, nil
}

// resolveProvisionTarget returns the folder path and project ID for a target.
// Anything that looks like a path is used as one; otherwise target is a project ID.
func (c *Coordinator) resolveProvisionTarget(ctx context.Context, target string) (string, string, error) {
	if strings.ContainsAny(target, `/\`) || target == "." || target == ".." {
		path, err := filepath.Abs(target)
		if err != nil {
			return "", "", err
		}
		return path, folders.ProjectIDFromFolder(filepath.Base(path)), nil
	}

	loc, err := c.Locator.Locate(ctx, target)
	if err != nil {
		return "", "", err
	}
	return loc.Path, target, nil
}

// ValidateBasePathConfigured checks the base path and reports which roots exist.
func (c *Coordinator) ValidateBasePathConfigured() (*folders.Validation, error) {
	return c.Layout.Validate()
}

// AnalyzeStatusChangeImpact lists the proposals affected by moving project id to status.
func (c *Coordinator) AnalyzeStatusChangeImpact(ctx context.Context, id string, status lifecycle.Status) (*impact.Impact, error) {
	return c.Analyzer.Analyze(ctx, id, status)
}
