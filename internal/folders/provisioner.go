package folders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	logger "github.com/PolarWolf314/projfold/internal/logging"
	"github.com/PolarWolf314/projfold/internal/utils"
)

// stagingPrefix marks hidden directories that hold a template folder while it is copied.
const stagingPrefix = ".projfold-staging-"

// TemplateSet is an ordered list of folder names copied from the template origin.
type TemplateSet struct {
	Name    string
	Folders []string
}

// ProvisionFailure is a template folder that could not be copied.
type ProvisionFailure struct {
	Folder string
	Err    error
}

// ProvisionResult lists what happened to each folder of a template set.
type ProvisionResult struct {
	ProjectPath string
	Set         string
	Copied      []string
	Skipped     []string
	Missing     []string
	Failed      []ProvisionFailure
}

// Complete reports whether every folder of the set is now present.
func (r *ProvisionResult) Complete() bool {
	return len(r.Failed) == 0 && len(r.Missing) == 0
}

// Provisioner copies template sets into project directories.
type Provisioner struct {
	Layout Layout
	Log    logger.Logger
}

func NewProvisioner(layout Layout, log logger.Logger) *Provisioner {
	return &Provisioner{Layout: layout, Log: log}
}

// Plan reports what Provision would do without copying anything.
// Copied lists the folders that would be created.
func (p *Provisioner) Plan(projectPath string, set TemplateSet) (*ProvisionResult, error) {
	origin, err := p.checkPaths(projectPath)
	if err != nil {
		return nil, err
	}

	result := &ProvisionResult{ProjectPath: projectPath, Set: set.Name}
	for _, name := range set.Folders {
		exists, err := utils.PathExists(filepath.Join(projectPath, name))
		if err != nil {
			result.Failed = append(result.Failed, ProvisionFailure{Folder: name, Err: classifyFSError(err)})
			continue
		}
		if exists {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		srcExists, err := utils.DirExists(filepath.Join(origin, name))
		if err != nil || !srcExists {
			result.Missing = append(result.Missing, name)
			continue
		}
		result.Copied = append(result.Copied, name)
	}
	return result, nil
}

// Provision copies every folder of set that the project directory lacks.
//
// Existing folders are left alone. Each copy is staged under a hidden name and
// renamed into place. A failed folder does not undo folders already copied;
// the result is returned together with an error wrapping
// ErrTemplateProvisioningFailed.
func (p *Provisioner) Provision(ctx context.Context, projectPath string, set TemplateSet) (*ProvisionResult, error) {
	origin, err := p.checkPaths(projectPath)
	if err != nil {
		return nil, err
	}

	p.removeStaleStaging(projectPath)

	result := &ProvisionResult{ProjectPath: projectPath, Set: set.Name}
	for i, name := range set.Folders {
		if err := ctx.Err(); err != nil {
			for _, rest := range set.Folders[i:] {
				result.Failed = append(result.Failed, ProvisionFailure{Folder: rest, Err: err})
			}
			break
		}

		dest := filepath.Join(projectPath, name)
		exists, err := utils.PathExists(dest)
		if err != nil {
			result.Failed = append(result.Failed, ProvisionFailure{Folder: name, Err: classifyFSError(err)})
			continue
		}
		if exists {
			p.Log.Debugf("Template folder %s already present in %s", name, projectPath)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		src := filepath.Join(origin, name)
		srcExists, err := utils.DirExists(src)
		if err != nil {
			result.Failed = append(result.Failed, ProvisionFailure{Folder: name, Err: classifyFSError(err)})
			continue
		}
		if !srcExists {
			p.Log.Warnf("Template folder %s not found in %s", name, origin)
			result.Missing = append(result.Missing, name)
			continue
		}

		if err := stageAndRename(src, dest); err != nil {
			p.Log.Debugf("Copying template %s failed: %v", name, err)
			result.Failed = append(result.Failed, ProvisionFailure{Folder: name, Err: err})
			continue
		}
		p.Log.Infof("Copied template folder %s", name)
		result.Copied = append(result.Copied, name)
	}

	if !result.Complete() {
		return result, &perrors.FolderError{
			Op:   "provision",
			Path: projectPath,
			Err:  fmt.Errorf("%w: %s", perrors.ErrTemplateProvisioningFailed, summarizeFailures(result)),
		}
	}
	return result, nil
}

// checkPaths verifies the project directory and template origin and returns the origin path.
func (p *Provisioner) checkPaths(projectPath string) (string, error) {
	ok, err := utils.DirExists(projectPath)
	if err != nil {
		return "", &perrors.FolderError{Op: "provision", Path: projectPath, Err: classifyFSError(err)}
	}
	if !ok {
		return "", &perrors.FolderError{Op: "provision", Path: projectPath, Err: perrors.ErrProjectDirMissing}
	}

	origin := p.Layout.TemplateOriginPath()
	ok, err = utils.DirExists(origin)
	if err != nil {
		return "", &perrors.FolderError{Op: "provision", Path: origin, Err: classifyFSError(err)}
	}
	if !ok {
		return "", &perrors.FolderError{
			Op:   "provision",
			Path: origin,
			Err:  fmt.Errorf("%w: %w", perrors.ErrTemplateProvisioningFailed, perrors.ErrTemplateOriginMissing),
		}
	}
	return origin, nil
}

// removeStaleStaging deletes staging directories left behind by an interrupted run.
func (p *Provisioner) removeStaleStaging(projectPath string) {
	entries, err := os.ReadDir(projectPath)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), stagingPrefix) {
			continue
		}
		stale := filepath.Join(projectPath, entry.Name())
		if err := os.RemoveAll(stale); err != nil {
			p.Log.Warnf("Could not remove stale staging directory %s: %v", stale, err)
			continue
		}
		p.Log.Debugf("Removed stale staging directory %s", stale)
	}
}

// stageAndRename copies src next to dest under a hidden name, then renames it to dest.
func stageAndRename(src, dest string) error {
	staging := filepath.Join(filepath.Dir(dest), stagingPrefix+uuid.NewString())
	if err := copyTree(src, staging); err != nil {
		_ = os.RemoveAll(staging)
		return classifyFSError(err)
	}
	if err := os.Rename(staging, dest); err != nil {
		_ = os.RemoveAll(staging)
		return classifyFSError(err)
	}
	return nil
}

func summarizeFailures(r *ProvisionResult) string {
	var parts []string
	if len(r.Missing) > 0 {
		parts = append(parts, "missing from template origin: "+strings.Join(r.Missing, ", "))
	}
	for _, f := range r.Failed {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Folder, f.Err))
	}
	return strings.Join(parts, "; ")
}
