package folders

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	"github.com/PolarWolf314/projfold/internal/utils"
)

// Layout describes where lifecycle roots and templates live on disk.
type Layout struct {
	BasePath string

	// TemplateOrigin is relative to BasePath.
	TemplateOrigin string

	// ProjectPattern is a doublestar glob matched against directory names
	// when listing the projects under a root.
	ProjectPattern string
}

// NewLayout validates the pattern and returns a Layout.
func NewLayout(basePath, templateOrigin, projectPattern string) (Layout, error) {
	if basePath == "" {
		return Layout{}, perrors.ErrBasePathNotConfigured
	}
	if !doublestar.ValidatePattern(projectPattern) {
		return Layout{}, fmt.Errorf("invalid project pattern %q", projectPattern)
	}
	return Layout{
		BasePath:       filepath.Clean(basePath),
		TemplateOrigin: templateOrigin,
		ProjectPattern: projectPattern,
	}, nil
}

// RootPath returns the absolute path of a lifecycle root.
func (l Layout) RootPath(root lifecycle.RootID) string {
	return filepath.Join(l.BasePath, root.DirName())
}

// TemplateOriginPath returns the absolute path of the template origin directory.
func (l Layout) TemplateOriginPath() string {
	return filepath.Join(l.BasePath, filepath.FromSlash(l.TemplateOrigin))
}

// IsProjectFolder reports whether a directory name matches the project pattern.
func (l Layout) IsProjectFolder(name string) bool {
	ok, err := doublestar.Match(l.ProjectPattern, name)
	return err == nil && ok
}

// RootCheck is the state of one lifecycle root.
type RootCheck struct {
	Root   lifecycle.RootID
	Path   string
	Exists bool
}

// Validation is the outcome of Layout.Validate.
type Validation struct {
	BasePath             string
	Roots                []RootCheck
	TemplateOrigin       string
	TemplateOriginExists bool
}

// Healthy reports whether every root and the template origin exist.
func (v *Validation) Healthy() bool {
	for _, r := range v.Roots {
		if !r.Exists {
			return false
		}
	}
	return v.TemplateOriginExists
}

// MissingRoots returns the roots that do not exist.
func (v *Validation) MissingRoots() []RootCheck {
	var missing []RootCheck
	for _, r := range v.Roots {
		if !r.Exists {
			missing = append(missing, r)
		}
	}
	return missing
}

// Validate checks that the base path exists and reports which roots are present.
// A missing base path is an error; missing roots are only reported.
func (l Layout) Validate() (*Validation, error) {
	ok, err := utils.DirExists(l.BasePath)
	if err != nil {
		return nil, &perrors.FolderError{Op: "validate", Path: l.BasePath, Err: classifyFSError(err)}
	}
	if !ok {
		return nil, &perrors.FolderError{Op: "validate", Path: l.BasePath, Err: perrors.ErrBasePathMissing}
	}

	v := &Validation{BasePath: l.BasePath, TemplateOrigin: l.TemplateOriginPath()}
	for _, root := range lifecycle.Roots {
		path := l.RootPath(root)
		exists, err := utils.DirExists(path)
		if err != nil {
			return nil, &perrors.FolderError{Op: "validate", Path: path, Err: classifyFSError(err)}
		}
		v.Roots = append(v.Roots, RootCheck{Root: root, Path: path, Exists: exists})
	}

	v.TemplateOriginExists, err = utils.DirExists(v.TemplateOrigin)
	if err != nil {
		return nil, &perrors.FolderError{Op: "validate", Path: v.TemplateOrigin, Err: classifyFSError(err)}
	}
	return v, nil
}
