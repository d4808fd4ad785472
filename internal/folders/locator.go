package folders

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	logger "github.com/PolarWolf314/projfold/internal/logging"
)

// Location is where a project directory was found.
type Location struct {
	ProjectID string
	Root      lifecycle.RootID
	Name      string
	Path      string
}

// Locator finds project directories by scanning the lifecycle roots.
type Locator struct {
	Layout Layout
	Log    logger.Logger
}

func NewLocator(layout Layout, log logger.Logger) *Locator {
	return &Locator{Layout: layout, Log: log}
}

// Locate finds the directory of project id.
//
// A directory matches when its name is id or starts with id followed by a
// space. The template origin is never a match. Exactly one match is
// returned as a Location. No match returns an
// error wrapping ErrFolderNotFound; several matches return an
// *InconsistentError.
func (l *Locator) Locate(ctx context.Context, id string) (*Location, error) {
	if err := lifecycle.ValidateProjectID(id); err != nil {
		return nil, err
	}

	origin := l.Layout.TemplateOriginPath()
	var matches []Location
	for _, root := range lifecycle.Roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := l.readRoot(root)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() || !lifecycle.MatchesFolder(entry.Name(), id) {
				continue
			}
			path := filepath.Join(l.Layout.RootPath(root), entry.Name())
			if path == origin {
				l.Log.Debugf("Skipping template origin %s", path)
				continue
			}
			matches = append(matches, Location{
				ProjectID: id,
				Root:      root,
				Name:      entry.Name(),
				Path:      path,
			})
		}
	}

	switch len(matches) {
	case 0:
		return nil, &perrors.FolderError{Op: "locate", ProjectID: id, Path: l.Layout.BasePath, Err: perrors.ErrFolderNotFound}
	case 1:
		l.Log.Debugf("Located %s under %s: %s", id, matches[0].Root, matches[0].Path)
		return &matches[0], nil
	}

	inconsistent := &perrors.InconsistentError{ProjectID: id}
	for _, m := range matches {
		inconsistent.Roots = append(inconsistent.Roots, m.Root.DirName())
		inconsistent.Paths = append(inconsistent.Paths, m.Path)
	}
	return nil, inconsistent
}

// List returns the sorted project directory names under a root.
// Only directories matching the layout's project pattern are included.
func (l *Locator) List(ctx context.Context, root lifecycle.RootID) ([]string, error) {
	if !root.Valid() {
		return nil, perrors.ErrUnknownRoot
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := l.Layout.RootPath(root)
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &perrors.FolderError{Op: "list", Path: path, Err: perrors.ErrRootMissing}
		}
		return nil, &perrors.FolderError{Op: "list", Path: path, Err: classifyFSError(err)}
	}

	projects := []string{}
	for _, entry := range entries {
		if entry.IsDir() && l.Layout.IsProjectFolder(entry.Name()) {
			projects = append(projects, entry.Name())
		}
	}
	sort.Strings(projects)
	return projects, nil
}

// ScanAll lists the project directories under every root.
// Missing roots are skipped.
func (l *Locator) ScanAll(ctx context.Context) ([]Location, error) {
	var all []Location
	for _, root := range lifecycle.Roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := l.readRoot(root)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() || !l.Layout.IsProjectFolder(entry.Name()) {
				continue
			}
			all = append(all, Location{
				ProjectID: ProjectIDFromFolder(entry.Name()),
				Root:      root,
				Name:      entry.Name(),
				Path:      filepath.Join(l.Layout.RootPath(root), entry.Name()),
			})
		}
	}
	return all, nil
}

// readRoot lists a root directory. A missing root yields no entries.
func (l *Locator) readRoot(root lifecycle.RootID) ([]os.DirEntry, error) {
	path := l.Layout.RootPath(root)
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Log.Debugf("Skipping missing root %s", path)
			return nil, nil
		}
		return nil, &perrors.FolderError{Op: "scan", Path: path, Err: classifyFSError(err)}
	}
	return entries, nil
}

// ProjectIDFromFolder returns the leading identifier token of a folder name.
func ProjectIDFromFolder(name string) string {
	id, _, _ := strings.Cut(name, " ")
	return id
}
