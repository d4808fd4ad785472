package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	"github.com/PolarWolf314/projfold/internal/store"
)

// ConsistencyState classifies a project record against the filesystem.
type ConsistencyState int

const (
	// StateOK means the folder is under the root its status maps to.
	StateOK ConsistencyState = iota
	// StateDrift means the folder is under a different root.
	StateDrift
	// StateMissing means no folder was found.
	StateMissing
	// StateInconsistent means the folder was found more than once.
	StateInconsistent
	// StateUnknownStatus means the record's status is outside the status set.
	StateUnknownStatus
	// StateOrphan means a project folder exists with no record.
	StateOrphan
)

func (s ConsistencyState) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateDrift:
		return "drift"
	case StateMissing:
		return "missing"
	case StateInconsistent:
		return "inconsistent"
	case StateUnknownStatus:
		return "unknown-status"
	case StateOrphan:
		return "orphan"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for ConsistencyState.
func (s ConsistencyState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ProjectCheck is the state of one project.
type ProjectCheck struct {
	ProjectID    string           `json:"project"`
	Status       lifecycle.Status `json:"status,omitempty"`
	State        ConsistencyState `json:"state"`
	ExpectedRoot string           `json:"expected_root,omitempty"`
	FoundRoots   []string         `json:"found_roots,omitempty"`
	Paths        []string         `json:"paths,omitempty"`
	Suggestion   string           `json:"suggestion,omitempty"`
}

// ConsistencySummary counts checks by state.
type ConsistencySummary struct {
	OK            int `json:"ok"`
	Drift         int `json:"drift"`
	Missing       int `json:"missing"`
	Inconsistent  int `json:"inconsistent"`
	UnknownStatus int `json:"unknown_status"`
	Orphans       int `json:"orphans"`
}

// Problems returns the number of checks that are not OK.
func (s ConsistencySummary) Problems() int {
	return s.Drift + s.Missing + s.Inconsistent + s.UnknownStatus + s.Orphans
}

// ConsistencyReport is the result of CheckConsistency.
type ConsistencyReport struct {
	Checks  []ProjectCheck     `json:"checks"`
	Summary ConsistencySummary `json:"summary"`
}

// CheckConsistency compares every project record with the folders on disk.
// It is read-only.
func (c *Coordinator) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	projects, err := c.Store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	report := &ConsistencyReport{}
	known := map[string]bool{}

	for _, p := range projects {
		known[p.ID] = true
		check, err := c.checkProject(ctx, p)
		if err != nil {
			return nil, err
		}
		report.Checks = append(report.Checks, check)
	}

	all, err := c.Locator.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, loc := range all {
		if known[loc.ProjectID] {
			continue
		}
		report.Checks = append(report.Checks, ProjectCheck{
			ProjectID:  loc.ProjectID,
			State:      StateOrphan,
			FoundRoots: []string{loc.Root.DirName()},
			Paths:      []string{loc.Path},
			Suggestion: "Import a record for this project or archive the folder",
		})
	}

	report.Summary = summarize(report.Checks)
	return report, nil
}

func (c *Coordinator) checkProject(ctx context.Context, p store.Project) (ProjectCheck, error) {
	id := p.ID
	check := ProjectCheck{ProjectID: id, Status: p.Status}

	expected, err := lifecycle.RootFor(p.Status)
	if err != nil {
		check.State = StateUnknownStatus
		check.Suggestion = "Set a valid status on the record"
		return check, nil
	}
	check.ExpectedRoot = expected.DirName()

	loc, err := c.Locator.Locate(ctx, id)
	var inconsistent *perrors.InconsistentError
	switch {
	case errors.As(err, &inconsistent):
		check.State = StateInconsistent
		check.FoundRoots = inconsistent.Roots
		check.Paths = inconsistent.Paths
		check.Suggestion = "Merge the duplicate folders by hand"
		return check, nil
	case errors.Is(err, perrors.ErrFolderNotFound):
		check.State = StateMissing
		name := p.Folder
		if name == "" {
			name = lifecycle.FolderName(p.ID, p.ShortName)
		}
		check.Suggestion = fmt.Sprintf("Create %q under %s", name, expected.DirName())
		return check, nil
	case errors.Is(err, perrors.ErrInvalidProjectID):
		check.State = StateMissing
		check.Suggestion = "Fix the project ID on the record"
		return check, nil
	case err != nil:
		return check, err
	}

	check.FoundRoots = []string{loc.Root.DirName()}
	check.Paths = []string{loc.Path}
	if loc.Root != expected {
		check.State = StateDrift
		check.Suggestion = fmt.Sprintf("Run: projfold folder move %s %q %q", id, loc.Root.DirName(), expected.DirName())
		return check, nil
	}
	check.State = StateOK
	return check, nil
}

func summarize(checks []ProjectCheck) ConsistencySummary {
	var s ConsistencySummary
	for _, check := range checks {
		switch check.State {
		case StateOK:
			s.OK++
		case StateDrift:
			s.Drift++
		case StateMissing:
			s.Missing++
		case StateInconsistent:
			s.Inconsistent++
		case StateUnknownStatus:
			s.UnknownStatus++
		case StateOrphan:
			s.Orphans++
		}
	}
	return s
}
