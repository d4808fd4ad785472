package workflows

import (
	"context"

	"github.com/PolarWolf314/projfold/internal/audit"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	"github.com/PolarWolf314/projfold/internal/store"
)

// ImportRecordsResult contains the outcome of a records import.
type ImportRecordsResult struct {
	store.ImportResult

	// SourcePath is the file that was read.
	SourcePath string

	// NonStandardIDs lists imported project IDs not in YY-CCCNN form.
	// They are imported anyway.
	NonStandardIDs []string
}

// ImportRecords loads a TOML record file into the store.
// Records with an existing ID are replaced.
func (c *Coordinator) ImportRecords(ctx context.Context, path string) (*ImportRecordsResult, error) {
	file, err := store.LoadRecordFile(path)
	if err != nil {
		return nil, err
	}

	imported, err := store.Import(ctx, c.Store, file)
	c.Audit.Log(audit.Entry{
		Operation: audit.OpImport,
		ToPath:    path,
		Count:     imported.Projects + imported.Proposals,
		Error:     errorString(err),
	})
	if err != nil {
		return nil, err
	}

	result := &ImportRecordsResult{ImportResult: imported, SourcePath: path}
	for _, p := range file.Projects {
		if _, err := lifecycle.ParseProjectNumber(p.ID); err != nil {
			c.Log.Debugf("Project %s: %v", p.ID, err)
			result.NonStandardIDs = append(result.NonStandardIDs, p.ID)
		}
	}

	c.Log.Infof("Imported %d projects and %d proposals from %s", imported.Projects, imported.Proposals, path)
	return result, nil
}

// RecordsResult lists every record in the store.
type RecordsResult struct {
	Projects  []store.Project
	Proposals []store.Proposal
}

// ListRecords returns all project and proposal records.
func (c *Coordinator) ListRecords(ctx context.Context) (*RecordsResult, error) {
	projects, err := c.Store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	proposals, err := c.Store.ListProposals(ctx)
	if err != nil {
		return nil, err
	}
	return &RecordsResult{Projects: projects, Proposals: proposals}, nil
}
