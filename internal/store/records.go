package store

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/projfold/internal/configs"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

// RecordFile is the TOML layout accepted by "projfold records import":
//
//	[[projects]]
//	id = "25-97105"
//	name = "Hotel Tower"
//	short_name = "Hotel"
//	status = "RFP"
//
//	[[proposals]]
//	id = "fee-1"
//	number = "P-0142"
//	project = "projects:25_97105"
//	status = "Sent"
type RecordFile struct {
	Projects  []Project  `toml:"projects"`
	Proposals []Proposal `toml:"proposals"`
}

// ImportResult counts the records written by Import.
type ImportResult struct {
	Projects  int
	Proposals int
}

// LoadRecordFile reads a record file and normalises status spellings.
// A project without a folder gets the default "<id> <short name>".
func LoadRecordFile(path string) (*RecordFile, error) {
	var file RecordFile
	if _, err := configs.LoadTOML(path, &file); err != nil {
		return nil, fmt.Errorf("failed to read records from %s: %w", path, err)
	}

	for i := range file.Projects {
		status, err := lifecycle.ParseStatus(string(file.Projects[i].Status))
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", file.Projects[i].ID, err)
		}
		file.Projects[i].Status = status
		if file.Projects[i].Folder == "" {
			file.Projects[i].Folder = lifecycle.FolderName(file.Projects[i].ID, file.Projects[i].ShortName)
		}
	}
	for i := range file.Proposals {
		status, err := lifecycle.ParseProposalStatus(string(file.Proposals[i].Status))
		if err != nil {
			return nil, fmt.Errorf("proposal %s: %w", file.Proposals[i].ID, err)
		}
		file.Proposals[i].Status = status
	}
	return &file, nil
}

// Import writes every record in file to s, replacing records with the same ID.
// It stops at the first failure; records written before it remain.
func Import(ctx context.Context, s Store, file *RecordFile) (ImportResult, error) {
	var result ImportResult
	for i := range file.Projects {
		if err := s.PutProject(ctx, &file.Projects[i]); err != nil {
			return result, err
		}
		result.Projects++
	}
	for i := range file.Proposals {
		if err := s.PutProposal(ctx, &file.Proposals[i]); err != nil {
			return result, err
		}
		result.Proposals++
	}
	return result, nil
}
