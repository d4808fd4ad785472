package impact

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/projfold/internal/lifecycle"
	"github.com/PolarWolf314/projfold/internal/store"
)

// ProposalLister is the part of store.Store the analyzer reads.
type ProposalLister interface {
	ListProposals(ctx context.Context) ([]store.Proposal, error)
}

// AffectedProposal is a proposal that references the project.
type AffectedProposal struct {
	store.Proposal

	// WouldChange is true when the suggested status differs from the current one.
	WouldChange bool
}

// Impact lists the proposals affected by a status change.
type Impact struct {
	ProjectID string
	NewStatus lifecycle.Status
	Proposals []AffectedProposal

	// Suggested is empty when the new status implies no proposal change.
	Suggested lifecycle.ProposalStatus
}

// HasSuggestion reports whether any proposal would change under the suggestion.
func (i *Impact) HasSuggestion() bool {
	for _, p := range i.Proposals {
		if p.WouldChange {
			return true
		}
	}
	return false
}

// Changes returns the proposals the suggestion would update.
func (i *Impact) Changes() []AffectedProposal {
	var changes []AffectedProposal
	for _, p := range i.Proposals {
		if p.WouldChange {
			changes = append(changes, p)
		}
	}
	return changes
}

// Lines renders the impact as human-readable lines.
func (i *Impact) Lines() []string {
	if len(i.Proposals) == 0 {
		return []string{fmt.Sprintf("No proposals reference %s.", i.ProjectID)}
	}

	lines := []string{fmt.Sprintf("%d proposal(s) reference %s:", len(i.Proposals), i.ProjectID)}
	for _, p := range i.Proposals {
		label := p.Number
		if label == "" {
			label = p.ID
		}
		if p.Name != "" {
			label += " " + p.Name
		}
		if p.WouldChange {
			lines = append(lines, fmt.Sprintf("  %s: %s -> %s", label, p.Status, i.Suggested))
		} else {
			lines = append(lines, fmt.Sprintf("  %s: %s (unchanged)", label, p.Status))
		}
	}
	if i.Suggested == "" {
		lines = append(lines, fmt.Sprintf("Status %s does not imply a proposal status.", i.NewStatus))
	}
	return lines
}

// SuggestedProposalStatus maps a project status to the proposal status it implies.
// The second result is false when there is no suggestion.
func SuggestedProposalStatus(s lifecycle.Status) (lifecycle.ProposalStatus, bool) {
	switch s {
	case lifecycle.StatusLost:
		return lifecycle.ProposalLost, true
	case lifecycle.StatusCancelled:
		return lifecycle.ProposalCancelled, true
	case lifecycle.StatusAwarded, lifecycle.StatusActive:
		return lifecycle.ProposalAwarded, true
	}
	return "", false
}

// Analyzer finds the proposals affected by a status change.
type Analyzer struct {
	Proposals ProposalLister
}

func NewAnalyzer(proposals ProposalLister) *Analyzer {
	return &Analyzer{Proposals: proposals}
}

// Analyze returns the proposals that reference projectID and the status
// suggested for them if the project moves to newStatus. It never writes.
func (a *Analyzer) Analyze(ctx context.Context, projectID string, newStatus lifecycle.Status) (*Impact, error) {
	if err := lifecycle.ValidateProjectID(projectID); err != nil {
		return nil, err
	}
	if _, err := lifecycle.RootFor(newStatus); err != nil {
		return nil, err
	}

	proposals, err := a.Proposals.ListProposals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}

	result := &Impact{ProjectID: projectID, NewStatus: newStatus}
	suggested, ok := SuggestedProposalStatus(newStatus)
	if ok {
		result.Suggested = suggested
	}

	want := lifecycle.NormalizeProjectRef(projectID)
	for _, p := range proposals {
		if lifecycle.NormalizeProjectRef(p.ProjectRef) != want {
			continue
		}
		result.Proposals = append(result.Proposals, AffectedProposal{
			Proposal:    p,
			WouldChange: ok && p.Status != suggested,
		})
	}
	return result, nil
}
