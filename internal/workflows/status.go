package workflows

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/PolarWolf314/projfold/internal/audit"
	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/folders"
	"github.com/PolarWolf314/projfold/internal/impact"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	"github.com/PolarWolf314/projfold/internal/store"
)

// FolderAction is what a status change will do to the project folder.
type FolderAction string

const (
	// ActionNone: both statuses map to the same root.
	ActionNone FolderAction = "none"

	// ActionMove: the folder moves from the current root to the new one.
	ActionMove FolderAction = "move"

	// ActionAlreadyInPlace: the folder is already under the new root, usually
	// because an earlier attempt moved it and then failed to write the status.
	ActionAlreadyInPlace FolderAction = "already-in-place"
)

// Preview describes a status change before anything is modified.
type Preview struct {
	ChangeID   string
	Project    store.Project
	Transition lifecycle.Transition
	Action     FolderAction

	// Location is nil for ActionNone.
	Location *folders.Location

	// Destination is where the folder will be after the change.
	Destination string

	// Templates is the provisioning plan for an award. Copied lists the
	// folders that will be created.
	Templates *folders.ProvisionResult

	Impact *impact.Impact
}

// ProvisionsTemplates reports whether applying the change copies template folders.
func (p *Preview) ProvisionsTemplates() bool {
	return p.Transition.IsAward() && p.Action != ActionNone
}

// ApplyOptions configures ApplyStatusChange.
type ApplyOptions struct {
	// ApplyProposalSuggestion writes the suggested status to the affected
	// proposals after the project status is saved.
	ApplyProposalSuggestion bool
}

// ApplyResult contains the outcome of an applied status change.
type ApplyResult struct {
	Preview *Preview

	// NewPath is the folder path after the change.
	NewPath string

	// Move is nil unless the folder was moved.
	Move *folders.MoveResult

	Provision    *folders.ProvisionResult
	ProvisionErr error

	// ProposalsUpdated lists the proposal IDs whose status was written.
	ProposalsUpdated []string
	ProposalErr      error
}

// ConfirmFunc decides whether a previewed change should be applied.
type ConfirmFunc func(*Preview) (bool, error)

// PreviewStatusChange reports what changing project id to requested would do.
// Nothing is modified.
//
// Returns ErrProjectNotFound if there is no record.
// Returns ErrUnknownStatus if either status is outside the status set.
// Returns ErrFolderNotFound or ErrInconsistent from the folder lookup.
// Returns *MismatchError if the folder is under neither the current nor the requested root.
func (c *Coordinator) PreviewStatusChange(ctx context.Context, id string, requested lifecycle.Status) (*Preview, error) {
	if err := lifecycle.ValidateProjectID(id); err != nil {
		return nil, err
	}

	project, err := c.Store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	transition, err := lifecycle.ResolveTransition(project.Status, requested)
	if err != nil {
		return nil, err
	}

	preview := &Preview{
		ChangeID:   uuid.NewString(),
		Project:    *project,
		Transition: transition,
		Action:     ActionNone,
	}

	if !transition.IsNoOp() {
		loc, err := c.Locator.Locate(ctx, id)
		if err != nil {
			return nil, err
		}
		preview.Location = loc

		switch loc.Root {
		case transition.FromRoot:
			preview.Action = ActionMove
			preview.Destination = filepath.Join(c.Layout.RootPath(transition.ToRoot), loc.Name)
		case transition.ToRoot:
			preview.Action = ActionAlreadyInPlace
			preview.Destination = loc.Path
		default:
			return nil, &perrors.MismatchError{
				ProjectID:    id,
				Path:         loc.Path,
				FoundRoot:    loc.Root.DirName(),
				ExpectedRoot: transition.FromRoot.DirName(),
			}
		}

		if transition.IsAward() {
			plan, err := c.Provisioner.Plan(loc.Path, c.Mover.AwardTemplates)
			if err != nil {
				c.Log.Warnf("Cannot plan template provisioning: %v", err)
			} else {
				preview.Templates = plan
			}
		}
	}

	preview.Impact, err = c.Analyzer.Analyze(ctx, id, requested)
	if err != nil {
		return nil, err
	}
	return preview, nil
}

// ApplyStatusChange carries out a previewed status change.
//
// The project lock is held for the whole call. The record is reloaded and
// must still have the status the preview saw, otherwise ErrPreviewStale is
// returned. The folder is moved first and the status written second. A
// failed write after a successful move returns *StatusUpdateError, which
// wraps ErrFolderMovedButStatusUpdateFailed; rerunning the change completes it.
//
// Cancellation is honoured until the folder is renamed. After that the
// remaining steps run to completion.
func (c *Coordinator) ApplyStatusChange(ctx context.Context, preview *Preview, opts ApplyOptions) (*ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := preview.Project.ID
	unlock := c.locks.Lock(id)
	defer unlock()

	current, err := c.Store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != preview.Transition.From {
		return nil, fmt.Errorf("%w: %s is now %s, preview expected %s",
			perrors.ErrPreviewStale, id, current.Status, preview.Transition.From)
	}

	result := &ApplyResult{Preview: preview}
	transition := preview.Transition

	switch preview.Action {
	case ActionMove:
		move, err := c.Mover.Move(ctx, id, transition.FromRoot, transition.ToRoot)
		c.recordMove(preview, move, err)
		if err != nil {
			if errors.Is(err, perrors.ErrFolderNotFound) {
				return nil, fmt.Errorf("%w: %w", perrors.ErrPreviewStale, err)
			}
			return nil, err
		}
		result.Move = move
		result.NewPath = move.NewPath
		result.Provision = move.Provision
		result.ProvisionErr = move.ProvisionErr

	case ActionAlreadyInPlace:
		loc, err := c.Locator.Locate(ctx, id)
		if err != nil {
			return nil, err
		}
		if loc.Root != transition.ToRoot {
			return nil, fmt.Errorf("%w: %s is now under %s", perrors.ErrPreviewStale, id, loc.Root)
		}
		result.NewPath = loc.Path
		if transition.IsAward() {
			// Completes a provisioning run cut short by the earlier attempt.
			result.Provision, result.ProvisionErr = c.Provisioner.Provision(ctx, loc.Path, c.Mover.AwardTemplates)
		}
	}

	// The record keeps the folder name; an unmoved folder keeps its old one.
	folderName := current.Folder
	if result.NewPath != "" {
		folderName = filepath.Base(result.NewPath)
	}

	if result.Provision != nil {
		c.recordProvision(preview.ChangeID, id, result.Provision, result.ProvisionErr)
	}

	// The folder may already have moved, so the write must not be cancelled.
	writeCtx := context.WithoutCancel(ctx)
	if err := c.Store.UpdateProjectStatus(writeCtx, id, transition.To, folderName); err != nil {
		c.recordStatus(preview, err)
		if preview.Action == ActionNone {
			return nil, fmt.Errorf("updating status of %s: %w", id, err)
		}
		return result, &perrors.StatusUpdateError{
			ProjectID: id,
			Status:    string(transition.To),
			NewPath:   result.NewPath,
			Err:       err,
		}
	}
	c.recordStatus(preview, nil)
	c.Log.Infof("Status of %s changed from %s to %s", id, transition.From, transition.To)

	if opts.ApplyProposalSuggestion && preview.Impact != nil {
		result.ProposalsUpdated, result.ProposalErr = c.applySuggestion(writeCtx, preview.ChangeID, preview.Impact)
	}
	return result, nil
}

// ChangeStatus previews a status change, asks confirm, and applies it.
// A nil confirm applies without asking. A declined change returns the
// preview in the result together with ErrChangeDeclined.
func (c *Coordinator) ChangeStatus(ctx context.Context, id string, requested lifecycle.Status, confirm ConfirmFunc, opts ApplyOptions) (*ApplyResult, error) {
	preview, err := c.PreviewStatusChange(ctx, id, requested)
	if err != nil {
		return nil, err
	}

	if confirm != nil {
		ok, err := confirm(preview)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &ApplyResult{Preview: preview}, perrors.ErrChangeDeclined
		}
	}

	return c.ApplyStatusChange(ctx, preview, opts)
}

// ApplyProposalSuggestion writes the suggested status to every proposal the
// impact marks as changing. It returns the IDs that were updated.
func (c *Coordinator) ApplyProposalSuggestion(ctx context.Context, im *impact.Impact) ([]string, error) {
	return c.applySuggestion(ctx, uuid.NewString(), im)
}

func (c *Coordinator) applySuggestion(ctx context.Context, changeID string, im *impact.Impact) ([]string, error) {
	var (
		updated []string
		errs    []error
	)
	for _, p := range im.Changes() {
		err := c.Store.UpdateProposalStatus(ctx, p.ID, im.Suggested)
		c.Audit.Log(audit.Entry{
			Operation:  audit.OpProposal,
			ChangeID:   changeID,
			Project:    im.ProjectID,
			Proposal:   p.ID,
			FromStatus: string(p.Status),
			ToStatus:   string(im.Suggested),
			Error:      errorString(err),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.ID, err))
			continue
		}
		updated = append(updated, p.ID)
	}

	if len(errs) > 0 {
		return updated, fmt.Errorf("%w: %w", perrors.ErrProposalUpdateFailed, errors.Join(errs...))
	}
	return updated, nil
}

func (c *Coordinator) recordMove(preview *Preview, move *folders.MoveResult, err error) {
	entry := audit.Entry{
		Operation:  audit.OpMove,
		ChangeID:   preview.ChangeID,
		Project:    preview.Project.ID,
		FromStatus: string(preview.Transition.From),
		ToStatus:   string(preview.Transition.To),
		Error:      errorString(err),
	}
	if preview.Location != nil {
		entry.FromPath = preview.Location.Path
	}
	entry.ToPath = preview.Destination
	if move != nil {
		entry.FromPath = move.OldPath
		entry.ToPath = move.NewPath
	}
	c.Audit.Log(entry)
}

func (c *Coordinator) recordStatus(preview *Preview, err error) {
	c.Audit.Log(audit.Entry{
		Operation:  audit.OpStatus,
		ChangeID:   preview.ChangeID,
		Project:    preview.Project.ID,
		FromStatus: string(preview.Transition.From),
		ToStatus:   string(preview.Transition.To),
		Error:      errorString(err),
	})
}

func (c *Coordinator) recordProvision(changeID, id string, result *folders.ProvisionResult, err error) {
	c.Audit.Log(audit.Entry{
		Operation: audit.OpProvision,
		ChangeID:  changeID,
		Project:   id,
		ToPath:    result.ProjectPath,
		Folders:   result.Copied,
		Error:     errorString(err),
	})
}
