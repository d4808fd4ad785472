package cmd

import (
	"errors"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/utils"
)

// formatError formats a workflow error for display to the user.
func formatError(err error) string {
	var (
		statusErr    *perrors.StatusUpdateError
		inconsistent *perrors.InconsistentError
		mismatch     *perrors.MismatchError
		folderErr    *perrors.FolderError
	)

	switch {
	case errors.As(err, &statusErr):
		return ui.Cross() + " Folder moved to " + ui.Path.Sprint(statusErr.NewPath) + " but the status was not saved\n" +
			ui.Arrow() + " " + statusErr.Err.Error() + "\n" +
			ui.Arrow() + " Rerun " + ui.Code.Sprint("projfold project status "+statusErr.ProjectID+" \""+statusErr.Status+"\"") +
			" to finish; the folder is already in place"

	case errors.As(err, &inconsistent):
		return ui.Cross() + " " + ui.Highlight.Sprint(inconsistent.ProjectID) + " has a folder in more than one place:" +
			utils.FormatPaths(inconsistent.Paths) +
			ui.Arrow() + " Merge or remove the duplicates, then run " + ui.Code.Sprint("projfold project check")

	case errors.As(err, &mismatch):
		return ui.Cross() + " " + ui.Highlight.Sprint(mismatch.ProjectID) + " is under " + ui.Root.Sprint(mismatch.FoundRoot) +
			" but its status maps to " + ui.Root.Sprint(mismatch.ExpectedRoot) + "\n" +
			ui.Arrow() + " Run " + ui.Code.Sprint("projfold project check") + " to see every drifted project"

	case errors.Is(err, perrors.ErrBasePathNotConfigured):
		return ui.Cross() + " The project base path is not configured\n" +
			ui.Arrow() + " Run " + ui.Code.Sprint("projfold config init --base-path <path>") + " or set " + ui.Code.Sprint("PROJECT_BASE_PATH")

	case errors.Is(err, perrors.ErrDestinationConflict):
		msg := ui.Cross() + " A folder with the same name already exists at the destination"
		if errors.As(err, &folderErr) && folderErr.Dest != "" {
			msg += ": " + ui.Path.Sprint(folderErr.Dest)
		}
		return msg + "\n" + ui.Arrow() + " Nothing was moved"

	case errors.Is(err, perrors.ErrProjectNotFound):
		return ui.Cross() + " " + err.Error() + "\n" +
			ui.Arrow() + " Import it with " + ui.Code.Sprint("projfold records import <file>")

	case errors.Is(err, perrors.ErrPreviewStale):
		return ui.Cross() + " " + err.Error() + "\n" +
			ui.Arrow() + " Nothing was changed; run the command again"

	case errors.Is(err, perrors.ErrUnknownRoot):
		return ui.Cross() + " " + err.Error() + "\n" +
			ui.Arrow() + " Valid roots: " + rootNames()

	case errors.Is(err, perrors.ErrUnknownStatus):
		return ui.Cross() + " " + err.Error() + "\n" +
			ui.Arrow() + " Valid statuses: " + statusNames()

	case errors.Is(err, perrors.ErrPermissionDenied):
		return ui.Cross() + " Permission denied: " + err.Error()

	case errors.Is(err, perrors.ErrCrossDevice):
		return ui.Cross() + " " + err.Error() + "\n" +
			ui.Arrow() + " All lifecycle roots must be on the same filesystem"

	default:
		return ui.Cross() + " " + err.Error()
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
// Input errors and lookups that found nothing are reported and exit cleanly.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, perrors.ErrBasePathNotConfigured),
		errors.Is(err, perrors.ErrUnknownRoot),
		errors.Is(err, perrors.ErrUnknownStatus),
		errors.Is(err, perrors.ErrUnknownTemplateSet),
		errors.Is(err, perrors.ErrInvalidProjectID),
		errors.Is(err, perrors.ErrInvalidDateFormat),
		errors.Is(err, perrors.ErrFolderNotFound),
		errors.Is(err, perrors.ErrProjectNotFound),
		errors.Is(err, perrors.ErrChangeDeclined):
		return false
	default:
		return true
	}
}
