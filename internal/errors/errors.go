package errors

import "errors"

// Lookup errors indicate that a folder or record could not be resolved.
var (
	// ErrFolderNotFound indicates no directory for the project exists under the expected root.
	ErrFolderNotFound = errors.New("project folder not found")

	// ErrInconsistent indicates the project folder was found more than once.
	ErrInconsistent = errors.New("project folder found in more than one place")

	// ErrProjectNotFound indicates the project record does not exist in the store.
	ErrProjectNotFound = errors.New("project record not found")

	// ErrProposalNotFound indicates the proposal record does not exist in the store.
	ErrProposalNotFound = errors.New("proposal record not found")
)

// Move errors indicate the folder relocation was refused or failed.
var (
	// ErrDestinationConflict indicates a folder with the same name already exists under the target root.
	ErrDestinationConflict = errors.New("destination folder already exists")

	// ErrPermissionDenied indicates the filesystem refused access to a path.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrCrossDevice indicates the source and destination are on different filesystems.
	ErrCrossDevice = errors.New("source and destination are on different devices")

	// ErrRootMissing indicates a lifecycle root directory does not exist under the base path.
	ErrRootMissing = errors.New("lifecycle root directory does not exist")
)

// Provisioning errors are advisory; the folder move that triggered them has already succeeded.
var (
	// ErrTemplateProvisioningFailed indicates one or more template folders could not be copied.
	ErrTemplateProvisioningFailed = errors.New("template provisioning failed")

	// ErrTemplateOriginMissing indicates the template origin directory does not exist.
	ErrTemplateOriginMissing = errors.New("template origin folder not found")

	// ErrProjectDirMissing indicates templates were requested for a directory that does not exist.
	ErrProjectDirMissing = errors.New("project directory does not exist")

	// ErrUnknownTemplateSet indicates the requested template set is not configured.
	ErrUnknownTemplateSet = errors.New("unknown template set")
)

// Coordination errors indicate the database and the filesystem disagree.
var (
	// ErrFolderMovedButStatusUpdateFailed indicates the folder move is durable but the
	// status write failed. Rerunning the status change retries only the write.
	ErrFolderMovedButStatusUpdateFailed = errors.New("folder moved but status update failed")

	// ErrStatusFolderMismatch indicates the folder lives under a root that matches
	// neither the recorded status nor the requested one.
	ErrStatusFolderMismatch = errors.New("folder location does not match recorded status")

	// ErrPreviewStale indicates the record changed between preview and apply.
	ErrPreviewStale = errors.New("project changed since the preview was produced")

	// ErrChangeDeclined indicates the user did not confirm the previewed change.
	ErrChangeDeclined = errors.New("status change declined")

	// ErrProposalUpdateFailed indicates a suggested proposal status could not be written.
	ErrProposalUpdateFailed = errors.New("proposal status update failed")
)

// Input and configuration errors.
var (
	// ErrUnknownStatus indicates a status string outside the closed status set.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrUnknownRoot indicates a lifecycle root name that is not recognised.
	ErrUnknownRoot = errors.New("unknown lifecycle root")

	// ErrInvalidProjectID indicates a malformed project identifier.
	ErrInvalidProjectID = errors.New("invalid project identifier")

	// ErrBasePathNotConfigured indicates no base path was set in config or environment.
	ErrBasePathNotConfigured = errors.New("project base path is not configured")

	// ErrBasePathMissing indicates the configured base path does not exist.
	ErrBasePathMissing = errors.New("project base path does not exist")

	// ErrUnknownDriver indicates the configured record store driver is not supported.
	ErrUnknownDriver = errors.New("unknown database driver")

	// ErrInvalidDateFormat indicates a date filter was not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
