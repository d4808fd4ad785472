// Package errors provides typed error values for projfold.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Errors that
// need to carry the paths involved in a failed operation are modelled as
// struct types (FolderError, InconsistentError, MismatchError,
// StatusUpdateError) that unwrap to the sentinels.
//
// # Error Categories
//
//   - Lookup errors: the folder or record could not be found (ErrFolderNotFound,
//     ErrProjectNotFound, ErrInconsistent)
//   - Move errors: the relocation was refused or failed (ErrDestinationConflict,
//     ErrPermissionDenied, ErrCrossDevice)
//   - Provisioning errors: advisory, the move already succeeded
//     (ErrTemplateProvisioningFailed)
//   - Coordination errors: the two stores of truth disagree
//     (ErrFolderMovedButStatusUpdateFailed, ErrStatusFolderMismatch)
//   - Configuration errors: the base path or template sets are unusable
//
// # Usage
//
// Handle errors in the CLI layer:
//
//	result, err := coordinator.ApplyStatusChange(ctx, preview, opts)
//	if errors.Is(err, perrors.ErrFolderMovedButStatusUpdateFailed) {
//	    // The folder is in place; rerun the status change to retry the write.
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading root %s: %w", root, errors.ErrPermissionDenied)
package errors
