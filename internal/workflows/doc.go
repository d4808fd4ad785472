// Package workflows provides high-level orchestration for projfold commands.
//
// Workflows coordinate the record store, the folder components and the
// audit log to implement complete user-facing features. The cmd/ package is
// a thin layer that parses flags, calls a workflow and formats the result.
//
// # Coordinator
//
// Coordinator owns one instance of every collaborator and exposes the
// operations behind the CLI:
//
//   - PreviewStatusChange and ApplyStatusChange: the two halves of a status
//     change. The preview is read-only; apply takes the per-project lock,
//     revalidates, moves the folder and writes the status.
//   - ChangeStatus: preview, confirm, apply.
//   - LocateProjectFolder, ListProjectsUnderRoot, MoveProjectFolder,
//     ProvisionTemplates, ValidateBasePathConfigured and
//     AnalyzeStatusChangeImpact: single-step operations.
//   - CheckConsistency: compares every record with the filesystem.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package so the CLI
// can print specific guidance:
//
//	result, err := coord.ApplyStatusChange(ctx, preview, opts)
//	if errors.Is(err, perrors.ErrFolderMovedButStatusUpdateFailed) {
//	    // The folder is already in place; rerunning retries only the write.
//	}
//
// # Ordering
//
// A status change always moves the folder before writing the record. If the
// write fails the error says so and a rerun finds the folder already in
// place and only writes the status.
package workflows
