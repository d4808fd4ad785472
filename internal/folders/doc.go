// Package folders keeps project directories in the lifecycle root that
// matches their status.
//
// A base path holds four lifecycle roots:
//
//	<base>/00 Inactive/<id> <short-name>/
//	<base>/01 RFPs/<id> <short-name>/
//	<base>/11 Current/<id> <short-name>/
//	<base>/11 Current/00 Additional Folders/   (template origin)
//	<base>/99 Completed/<id> <short-name>/
//
// # Components
//
//   - Layout resolves root and template paths and validates the base path.
//   - Locator scans the roots for a project's directory. The filesystem is
//     the source of truth, so every call rescans; nothing is cached.
//   - Provisioner copies a template set into a project directory. Each
//     template folder is staged under a hidden name and renamed into place,
//     so a failure never leaves a partial folder under its final name and a
//     rerun picks up where the last one stopped.
//   - Mover relocates a project directory with a single rename and
//     provisions the award templates when the move is RFPs -> Current.
//
// Errors carry the attempted paths as *errors.FolderError and unwrap to the
// sentinels in internal/errors.
package folders
