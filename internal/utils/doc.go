// Package utils provides shared helpers for projfold.
//
// # Filesystem Utilities
//
//   - DirExists: reports whether a path is an existing directory
//   - PathExists: reports whether anything exists at a path, without following symlinks
//
// # System Utilities
//
//   - GetUsername: returns the current system username (recorded in the audit log)
//   - GetHostname: returns the system hostname (recorded in the audit log)
//
// # String Utilities
//
//   - FormatPaths: formats paths as an indented list for error output
//   - Plural: picks the singular or plural noun for a count
//
// # Terminal Utilities
//
//   - IsTerminal: reports whether stdin is interactive
//   - IsStdoutTerminal: reports whether stdout is interactive
package utils
