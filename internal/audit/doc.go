// Package audit records every change projfold makes to folders and records.
//
// # Log Format
//
// The audit log is JSON Lines (one JSON object per line), by default at:
//
//	<user data dir>/projfold/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - User name
//   - Operation name (move, status, provision, proposal, import)
//   - Change ID shared by the entries of one status change
//   - Operation-specific details (paths, statuses, folders, error)
//
// # Usage
//
//	rec := audit.NewRecorder(cfg.AuditLog)
//	rec.Log(audit.Entry{Operation: audit.OpMove, Project: id, FromPath: old, ToPath: new})
//
// # Failure Handling
//
// Audit logging is best-effort. If writing fails the operation continues
// without error.
//
// # Reading Logs
//
// ReadEntries parses the log for display. Malformed lines are skipped to
// tolerate partial writes.
package audit
