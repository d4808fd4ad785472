package errors

import (
	"fmt"
	"strings"
)

// FolderError records a failed folder operation together with the paths it touched.
type FolderError struct {
	Op        string
	ProjectID string
	Path      string
	Dest      string
	Err       error
}

func (e *FolderError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.ProjectID != "" {
		b.WriteString(" " + e.ProjectID)
	}
	switch {
	case e.Path != "" && e.Dest != "":
		fmt.Fprintf(&b, ": %s -> %s", e.Path, e.Dest)
	case e.Path != "":
		fmt.Fprintf(&b, ": %s", e.Path)
	case e.Dest != "":
		fmt.Fprintf(&b, ": %s", e.Dest)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *FolderError) Unwrap() error { return e.Err }

// InconsistentError reports every location at which a project folder was found.
type InconsistentError struct {
	ProjectID string
	Roots     []string
	Paths     []string
}

func (e *InconsistentError) Error() string {
	return fmt.Sprintf("%v: %s found under %s", ErrInconsistent, e.ProjectID, strings.Join(e.Roots, ", "))
}

func (e *InconsistentError) Unwrap() error { return ErrInconsistent }

// MismatchError reports a folder found under a root unrelated to the requested transition.
type MismatchError struct {
	ProjectID    string
	Path         string
	FoundRoot    string
	ExpectedRoot string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: %s is under %s but its status maps to %s (%s)",
		ErrStatusFolderMismatch, e.ProjectID, e.FoundRoot, e.ExpectedRoot, e.Path)
}

func (e *MismatchError) Unwrap() error { return ErrStatusFolderMismatch }

// StatusUpdateError is returned when the folder move succeeded but the record write did not.
// NewPath is where the folder now lives.
type StatusUpdateError struct {
	ProjectID string
	Status    string
	NewPath   string
	Err       error
}

func (e *StatusUpdateError) Error() string {
	return fmt.Sprintf("%v: %s is now at %s but status %q was not saved: %v",
		ErrFolderMovedButStatusUpdateFailed, e.ProjectID, e.NewPath, e.Status, e.Err)
}

func (e *StatusUpdateError) Unwrap() []error {
	return []error{ErrFolderMovedButStatusUpdateFailed, e.Err}
}
