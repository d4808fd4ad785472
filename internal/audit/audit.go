package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/PolarWolf314/projfold/internal/utils"
)

// Operation names.
const (
	OpMove      = "move"
	OpStatus    = "status"
	OpProvision = "provision"
	OpProposal  = "proposal"
	OpImport    = "import"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`             // RFC3339 with microseconds.
	User      string `json:"user"`           // Local user performing the action.
	Host      string `json:"host,omitempty"` // Machine the action ran on.
	Operation string `json:"op"`             // Operation name.

	// Optional fields depending on operation.
	ChangeID   string   `json:"change_id,omitempty"`   // Shared by the entries of one status change.
	Project    string   `json:"project,omitempty"`     // Project ID.
	Proposal   string   `json:"proposal,omitempty"`    // For proposal updates.
	FromStatus string   `json:"from_status,omitempty"` // For status/proposal.
	ToStatus   string   `json:"to_status,omitempty"`   // For status/proposal.
	FromPath   string   `json:"from_path,omitempty"`   // For move.
	ToPath     string   `json:"to_path,omitempty"`     // For move/provision.
	Folders    []string `json:"folders,omitempty"`     // For provision: folders copied.
	Count      int      `json:"count,omitempty"`       // For import.
	Error      string   `json:"error,omitempty"`       // Set when the operation failed.
}

// Recorder appends entries to one audit log file.
// An empty Path disables recording.
type Recorder struct {
	Path string
	User string
	Host string

	mu sync.Mutex
}

// NewRecorder returns a recorder for path, attributing entries to the local
// user and host.
func NewRecorder(path string) *Recorder {
	user, err := utils.GetUsername()
	if err != nil {
		user = "unknown"
	}
	host, _ := utils.GetHostname()
	return &Recorder{Path: path, User: user, Host: host}
}

// Log appends an entry to the audit log.
// Failures are ignored; operations should not fail just because audit
// logging failed.
func (r *Recorder) Log(entry Entry) {
	if r == nil || r.Path == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.User == "" {
		entry.User = r.User
	}
	if entry.Host == "" {
		entry.Host = r.Host
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.Path), 0700); err != nil {
		return
	}
	// #nosec G306 -- audit log should be readable by other operators.
	f, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// FilterByProject returns the entries for one project.
func FilterByProject(entries []Entry, project string) []Entry {
	var filtered []Entry
	for _, e := range entries {
		if e.Project == project {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
