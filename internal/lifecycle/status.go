package lifecycle

import (
	"fmt"
	"strings"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
)

// Status is a project status as stored in the project record.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusRFP       Status = "RFP"
	StatusActive    Status = "Active"
	StatusAwarded   Status = "Awarded"
	StatusOnHold    Status = "On Hold"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusLost      Status = "Lost"
)

// AllStatuses lists every project status in lifecycle order.
var AllStatuses = []Status{
	StatusDraft,
	StatusRFP,
	StatusActive,
	StatusAwarded,
	StatusOnHold,
	StatusCompleted,
	StatusCancelled,
	StatusLost,
}

// statusRoots is the status to lifecycle root table. It must cover AllStatuses.
var statusRoots = map[Status]RootID{
	StatusDraft:     RootRFPs,
	StatusRFP:       RootRFPs,
	StatusActive:    RootCurrent,
	StatusAwarded:   RootCurrent,
	StatusOnHold:    RootInactive,
	StatusCompleted: RootCompleted,
	StatusCancelled: RootInactive,
	StatusLost:      RootInactive,
}

// RootFor returns the lifecycle root a project with the given status belongs under.
func RootFor(s Status) (RootID, error) {
	root, ok := statusRoots[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", perrors.ErrUnknownStatus, string(s))
	}
	return root, nil
}

// ParseStatus converts a stored or user-supplied status string into a Status.
// Matching is case-insensitive on the canonical names; "On Hold" also accepts
// "OnHold", "on-hold" and "on_hold".
func ParseStatus(s string) (Status, error) {
	key := normalizeStatusKey(s)
	for _, status := range AllStatuses {
		if normalizeStatusKey(string(status)) == key {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", perrors.ErrUnknownStatus, s)
}

// Valid reports whether s is a member of the status set.
func (s Status) Valid() bool {
	_, ok := statusRoots[s]
	return ok
}

func (s Status) String() string { return string(s) }

// ProposalStatus is the status of a fee proposal that references a project.
type ProposalStatus string

const (
	ProposalDraft         ProposalStatus = "Draft"
	ProposalPrepared      ProposalStatus = "Prepared"
	ProposalActive        ProposalStatus = "Active"
	ProposalSent          ProposalStatus = "Sent"
	ProposalUnderReview   ProposalStatus = "Under Review"
	ProposalClarification ProposalStatus = "Clarification"
	ProposalNegotiation   ProposalStatus = "Negotiation"
	ProposalAwarded       ProposalStatus = "Awarded"
	ProposalLost          ProposalStatus = "Lost"
	ProposalCancelled     ProposalStatus = "Cancelled"
)

// AllProposalStatuses lists every proposal status.
var AllProposalStatuses = []ProposalStatus{
	ProposalDraft,
	ProposalPrepared,
	ProposalActive,
	ProposalSent,
	ProposalUnderReview,
	ProposalClarification,
	ProposalNegotiation,
	ProposalAwarded,
	ProposalLost,
	ProposalCancelled,
}

// ParseProposalStatus converts a string into a ProposalStatus, case-insensitively.
func ParseProposalStatus(s string) (ProposalStatus, error) {
	key := normalizeStatusKey(s)
	for _, status := range AllProposalStatuses {
		if normalizeStatusKey(string(status)) == key {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: proposal status %q", perrors.ErrUnknownStatus, s)
}

func (s ProposalStatus) String() string { return string(s) }

// normalizeStatusKey lowercases s and drops word separators so that
// "Under Review", "under-review" and "UnderReview" compare equal.
func normalizeStatusKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
