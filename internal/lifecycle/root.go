package lifecycle

import (
	"fmt"
	"strings"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
)

// RootID identifies one of the fixed lifecycle root directories.
type RootID int

const (
	RootInactive RootID = iota + 1
	RootRFPs
	RootCurrent
	RootCompleted
)

// Roots lists the lifecycle roots in scan order.
var Roots = []RootID{RootInactive, RootRFPs, RootCurrent, RootCompleted}

var rootDirs = map[RootID]string{
	RootInactive:  "00 Inactive",
	RootRFPs:      "01 RFPs",
	RootCurrent:   "11 Current",
	RootCompleted: "99 Completed",
}

var rootAliases = map[string]RootID{
	"inactive":  RootInactive,
	"rfps":      RootRFPs,
	"rfp":       RootRFPs,
	"current":   RootCurrent,
	"completed": RootCompleted,
	"archive":   RootCompleted,
}

// DirName returns the on-disk directory name of the root, e.g. "11 Current".
func (r RootID) DirName() string {
	return rootDirs[r]
}

func (r RootID) String() string {
	if name, ok := rootDirs[r]; ok {
		return name
	}
	return fmt.Sprintf("RootID(%d)", int(r))
}

// Valid reports whether r is one of the lifecycle roots.
func (r RootID) Valid() bool {
	_, ok := rootDirs[r]
	return ok
}

// ParseRoot accepts either a directory name ("01 RFPs") or a short alias
// ("rfps", "current", "archive").
func ParseRoot(s string) (RootID, error) {
	trimmed := strings.TrimSpace(s)
	for id, dir := range rootDirs {
		if strings.EqualFold(dir, trimmed) {
			return id, nil
		}
	}
	if id, ok := rootAliases[strings.ToLower(trimmed)]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q", perrors.ErrUnknownRoot, s)
}
