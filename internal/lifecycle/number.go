package lifecycle

import (
	"fmt"
	"strconv"
	"strings"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
)

// ProjectNumber is the structured form of a YY-CCCNN project identifier:
// two-digit year, three-digit country dial code and two-digit sequence.
type ProjectNumber struct {
	Year    int
	Country int
	Seq     int
}

// ParseProjectNumber parses an identifier such as "25-97105".
func ParseProjectNumber(id string) (ProjectNumber, error) {
	year, rest, ok := strings.Cut(id, "-")
	if !ok || len(year) != 2 || len(rest) != 5 {
		return ProjectNumber{}, fmt.Errorf("%w: %q is not in YY-CCCNN form", perrors.ErrInvalidProjectID, id)
	}

	if !allDigits(year) {
		return ProjectNumber{}, fmt.Errorf("%w: invalid year in %q", perrors.ErrInvalidProjectID, id)
	}
	if !allDigits(rest[:3]) {
		return ProjectNumber{}, fmt.Errorf("%w: invalid country code in %q", perrors.ErrInvalidProjectID, id)
	}
	if !allDigits(rest[3:]) {
		return ProjectNumber{}, fmt.Errorf("%w: invalid sequence in %q", perrors.ErrInvalidProjectID, id)
	}

	y, _ := strconv.Atoi(year)
	c, _ := strconv.Atoi(rest[:3])
	s, _ := strconv.Atoi(rest[3:])
	return ProjectNumber{Year: y, Country: c, Seq: s}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ValidateProjectID checks that id can safely be used to look up a folder.
// It does not require the YY-CCCNN form; older projects may use other schemes.
func ValidateProjectID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: empty identifier", perrors.ErrInvalidProjectID)
	case id != strings.TrimSpace(id):
		return fmt.Errorf("%w: %q has surrounding whitespace", perrors.ErrInvalidProjectID, id)
	case strings.ContainsAny(id, `/\`) || id == "." || id == "..":
		return fmt.Errorf("%w: %q contains a path element", perrors.ErrInvalidProjectID, id)
	}
	return nil
}

// FolderName returns the directory name for a project: "<id> <shortName>".
func FolderName(id, shortName string) string {
	shortName = strings.TrimSpace(shortName)
	if shortName == "" {
		return id
	}
	return id + " " + shortName
}

// MatchesFolder reports whether a directory name belongs to the project id.
// The id must be the whole leading token, so "25-9710" does not match
// "25-97105 Hotel".
func MatchesFolder(name, id string) bool {
	if !strings.HasPrefix(name, id) {
		return false
	}
	rest := name[len(id):]
	return rest == "" || rest[0] == ' '
}

// NormalizeProjectRef reduces a stored project reference to a bare identifier.
// Record stores wrap references in different ways: "projects:25_97105",
// "projects:⟨25-97105⟩", "`25-97105`". The table prefix and brackets are
// stripped and underscores become hyphens.
func NormalizeProjectRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if table, id, ok := strings.Cut(ref, ":"); ok && isTableName(table) {
		ref = id
	}
	ref = strings.TrimPrefix(ref, "⟨")
	ref = strings.TrimSuffix(ref, "⟩")
	ref = strings.Trim(ref, "`\"'")
	return strings.ReplaceAll(strings.TrimSpace(ref), "_", "-")
}

func isTableName(s string) bool {
	switch strings.ToLower(s) {
	case "projects", "project":
		return true
	}
	return false
}
