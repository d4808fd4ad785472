package lifecycle

import (
	"errors"
	"testing"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
)

func TestParseRoot(t *testing.T) {
	tests := []struct {
		input string
		want  RootID
	}{
		{"00 Inactive", RootInactive},
		{"01 rfps", RootRFPs},
		{"rfp", RootRFPs},
		{"Current", RootCurrent},
		{"11 Current", RootCurrent},
		{"archive", RootCompleted},
		{"99 Completed", RootCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRoot(tt.input)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRoot(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRoot_Unknown(t *testing.T) {
	if _, err := ParseRoot("02 Tenders"); !errors.Is(err, perrors.ErrUnknownRoot) {
		t.Errorf("Expected ErrUnknownRoot, got: %v", err)
	}
}

func TestRoots_OrderAndNames(t *testing.T) {
	want := []string{"00 Inactive", "01 RFPs", "11 Current", "99 Completed"}
	if len(Roots) != len(want) {
		t.Fatalf("Expected %d roots, got: %d", len(want), len(Roots))
	}
	for i, root := range Roots {
		if root.DirName() != want[i] {
			t.Errorf("Roots[%d] = %q, want %q", i, root.DirName(), want[i])
		}
	}
}

func TestRootID_StringForInvalid(t *testing.T) {
	if got := RootID(42).String(); got != "RootID(42)" {
		t.Errorf("Expected RootID(42), got: %s", got)
	}
}
