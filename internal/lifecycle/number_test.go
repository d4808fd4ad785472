package lifecycle

import (
	"errors"
	"testing"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
)

func TestParseProjectNumber(t *testing.T) {
	n, err := ParseProjectNumber("25-97105")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if n.Year != 25 || n.Country != 971 || n.Seq != 5 {
		t.Errorf("Unexpected number: %+v", n)
	}
}

func TestParseProjectNumber_Invalid(t *testing.T) {
	for _, id := range []string{"", "2597105", "25-9710", "25-971050", "ab-97105", "25-9x105", "+5-97105", "25-+1205", "25-971-5", " 5-97105"} {
		if _, err := ParseProjectNumber(id); !errors.Is(err, perrors.ErrInvalidProjectID) {
			t.Errorf("ParseProjectNumber(%q): expected ErrInvalidProjectID, got: %v", id, err)
		}
	}
}

func TestValidateProjectID(t *testing.T) {
	if err := ValidateProjectID("25-97105"); err != nil {
		t.Errorf("Expected valid id, got: %v", err)
	}
	for _, id := range []string{"", "  ", " 25-97105", "../25-97105", `25\97105`, ".."} {
		if err := ValidateProjectID(id); !errors.Is(err, perrors.ErrInvalidProjectID) {
			t.Errorf("ValidateProjectID(%q): expected ErrInvalidProjectID, got: %v", id, err)
		}
	}
}

func TestMatchesFolder(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"25-97105 Hotel", "25-97105", true},
		{"25-97105", "25-97105", true},
		{"25-97105 Hotel", "25-9710", false},
		{"25-971050 Tower", "25-97105", false},
		{"25-97105_old", "25-97105", false},
		{"24-97105 Hotel", "25-97105", false},
	}

	for _, tt := range tests {
		if got := MatchesFolder(tt.name, tt.id); got != tt.want {
			t.Errorf("MatchesFolder(%q, %q) = %v, want %v", tt.name, tt.id, got, tt.want)
		}
	}
}

func TestFolderName(t *testing.T) {
	if got := FolderName("25-97199", "Test Project"); got != "25-97199 Test Project" {
		t.Errorf("Unexpected folder name: %q", got)
	}
	if got := FolderName("25-97199", "  "); got != "25-97199" {
		t.Errorf("Expected bare id for empty short name, got: %q", got)
	}
}

func TestNormalizeProjectRef(t *testing.T) {
	tests := map[string]string{
		"projects:25_97105":  "25-97105",
		"projects:⟨25-97105⟩": "25-97105",
		"project:25-97105":   "25-97105",
		"`25-97105`":         "25-97105",
		"25-97105":           "25-97105",
		" 25_97105 ":         "25-97105",
	}
	for in, want := range tests {
		if got := NormalizeProjectRef(in); got != want {
			t.Errorf("NormalizeProjectRef(%q) = %q, want %q", in, got, want)
		}
	}
}
