package impact

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	"github.com/PolarWolf314/projfold/internal/store"
)

func seedStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	proposals := []store.Proposal{
		{ID: "fee-1", Number: "P-0142", Name: "Design", ProjectRef: "projects:25_97105", Status: lifecycle.ProposalSent},
		{ID: "fee-2", Number: "P-0143", ProjectRef: "projects:⟨25-97105⟩", Status: lifecycle.ProposalAwarded},
		{ID: "fee-3", Number: "P-0144", ProjectRef: "`25-97105`", Status: lifecycle.ProposalNegotiation},
		{ID: "fee-4", Number: "P-0200", ProjectRef: "projects:25_9710", Status: lifecycle.ProposalSent},
		{ID: "fee-5", Number: "P-0300", ProjectRef: "projects:24_04401", Status: lifecycle.ProposalDraft},
	}
	for i := range proposals {
		if err := s.PutProposal(context.Background(), &proposals[i]); err != nil {
			t.Fatalf("Failed to seed proposal: %v", err)
		}
	}
	return s
}

func proposalIDs(affected []AffectedProposal) []string {
	var ids []string
	for _, p := range affected {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestAnalyzeMatchesNormalizedReferences(t *testing.T) {
	a := NewAnalyzer(seedStore(t))

	impact, err := a.Analyze(context.Background(), "25-97105", lifecycle.StatusAwarded)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"fee-1", "fee-2", "fee-3"}
	if got := proposalIDs(impact.Proposals); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected proposals %v, got: %v", want, got)
	}
	if impact.Suggested != lifecycle.ProposalAwarded {
		t.Errorf("Expected suggestion Awarded, got: %q", impact.Suggested)
	}
	if got := proposalIDs(impact.Changes()); !reflect.DeepEqual(got, []string{"fee-1", "fee-3"}) {
		t.Errorf("Expected fee-1 and fee-3 to change, got: %v", got)
	}
}

func TestAnalyzeShortIDDoesNotMatchLongerID(t *testing.T) {
	impact, err := NewAnalyzer(seedStore(t)).Analyze(context.Background(), "25-9710", lifecycle.StatusLost)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := proposalIDs(impact.Proposals); !reflect.DeepEqual(got, []string{"fee-4"}) {
		t.Errorf("Expected only fee-4, got: %v", got)
	}
}

func TestSuggestedProposalStatus(t *testing.T) {
	tests := []struct {
		status lifecycle.Status
		want   lifecycle.ProposalStatus
		ok     bool
	}{
		{lifecycle.StatusLost, lifecycle.ProposalLost, true},
		{lifecycle.StatusCancelled, lifecycle.ProposalCancelled, true},
		{lifecycle.StatusAwarded, lifecycle.ProposalAwarded, true},
		{lifecycle.StatusActive, lifecycle.ProposalAwarded, true},
		{lifecycle.StatusDraft, "", false},
		{lifecycle.StatusRFP, "", false},
		{lifecycle.StatusOnHold, "", false},
		{lifecycle.StatusCompleted, "", false},
	}

	for _, tt := range tests {
		got, ok := SuggestedProposalStatus(tt.status)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SuggestedProposalStatus(%s) = %q, %v; expected %q, %v", tt.status, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAnalyzeWithoutSuggestion(t *testing.T) {
	impact, err := NewAnalyzer(seedStore(t)).Analyze(context.Background(), "25-97105", lifecycle.StatusOnHold)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if impact.HasSuggestion() {
		t.Error("Expected no proposal changes for On Hold")
	}
	if len(impact.Proposals) != 3 {
		t.Errorf("Expected 3 affected proposals, got: %d", len(impact.Proposals))
	}
	lines := impact.Lines()
	if !strings.Contains(lines[len(lines)-1], "does not imply") {
		t.Errorf("Expected a no-suggestion line, got: %v", lines)
	}
}

func TestAnalyzeDoesNotMutate(t *testing.T) {
	s := seedStore(t)
	before, _ := s.ListProposals(context.Background())

	if _, err := NewAnalyzer(s).Analyze(context.Background(), "25-97105", lifecycle.StatusLost); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	after, _ := s.ListProposals(context.Background())
	if !reflect.DeepEqual(before, after) {
		t.Error("Expected proposals to be unchanged by analysis")
	}
}

func TestAnalyzeRejectsUnknownStatus(t *testing.T) {
	_, err := NewAnalyzer(seedStore(t)).Analyze(context.Background(), "25-97105", lifecycle.Status("Pending"))
	if !errors.Is(err, perrors.ErrUnknownStatus) {
		t.Fatalf("Expected ErrUnknownStatus, got: %v", err)
	}
}

func TestImpactLines(t *testing.T) {
	impact, err := NewAnalyzer(seedStore(t)).Analyze(context.Background(), "25-97105", lifecycle.StatusAwarded)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	lines := impact.Lines()
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got: %v", lines)
	}
	if lines[1] != "  P-0142 Design: Sent -> Awarded" {
		t.Errorf("Unexpected line: %q", lines[1])
	}
	if lines[2] != "  P-0143: Awarded (unchanged)" {
		t.Errorf("Unexpected line: %q", lines[2])
	}

	empty := &Impact{ProjectID: "24-99999"}
	if got := empty.Lines(); len(got) != 1 || !strings.Contains(got[0], "No proposals") {
		t.Errorf("Unexpected lines for empty impact: %v", got)
	}
}
