package review

import (
	"strings"
	"testing"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/testhelpers"
)

// scenarioBatch builds the standard six-record batch: two near-duplicate
// apartment listings, two near-duplicate office listings, one obvious
// test fixture, and one record missing required fields.
func scenarioBatch() []*database.Property {
	return []*database.Property{
		testhelpers.NewPropertyBuilder().WithUUID("11111111-1111-1111-1111-111111111111").
			WithName("Sunset Apartments").WithAddress("100 Oak Ave").
			WithPrice(5000000).WithUnits(50).WithYearBuilt(2005).WithBroker("broker-a").BuildPtr(),
		testhelpers.NewPropertyBuilder().WithUUID("22222222-2222-2222-2222-222222222222").
			WithName("Sunset Apartments").WithAddress("100 Oak Avenue").
			WithPrice(5000000).WithUnits(52).WithYearBuilt(2006).WithBroker("broker-b").BuildPtr(),
		testhelpers.NewPropertyBuilder().WithUUID("33333333-3333-3333-3333-333333333333").
			WithName("Commerce Plaza").WithAddress("450 Congress Ave").
			WithPrice(12000000).WithUnits(12).WithSquareFeet(30000).WithBroker("broker-a").BuildPtr(),
		testhelpers.NewPropertyBuilder().WithUUID("44444444-4444-4444-4444-444444444444").
			WithName("Commerce Plaza Offices").WithAddress("450 Congress Avenue").
			WithPrice(12500000).WithUnits(12).WithSquareFeet(30000).WithBroker("broker-c").BuildPtr(),
		testhelpers.NewPropertyBuilder().WithUUID("55555555-5555-5555-5555-555555555555").
			WithName("Test Property").WithAddress("123 Main St").
			WithPrice(1).WithUnits(999).BuildPtr(),
		testhelpers.NewPropertyBuilder().WithUUID("66666666-6666-6666-6666-666666666666").
			WithName("").WithAddress("").
			WithCity("Dallas").WithZip("75201").
			WithPrice(2000000).WithUnits(10).WithSquareFeet(8000).BuildPtr(),
	}
}

func testGenerator() *Generator {
	return NewGenerator(database.NewDefaultCleaningSettings())
}

func countKind(candidates []database.ReviewCandidate, kind database.CandidateKind) int {
	n := 0
	for _, c := range candidates {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

func TestGenerate_ScenarioCounts(t *testing.T) {
	candidates := testGenerator().Generate(scenarioBatch())

	if got := countKind(candidates, database.CandidateKindDuplicate); got != 2 {
		t.Errorf("expected 2 duplicate candidates, got %d", got)
	}
	if got := countKind(candidates, database.CandidateKindTest); got != 1 {
		t.Errorf("expected 1 test candidate, got %d", got)
	}
	if got := countKind(candidates, database.CandidateKindInvalid); got != 1 {
		t.Errorf("expected 1 invalid candidate, got %d", got)
	}
}

func TestGenerate_ProposedActions(t *testing.T) {
	candidates := testGenerator().Generate(scenarioBatch())
	for _, c := range candidates {
		var want database.ProposedAction
		switch c.Kind {
		case database.CandidateKindDuplicate:
			want = database.ActionMerge
		case database.CandidateKindTest:
			want = database.ActionDelete
		case database.CandidateKindInvalid:
			want = database.ActionFlag
		}
		if c.ProposedAction != want {
			t.Errorf("candidate %s: expected action %s, got %s", c.ReviewID, want, c.ProposedAction)
		}
		if c.Approval != database.ApprovalPending {
			t.Errorf("candidate %s: expected pending approval, got %s", c.ReviewID, c.Approval)
		}
	}
}

func TestGenerate_DeterministicIDs(t *testing.T) {
	first := testGenerator().Generate(scenarioBatch())
	second := testGenerator().Generate(scenarioBatch())

	if len(first) != len(second) {
		t.Fatalf("candidate counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ReviewID != second[i].ReviewID {
			t.Errorf("candidate %d id differs: %s vs %s", i, first[i].ReviewID, second[i].ReviewID)
		}
	}

	ids := make(map[string]bool)
	for _, c := range first {
		if ids[c.ReviewID] {
			t.Errorf("duplicate review id %s", c.ReviewID)
		}
		ids[c.ReviewID] = true
	}
}

func TestGenerate_DuplicateReasonNamesDominantFactor(t *testing.T) {
	candidates := testGenerator().Generate(scenarioBatch())
	for _, c := range candidates {
		if c.Kind != database.CandidateKindDuplicate {
			continue
		}
		// Both scenario pairs share a normalized address, so address is
		// the dominant factor and is checked before name.
		if c.Reason != "matching address" {
			t.Errorf("candidate %s: expected 'matching address', got %q", c.ReviewID, c.Reason)
		}
		if c.SecondaryUUID == "" {
			t.Errorf("candidate %s: expected a secondary target", c.ReviewID)
		}
		if c.Confidence < 0.85 {
			t.Errorf("candidate %s: expected confidence >= threshold, got %f", c.ReviewID, c.Confidence)
		}
	}
}

func TestGenerate_InvalidCandidateCarriesErrors(t *testing.T) {
	candidates := testGenerator().Generate(scenarioBatch())
	for _, c := range candidates {
		if c.Kind != database.CandidateKindInvalid {
			continue
		}
		if !strings.Contains(c.Reason, "validation error") {
			t.Errorf("unexpected reason %q", c.Reason)
		}
		errs, ok := c.Detail["errors"].([]interface{})
		if !ok || len(errs) != 2 {
			t.Errorf("expected 2 structured errors in detail, got %v", c.Detail["errors"])
		}
	}
}

func TestGenerate_NoFindingsOnCleanBatch(t *testing.T) {
	records := []*database.Property{
		testhelpers.NewPropertyBuilder().WithName("Lakeside Flats").WithAddress("8 Shore Rd").
			WithPrice(900000).WithUnits(8).BuildPtr(),
	}
	candidates := testGenerator().Generate(records)
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %+v", candidates)
	}
}
