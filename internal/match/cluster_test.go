package match

import (
	"testing"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/testhelpers"
)

func TestClusterDuplicates_NearDuplicatesGrouped(t *testing.T) {
	a := testhelpers.NewPropertyBuilder().WithUnits(50).WithYearBuilt(2005).BuildPtr()
	b := testhelpers.NewPropertyBuilder().WithUnits(52).WithYearBuilt(2006).BuildPtr()

	groups := ClusterDuplicates([]*database.Property{a, b}, 0.85, nil)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Primary != a {
		t.Error("expected first record to be the group primary")
	}
	if len(groups[0].Members) != 1 || groups[0].Members[0].Property != b {
		t.Fatalf("expected second record folded into the group, got %+v", groups[0].Members)
	}
	if groups[0].Members[0].Score < 0.85 {
		t.Errorf("expected member score >= threshold, got %f", groups[0].Members[0].Score)
	}
	if len(groups[0].Members[0].Fields) == 0 {
		t.Error("expected a per-field breakdown on the member")
	}
}

func TestClusterDuplicates_IsAPartition(t *testing.T) {
	records := []*database.Property{
		testhelpers.NewPropertyBuilder().BuildPtr(),
		testhelpers.NewPropertyBuilder().WithUnits(52).BuildPtr(),
		testhelpers.NewPropertyBuilder().WithName("Commerce Plaza").WithAddress("450 Congress Ave").WithPrice(12000000).WithUnits(12).BuildPtr(),
		testhelpers.NewPropertyBuilder().WithName("Lakeside Flats").WithAddress("8 Shore Rd").WithPrice(900000).WithUnits(8).BuildPtr(),
	}

	groups := ClusterDuplicates(records, 0.85, nil)

	seen := make(map[*database.Property]int)
	total := 0
	for _, g := range groups {
		seen[g.Primary]++
		total++
		for _, m := range g.Members {
			seen[m.Property]++
			total++
		}
	}
	if total != len(records) {
		t.Errorf("expected %d assignments, got %d", len(records), total)
	}
	for p, count := range seen {
		if count != 1 {
			t.Errorf("record %s assigned %d times", p.Name, count)
		}
	}
}

func TestClusterDuplicates_Deterministic(t *testing.T) {
	build := func() []*database.Property {
		return []*database.Property{
			testhelpers.NewPropertyBuilder().WithUUID("a").BuildPtr(),
			testhelpers.NewPropertyBuilder().WithUUID("b").WithUnits(52).BuildPtr(),
			testhelpers.NewPropertyBuilder().WithUUID("c").WithName("Commerce Plaza").WithAddress("450 Congress Ave").WithUnits(12).BuildPtr(),
		}
	}

	first := ClusterDuplicates(build(), 0.85, nil)
	second := ClusterDuplicates(build(), 0.85, nil)

	if len(first) != len(second) {
		t.Fatalf("group counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Primary.UUID != second[i].Primary.UUID {
			t.Errorf("group %d primary differs: %s vs %s", i, first[i].Primary.UUID, second[i].Primary.UUID)
		}
		if len(first[i].Members) != len(second[i].Members) {
			t.Errorf("group %d member counts differ", i)
		}
	}
}

func TestClusterDuplicates_ComparesToPrimaryOnly(t *testing.T) {
	// b is within the threshold of a, and c is within the threshold of b
	// but not of a. Greedy clustering assigns by primary comparison only,
	// so c starts its own group instead of chaining through b.
	a := testhelpers.NewPropertyBuilder().WithUUID("a").WithUnits(40).WithPrice(4000000).BuildPtr()
	b := testhelpers.NewPropertyBuilder().WithUUID("b").WithUnits(50).WithPrice(5000000).BuildPtr()
	c := testhelpers.NewPropertyBuilder().WithUUID("c").WithUnits(62).WithPrice(6200000).BuildPtr()

	groups := ClusterDuplicates([]*database.Property{a, b, c}, 0.95, nil)

	if len(groups) < 2 {
		t.Fatalf("expected chaining to be cut at the primary, got %d group(s)", len(groups))
	}
	if groups[0].Primary.UUID != "a" {
		t.Errorf("expected first primary 'a', got %s", groups[0].Primary.UUID)
	}
}

func TestClusterDuplicates_SingletonsIncluded(t *testing.T) {
	a := testhelpers.NewPropertyBuilder().BuildPtr()
	groups := ClusterDuplicates([]*database.Property{a}, 0.85, nil)
	if len(groups) != 1 || groups[0].Size() != 1 {
		t.Fatalf("expected one singleton group, got %+v", groups)
	}
}
