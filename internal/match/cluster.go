package match

import (
	"github.com/MellowMango/apartment-search-sub004/internal/database"
)

// GroupMember is a non-primary record folded into a duplicate group,
// with its similarity score against the primary and the per-field
// breakdown that produced it.
type GroupMember struct {
	Property *database.Property
	Score    float64
	Fields   map[string]float64
}

// DuplicateGroup is a cluster of records judged to represent the same
// physical property. The primary is the record the group collapses onto.
type DuplicateGroup struct {
	Primary *database.Property
	Members []GroupMember
}

// Size returns the total number of records in the group, primary included
func (g *DuplicateGroup) Size() int {
	return len(g.Members) + 1
}

// ClusterDuplicates partitions records into duplicate groups with a
// single-pass greedy scan: the next unassigned record becomes a new
// group's primary, and every later unassigned record scoring at or above
// the threshold against that primary joins the group.
//
// Records are compared to primaries only, never transitively to other
// members already folded in. This is intentional: the result depends on
// input order and is not equivalent to connected-components clustering,
// but it is deterministic for a stable input order and cheap to reason
// about. Singleton groups are included so the output is a partition.
func ClusterDuplicates(records []*database.Property, threshold float64, weights Weights) []DuplicateGroup {
	if weights == nil {
		weights = DefaultWeights()
	}

	assigned := make([]bool, len(records))
	var groups []DuplicateGroup

	for i, primary := range records {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		group := DuplicateGroup{Primary: primary}

		for j := i + 1; j < len(records); j++ {
			if assigned[j] {
				continue
			}
			fields := Breakdown(primary, records[j], weights)
			var sum, weightTotal float64
			for field, score := range fields {
				sum += score * weights[field]
				weightTotal += weights[field]
			}
			if weightTotal == 0 {
				continue
			}
			score := sum / weightTotal
			if score >= threshold {
				assigned[j] = true
				group.Members = append(group.Members, GroupMember{
					Property: records[j],
					Score:    score,
					Fields:   fields,
				})
			}
		}

		groups = append(groups, group)
	}

	return groups
}
