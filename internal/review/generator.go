package review

import (
	"fmt"
	"time"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/match"
	"github.com/MellowMango/apartment-search-sub004/internal/validate"
)

// Generator produces review candidates from a batch of standardized records
type Generator struct {
	Threshold         float64
	DominantThreshold float64
	Weights           match.Weights
}

// NewGenerator creates a generator from runtime settings
func NewGenerator(settings *database.CleaningSettings) *Generator {
	return &Generator{
		Threshold:         settings.SimilarityThreshold,
		DominantThreshold: settings.DominantFactorThreshold,
		Weights:           match.DefaultWeights(),
	}
}

// Generate runs clustering, test-fixture detection, and validation over a
// batch and emits one pending candidate per finding. Candidate review ids
// are deterministic for a stable input, so re-running generation on
// unchanged data produces the same id set.
func (g *Generator) Generate(records []*database.Property) []database.ReviewCandidate {
	now := time.Now()
	var candidates []database.ReviewCandidate

	groups := match.ClusterDuplicates(records, g.Threshold, g.Weights)
	pairIndex := 0
	for _, group := range groups {
		for _, member := range group.Members {
			detail := database.JSONB{}
			for field, score := range member.Fields {
				detail[field] = score
			}
			candidates = append(candidates, database.ReviewCandidate{
				ReviewID:       candidateID(database.CandidateKindDuplicate, pairIndex, group.Primary, member.Property),
				Kind:           database.CandidateKindDuplicate,
				PrimaryUUID:    group.Primary.UUID,
				SecondaryUUID:  member.Property.UUID,
				Reason:         g.duplicateReason(member.Fields),
				Detail:         detail,
				Confidence:     member.Score,
				ProposedAction: database.ActionMerge,
				Approval:       database.ApprovalPending,
				CreatedAt:      now,
			})
			pairIndex++
		}
	}

	for i, p := range records {
		if isTest, reason := match.IsTestProperty(p); isTest {
			candidates = append(candidates, database.ReviewCandidate{
				ReviewID:       candidateID(database.CandidateKindTest, i, p, nil),
				Kind:           database.CandidateKindTest,
				PrimaryUUID:    p.UUID,
				Reason:         reason,
				Detail:         database.JSONB{"rule": reason},
				Confidence:     1.0,
				ProposedAction: database.ActionDelete,
				Approval:       database.ApprovalPending,
				CreatedAt:      now,
			})
		}
	}

	for i, p := range records {
		errs := validate.Validate(p)
		if len(errs) == 0 {
			continue
		}
		fields := make([]interface{}, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, map[string]interface{}{"field": e.Field, "message": e.Message})
		}
		candidates = append(candidates, database.ReviewCandidate{
			ReviewID:       candidateID(database.CandidateKindInvalid, i, p, nil),
			Kind:           database.CandidateKindInvalid,
			PrimaryUUID:    p.UUID,
			Reason:         fmt.Sprintf("%d validation error(s), first: %s", len(errs), errs[0].String()),
			Detail:         database.JSONB{"errors": fields},
			Confidence:     1.0,
			ProposedAction: database.ActionFlag,
			Approval:       database.ApprovalPending,
			CreatedAt:      now,
		})
	}

	return candidates
}

// duplicateReason names the dominant matching factor for a pair.
// Address is checked before name since it is the stronger identity signal.
func (g *Generator) duplicateReason(fields map[string]float64) string {
	if fields["address"] > g.DominantThreshold {
		return "matching address"
	}
	if fields["name"] > g.DominantThreshold {
		return "matching name"
	}
	return "multiple matching attributes"
}

// candidateID builds the deterministic review id: kind, running index,
// and the involved record identifiers. Records not yet persisted have no
// UUID and fall back to their batch position.
func candidateID(kind database.CandidateKind, index int, primary, secondary *database.Property) string {
	id := fmt.Sprintf("%s-%d-%s", kind, index, recordRef(primary, index))
	if secondary != nil {
		id += "-" + recordRef(secondary, index)
	}
	return id
}

func recordRef(p *database.Property, index int) string {
	if p.UUID != "" {
		return p.UUID
	}
	return fmt.Sprintf("pos%d", index)
}
