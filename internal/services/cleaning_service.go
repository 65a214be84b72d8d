package services

import (
	"log"
	"time"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/match"
	"github.com/MellowMango/apartment-search-sub004/internal/merge"
	"github.com/MellowMango/apartment-search-sub004/internal/standardize"
	"github.com/MellowMango/apartment-search-sub004/internal/validate"
)

// CleaningService runs the full cleaning pass over a batch: standardize,
// validate, cluster duplicates, detect test fixtures, and collapse
// duplicate groups through the merge engine.
type CleaningService struct {
	settings *database.CleaningSettings
	weights  match.Weights
}

// NewCleaningService creates a cleaning service with the given runtime settings
func NewCleaningService(settings *database.CleaningSettings) *CleaningService {
	return &CleaningService{
		settings: settings,
		weights:  match.DefaultWeights(),
	}
}

// CleanBatch standardizes the batch and returns the cleaned record list
// plus the statistics of the pass. Cleaned means: duplicate groups are
// collapsed onto their merged primary and test fixtures are dropped.
// Invalid records stay in the output; they are flagged, not removed.
func (s *CleaningService) CleanBatch(records []database.Property) ([]database.Property, *database.CleaningRun, error) {
	run := &database.CleaningRun{
		OriginalCount: len(records),
		CreatedAt:     time.Now(),
	}

	standardized := make([]*database.Property, 0, len(records))
	for i := range records {
		p := standardize.Standardize(records[i])
		standardized = append(standardized, &p)
	}
	run.StandardizedCount = len(standardized)

	for _, p := range standardized {
		if len(validate.Validate(p)) > 0 {
			run.InvalidCount++
		} else {
			run.ValidCount++
		}
	}

	isTest := make(map[*database.Property]bool)
	for _, p := range standardized {
		if ok, _ := match.IsTestProperty(p); ok {
			isTest[p] = true
			run.TestPropertiesCount++
		}
	}

	// Test fixtures are excluded from clustering so a placeholder record
	// cannot absorb a real listing as its duplicate.
	clusterable := make([]*database.Property, 0, len(standardized))
	for _, p := range standardized {
		if !isTest[p] {
			clusterable = append(clusterable, p)
		}
	}
	groups := match.ClusterDuplicates(clusterable, s.settings.SimilarityThreshold, s.weights)

	cleaned := make([]database.Property, 0, len(standardized))
	for _, group := range groups {
		if len(group.Members) == 0 {
			cleaned = append(cleaned, *group.Primary)
			continue
		}
		run.DuplicateGroupsCount++
		run.DuplicatePropertiesCount += len(group.Members)
		merged, err := merge.Merge(&group)
		if err != nil {
			return nil, nil, err
		}
		cleaned = append(cleaned, merged)
	}

	run.FinalCount = len(cleaned)
	log.Printf("Cleaning pass: %d in, %d out (%d duplicate groups, %d duplicates, %d test fixtures, %d invalid)",
		run.OriginalCount, run.FinalCount, run.DuplicateGroupsCount,
		run.DuplicatePropertiesCount, run.TestPropertiesCount, run.InvalidCount)

	return cleaned, run, nil
}
