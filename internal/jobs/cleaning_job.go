// Package jobs contains the periodic work the scheduler in cmd/cleaner
// drives. Jobs hold no global state and are safe to re-run.
package jobs

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/review"
	"github.com/MellowMango/apartment-search-sub004/internal/services"
	"github.com/MellowMango/apartment-search-sub004/internal/standardize"
	"github.com/MellowMango/apartment-search-sub004/internal/utils"
)

// RunNotifier is told about completed generation runs
type RunNotifier interface {
	NotifyRun(run *database.CleaningRun, candidates []database.ReviewCandidate) error
}

// CleaningJob periodically scans the property store and generates review
// candidates. It never mutates properties: destructive actions only
// happen through the approval workflow.
type CleaningJob struct {
	db         *gorm.DB
	source     review.PropertyDataSource
	candidates review.CandidateStore
	notifier   RunNotifier
}

// NewCleaningJob creates a cleaning job over the given collaborators.
// The notifier may be nil.
func NewCleaningJob(db *gorm.DB, source review.PropertyDataSource, candidates review.CandidateStore, notifier RunNotifier) *CleaningJob {
	return &CleaningJob{
		db:         db,
		source:     source,
		candidates: candidates,
		notifier:   notifier,
	}
}

// Run executes one generation pass. Returns the number of candidates
// persisted.
func (j *CleaningJob) Run() (int, error) {
	started := time.Now()

	settings, err := database.GetOrCreateCleaningSettings(j.db)
	if err != nil {
		return 0, fmt.Errorf("failed to load cleaning settings: %w", err)
	}
	if !settings.Enabled {
		log.Println("Cleaning is disabled, skipping")
		return 0, nil
	}

	records, err := j.source.FetchAll()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch properties: %w", err)
	}
	if settings.MaxBatchSize > 0 && len(records) > settings.MaxBatchSize {
		log.Printf("Batch capped at %d of %d properties", settings.MaxBatchSize, len(records))
		records = records[:settings.MaxBatchSize]
	}
	if len(records) == 0 {
		return 0, nil
	}

	standardized := make([]*database.Property, 0, len(records))
	for i := range records {
		p := standardize.Standardize(records[i])
		standardized = append(standardized, &p)
	}

	generator := review.NewGenerator(settings)
	candidates := generator.Generate(standardized)

	saved := 0
	for i := range candidates {
		if err := j.candidates.Save(&candidates[i]); err != nil {
			log.Printf("Failed to save candidate %s: %v", candidates[i].ReviewID, err)
			continue
		}
		saved++
	}

	cleaner := services.NewCleaningService(settings)
	_, run, err := cleaner.CleanBatch(records)
	if err != nil {
		return saved, fmt.Errorf("failed to compute run statistics: %w", err)
	}
	if err := database.RecordCleaningRun(j.db, run); err != nil {
		log.Printf("Failed to record cleaning run: %v", err)
	}

	if j.notifier != nil && settings.NotifyOnGeneration && len(candidates) > 0 {
		if err := j.notifier.NotifyRun(run, candidates); err != nil {
			log.Printf("Failed to send run notification: %v", err)
		}
	}

	log.Printf("Cleaning job finished in %s: %d candidates saved", utils.FormatDuration(time.Since(started)), saved)
	return saved, nil
}
