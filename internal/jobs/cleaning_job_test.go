package jobs

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/store"
	"github.com/MellowMango/apartment-search-sub004/internal/testhelpers"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&database.Property{},
		&database.ReviewCandidate{},
		&database.MergeAudit{},
		&database.CleaningSettings{},
		&database.CleaningRun{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

type recordingNotifier struct {
	calls      int
	candidates int
}

func (n *recordingNotifier) NotifyRun(run *database.CleaningRun, candidates []database.ReviewCandidate) error {
	n.calls++
	n.candidates = len(candidates)
	return nil
}

func newTestJob(db *gorm.DB, notifier *recordingNotifier) *CleaningJob {
	var n RunNotifier
	if notifier != nil {
		n = notifier
	}
	return NewCleaningJob(db, store.NewGormPropertyDataSource(db), store.NewGormCandidateStore(db), n)
}

func seedFindings(t *testing.T, db *gorm.DB) {
	batch := []database.Property{
		testhelpers.NewPropertyBuilder().WithName("Sunset Apartments").WithAddress("100 Oak Ave").WithUnits(50).Build(),
		testhelpers.NewPropertyBuilder().WithName("Sunset Apartments").WithAddress("100 Oak Avenue").WithUnits(52).Build(),
		testhelpers.NewPropertyBuilder().WithName("Test Property").WithAddress("123 Main St").WithPrice(1).WithUnits(999).Build(),
	}
	for i := range batch {
		if err := db.Create(&batch[i]).Error; err != nil {
			t.Fatalf("Failed to seed property: %v", err)
		}
	}
}

func TestCleaningJob_GeneratesAndPersists(t *testing.T) {
	db := setupTestDB(t)
	seedFindings(t, db)
	notifier := &recordingNotifier{}
	job := newTestJob(db, notifier)

	saved, err := job.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if saved != 2 {
		t.Errorf("expected 2 candidates saved (1 duplicate, 1 test), got %d", saved)
	}

	var candidates []database.ReviewCandidate
	if err := db.Find(&candidates).Error; err != nil {
		t.Fatalf("candidate query failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidate rows, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.Approval != database.ApprovalPending {
			t.Errorf("candidate %s must start pending, got %s", c.ReviewID, c.Approval)
		}
	}

	// Properties are never mutated by generation
	var count int64
	db.Model(&database.Property{}).Count(&count)
	if count != 3 {
		t.Errorf("generation must not touch properties, got %d rows", count)
	}

	var runs []database.CleaningRun
	if err := db.Find(&runs).Error; err != nil {
		t.Fatalf("run query failed: %v", err)
	}
	if len(runs) != 1 || runs[0].OriginalCount != 3 {
		t.Errorf("expected 1 recorded run over 3 records, got %+v", runs)
	}

	if notifier.calls != 1 || notifier.candidates != 2 {
		t.Errorf("expected one notification with 2 candidates, got %d calls / %d candidates", notifier.calls, notifier.candidates)
	}
}

func TestCleaningJob_RerunIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seedFindings(t, db)
	job := newTestJob(db, nil)

	if _, err := job.Run(); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := job.Run(); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	var count int64
	db.Model(&database.ReviewCandidate{}).Count(&count)
	if count != 2 {
		t.Errorf("re-running over unchanged data must not duplicate candidates, got %d rows", count)
	}
}

func TestCleaningJob_DisabledSkips(t *testing.T) {
	db := setupTestDB(t)
	seedFindings(t, db)

	settings, err := database.GetOrCreateCleaningSettings(db)
	if err != nil {
		t.Fatalf("settings load failed: %v", err)
	}
	settings.Enabled = false
	if err := database.UpdateCleaningSettings(db, settings); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	job := newTestJob(db, nil)
	saved, err := job.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if saved != 0 {
		t.Errorf("disabled job must not generate, got %d", saved)
	}

	var count int64
	db.Model(&database.ReviewCandidate{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no candidate rows, got %d", count)
	}
}

func TestCleaningJob_EmptyStore(t *testing.T) {
	db := setupTestDB(t)
	job := newTestJob(db, nil)

	saved, err := job.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if saved != 0 {
		t.Errorf("expected nothing saved, got %d", saved)
	}
}
