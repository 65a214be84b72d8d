package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/review"
)

// GormCandidateStore persists review candidates
type GormCandidateStore struct {
	db *gorm.DB
}

// NewGormCandidateStore creates a candidate store over the given database
func NewGormCandidateStore(db *gorm.DB) *GormCandidateStore {
	return &GormCandidateStore{db: db}
}

// Save inserts a candidate. Re-saving an existing review id is a no-op,
// so regeneration runs over unchanged data never clobber review state.
func (s *GormCandidateStore) Save(c *database.ReviewCandidate) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "review_id"}},
		DoNothing: true,
	}).Create(c).Error
	if err != nil {
		return fmt.Errorf("failed to save candidate %s: %w", c.ReviewID, err)
	}
	return nil
}

// List returns candidates matching the filter, oldest first
func (s *GormCandidateStore) List(filter review.CandidateFilter) ([]database.ReviewCandidate, error) {
	query := s.db.Model(&database.ReviewCandidate{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.ReviewID != "" {
		query = query.Where("review_id = ?", filter.ReviewID)
	}
	var candidates []database.ReviewCandidate
	if err := query.Order("id asc").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

// Get returns a single candidate by review id
func (s *GormCandidateStore) Get(reviewID string) (*database.ReviewCandidate, error) {
	var c database.ReviewCandidate
	if err := s.db.Where("review_id = ?", reviewID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateStatus records the human decision and the review timestamp
func (s *GormCandidateStore) UpdateStatus(reviewID string, approved bool, notes string) error {
	approval := database.ApprovalDisapproved
	if approved {
		approval = database.ApprovalApproved
	}
	now := time.Now()
	result := s.db.Model(&database.ReviewCandidate{}).Where("review_id = ?", reviewID).Updates(map[string]interface{}{
		"approval":    approval,
		"notes":       notes,
		"reviewed_at": &now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// MarkApplied stamps the candidate as executed
func (s *GormCandidateStore) MarkApplied(reviewID string) error {
	now := time.Now()
	result := s.db.Model(&database.ReviewCandidate{}).Where("review_id = ?", reviewID).Update("applied_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
