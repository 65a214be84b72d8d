// Package store provides the gorm-backed implementations of the
// collaborator interfaces the review workflow depends on.
package store

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/merge"
)

// GormPropertyStore mutates the canonical properties table
type GormPropertyStore struct {
	db *gorm.DB
}

// NewGormPropertyStore creates a property store over the given database
func NewGormPropertyStore(db *gorm.DB) *GormPropertyStore {
	return &GormPropertyStore{db: db}
}

// Update applies field updates to a property. Returns found=false with a
// nil error when the target does not exist.
func (s *GormPropertyStore) Update(id string, fields map[string]interface{}) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	result := s.db.Model(&database.Property{}).Where("uuid = ?", id).Updates(fields)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update property %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a property. Deleting a missing record is a no-op
// reported as found=false with a nil error.
func (s *GormPropertyStore) Delete(id string) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	result := s.db.Where("uuid = ?", id).Delete(&database.Property{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete property %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Merge collapses secondaries into the primary: the merged record is
// written over the primary, the secondaries are deleted, and one audit
// row is recorded per secondary. Secondaries that are already gone are
// skipped; a missing primary makes the whole merge a no-op.
func (s *GormPropertyStore) Merge(primaryID string, secondaryIDs []string) (bool, error) {
	if err := checkID(primaryID); err != nil {
		return false, err
	}
	for _, id := range secondaryIDs {
		if err := checkID(id); err != nil {
			return false, err
		}
	}

	var found bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var primary database.Property
		if err := tx.Where("uuid = ?", primaryID).First(&primary).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil // Already merged away; idempotent no-op
			}
			return err
		}

		var secondaries []*database.Property
		for _, id := range secondaryIDs {
			var sec database.Property
			if err := tx.Where("uuid = ?", id).First(&sec).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					log.Printf("Merge secondary %s already gone, skipping", id)
					continue
				}
				return err
			}
			secondaries = append(secondaries, &sec)
		}

		merged, err := merge.Records(&primary, secondaries)
		if err != nil {
			return err
		}
		merged.ID = primary.ID
		merged.UUID = primary.UUID
		if err := tx.Save(&merged).Error; err != nil {
			return err
		}

		for _, sec := range secondaries {
			if err := tx.Delete(&database.Property{}, sec.ID).Error; err != nil {
				return err
			}
			audit := &database.MergeAudit{
				PrimaryUUID:   primary.UUID,
				SecondaryUUID: sec.UUID,
				Reason:        "duplicate collapsed into primary",
				MergedBy:      "workflow",
			}
			if err := tx.Create(audit).Error; err != nil {
				return err
			}
		}

		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to merge into property %s: %w", primaryID, err)
	}
	return found, nil
}

// checkID rejects identifiers that are not well-formed UUIDs
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("malformed property id %q: %w", id, err)
	}
	return nil
}
