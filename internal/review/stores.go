// Package review turns matcher and validator findings into reviewable
// cleaning proposals and drives the two-phase approval workflow that
// applies them.
package review

import (
	"github.com/MellowMango/apartment-search-sub004/internal/database"
)

// PropertyDataSource supplies raw records to clean
type PropertyDataSource interface {
	FetchAll() ([]database.Property, error)
	FetchByBroker(broker string) ([]database.Property, error)
	FetchByID(uuid string) (*database.Property, error)
}

// PropertyStore executes mutations against the canonical property store.
// Implementations must treat a missing target as a clean no-op
// (found=false, err=nil) so that re-running a batch is idempotent.
type PropertyStore interface {
	Update(uuid string, fields map[string]interface{}) (bool, error)
	Delete(uuid string) (bool, error)
	Merge(primaryUUID string, secondaryUUIDs []string) (bool, error)
}

// CandidateFilter narrows a candidate listing. Zero values match everything.
type CandidateFilter struct {
	Kind     database.CandidateKind
	ReviewID string
}

// CandidateStore persists review candidates and their approval state
type CandidateStore interface {
	Save(c *database.ReviewCandidate) error
	List(filter CandidateFilter) ([]database.ReviewCandidate, error)
	Get(reviewID string) (*database.ReviewCandidate, error)
	UpdateStatus(reviewID string, approved bool, notes string) error
	MarkApplied(reviewID string) error
}
