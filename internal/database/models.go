package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// JSONB is a custom type for PostgreSQL JSONB columns
type JSONB map[string]interface{}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, j)
}

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// StringList is a JSON-encoded string slice column
type StringList []string

// Scan implements the sql.Scanner interface
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// PropertyStatusFlagged marks a record that failed validation and is
// excluded from search until an operator fixes it.
const PropertyStatusFlagged = "FLAGGED"

// Property is a canonical property listing assembled from scraped broker data
type Property struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UUID           string     `gorm:"uniqueIndex;size:36" json:"uuid"` // Empty until persisted
	Name           string     `gorm:"type:varchar(255)" json:"name"`
	Address        string     `gorm:"type:varchar(255)" json:"address"`
	City           string     `gorm:"type:varchar(128);index" json:"city"`
	State          string     `gorm:"type:varchar(32)" json:"state"`
	Zip            string     `gorm:"type:varchar(16)" json:"zip"`
	Price          float64    `json:"price"`
	Units          int        `json:"units"`
	YearBuilt      int        `json:"year_built"`
	SquareFeet     float64    `json:"square_feet"`
	PropertyType   string     `gorm:"type:varchar(64);index" json:"property_type"`
	PropertyStatus string     `gorm:"type:varchar(64);index" json:"property_status"`
	Description    string     `gorm:"type:text" json:"description"`
	Broker         string     `gorm:"type:varchar(128);index" json:"broker"`
	SourceBrokers  StringList `gorm:"type:jsonb" json:"source_brokers"` // Brokers folded in by merges
	Attributes     JSONB      `gorm:"type:jsonb" json:"attributes"`     // Free-form scraped extras
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

// CandidateKind classifies what a review candidate proposes to clean up
type CandidateKind string

const (
	CandidateKindDuplicate CandidateKind = "duplicate"
	CandidateKindTest      CandidateKind = "test"
	CandidateKindInvalid   CandidateKind = "invalid"
)

// ProposedAction is the mutation a candidate asks an operator to approve
type ProposedAction string

const (
	ActionMerge  ProposedAction = "merge"
	ActionDelete ProposedAction = "delete"
	ActionFlag   ProposedAction = "flag"
)

// ApprovalStatus tracks the human decision on a candidate
type ApprovalStatus string

const (
	ApprovalPending     ApprovalStatus = "pending"
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalDisapproved ApprovalStatus = "disapproved"
)

// ReviewCandidate is a proposed cleaning action awaiting human approval.
// Candidate state only moves through UpdateStatus and MarkApplied; the
// generator creates candidates as pending and never touches them again.
type ReviewCandidate struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ReviewID       string         `gorm:"uniqueIndex;size:128;not null" json:"review_id"` // Deterministic: kind-index-uuids
	Kind           CandidateKind  `gorm:"type:varchar(20);not null;index" json:"kind"`
	PrimaryUUID    string         `gorm:"size:36;not null;index" json:"primary_uuid"`
	SecondaryUUID  string         `gorm:"size:36;index" json:"secondary_uuid"` // Set for duplicate pairs only
	Reason         string         `gorm:"type:text" json:"reason"`
	Detail         JSONB          `gorm:"type:jsonb" json:"detail"` // Field scores, validation errors
	Confidence     float64        `gorm:"type:decimal(4,3)" json:"confidence"`
	ProposedAction ProposedAction `gorm:"type:varchar(20);not null" json:"proposed_action"`
	Approval       ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"approval"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty"`
	AppliedAt      *time.Time     `json:"applied_at,omitempty"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (ReviewCandidate) TableName() string {
	return "review_candidates"
}

// IsApplied reports whether the candidate's action has been executed
func (c *ReviewCandidate) IsApplied() bool {
	return c.AppliedAt != nil
}

// MergeAudit records every merge executed against the property store.
// This replaces the old habit of appending merge markers to the
// description text of the surviving record.
type MergeAudit struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PrimaryUUID   string    `gorm:"size:36;not null;index" json:"primary_uuid"`   // The record that survived
	SecondaryUUID string    `gorm:"size:36;not null;index" json:"secondary_uuid"` // The record merged away
	Confidence    float64   `gorm:"type:decimal(4,3)" json:"confidence"`
	Reason        string    `gorm:"type:text" json:"reason"`
	MergedBy      string    `gorm:"type:varchar(64);not null" json:"merged_by"` // 'workflow' or an operator id
	CreatedAt     time.Time `json:"created_at"`
}

func (MergeAudit) TableName() string {
	return "merge_audits"
}

// CleaningSettings controls duplicate detection and the periodic cleaning job
type CleaningSettings struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	Enabled                  bool      `gorm:"default:true" json:"enabled"`
	SimilarityThreshold      float64   `gorm:"type:decimal(3,2);default:0.85" json:"similarity_threshold"`
	DominantFactorThreshold  float64   `gorm:"type:decimal(3,2);default:0.90" json:"dominant_factor_threshold"`
	MaxBatchSize             int       `gorm:"default:500" json:"max_batch_size"`
	CleaningIntervalMinutes  int       `gorm:"default:60" json:"cleaning_interval_minutes"`
	ExecuteConcurrency       int       `gorm:"default:4" json:"execute_concurrency"`
	NotifyOnGeneration       bool      `gorm:"default:true" json:"notify_on_generation"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func (CleaningSettings) TableName() string {
	return "cleaning_settings"
}

// NewDefaultCleaningSettings returns settings with default values
func NewDefaultCleaningSettings() *CleaningSettings {
	return &CleaningSettings{
		Enabled:                 true,
		SimilarityThreshold:     0.85,
		DominantFactorThreshold: 0.90,
		MaxBatchSize:            500,
		CleaningIntervalMinutes: 60,
		ExecuteConcurrency:      4,
		NotifyOnGeneration:      true,
	}
}

// CleaningRun stores the statistics of one generation pass over a batch
type CleaningRun struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	OriginalCount            int       `json:"original_count"`
	StandardizedCount        int       `json:"standardized_count"`
	ValidCount               int       `json:"valid_count"`
	InvalidCount             int       `json:"invalid_count"`
	DuplicateGroupsCount     int       `json:"duplicate_groups_count"`
	DuplicatePropertiesCount int       `json:"duplicate_properties_count"`
	TestPropertiesCount      int       `json:"test_properties_count"`
	FinalCount               int       `json:"final_count"`
	CreatedAt                time.Time `json:"created_at"`
}

func (CleaningRun) TableName() string {
	return "cleaning_runs"
}

// BeforeCreate hook to default SourceBrokers to the scraping broker
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if len(p.SourceBrokers) == 0 && p.Broker != "" {
		p.SourceBrokers = StringList{p.Broker}
	}
	return nil
}
