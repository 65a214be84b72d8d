// Package testhelpers provides data builders for testing
package testhelpers

import (
	"time"

	"github.com/google/uuid"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
)

// ========================================
// Property Builder
// ========================================

// PropertyBuilder builds Property instances for testing
type PropertyBuilder struct {
	property database.Property
}

// NewPropertyBuilder creates a new property builder with defaults
// resembling a real multifamily listing
func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{
		property: database.Property{
			UUID:           uuid.New().String(),
			Name:           "Sunset Apartments",
			Address:        "100 Oak Ave",
			City:           "Austin",
			State:          "TX",
			Zip:            "78701",
			Price:          5000000,
			Units:          50,
			YearBuilt:      2005,
			SquareFeet:     42000,
			PropertyType:   "MULTIFAMILY",
			PropertyStatus: "ACTIVE",
			Broker:         "broker-a",
			Attributes:     database.JSONB{},
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		},
	}
}

// WithUUID sets the property UUID
func (b *PropertyBuilder) WithUUID(id string) *PropertyBuilder {
	b.property.UUID = id
	return b
}

// WithName sets the property name
func (b *PropertyBuilder) WithName(name string) *PropertyBuilder {
	b.property.Name = name
	return b
}

// WithAddress sets the street address
func (b *PropertyBuilder) WithAddress(address string) *PropertyBuilder {
	b.property.Address = address
	return b
}

// WithCity sets the city
func (b *PropertyBuilder) WithCity(city string) *PropertyBuilder {
	b.property.City = city
	return b
}

// WithZip sets the zip code
func (b *PropertyBuilder) WithZip(zip string) *PropertyBuilder {
	b.property.Zip = zip
	return b
}

// WithPrice sets the asking price
func (b *PropertyBuilder) WithPrice(price float64) *PropertyBuilder {
	b.property.Price = price
	return b
}

// WithUnits sets the unit count
func (b *PropertyBuilder) WithUnits(units int) *PropertyBuilder {
	b.property.Units = units
	return b
}

// WithYearBuilt sets the construction year
func (b *PropertyBuilder) WithYearBuilt(year int) *PropertyBuilder {
	b.property.YearBuilt = year
	return b
}

// WithSquareFeet sets the building size
func (b *PropertyBuilder) WithSquareFeet(sqft float64) *PropertyBuilder {
	b.property.SquareFeet = sqft
	return b
}

// WithBroker sets the scraping broker
func (b *PropertyBuilder) WithBroker(broker string) *PropertyBuilder {
	b.property.Broker = broker
	return b
}

// WithDescription sets the free-text description
func (b *PropertyBuilder) WithDescription(desc string) *PropertyBuilder {
	b.property.Description = desc
	return b
}

// WithAttribute adds a free-form attribute
func (b *PropertyBuilder) WithAttribute(key string, value interface{}) *PropertyBuilder {
	if b.property.Attributes == nil {
		b.property.Attributes = database.JSONB{}
	}
	b.property.Attributes[key] = value
	return b
}

// Build returns the constructed property
func (b *PropertyBuilder) Build() database.Property {
	return b.property
}

// BuildPtr returns a pointer to the constructed property
func (b *PropertyBuilder) BuildPtr() *database.Property {
	p := b.property
	return &p
}

// ========================================
// Candidate Builder
// ========================================

// CandidateBuilder builds ReviewCandidate instances for testing
type CandidateBuilder struct {
	candidate database.ReviewCandidate
}

// NewCandidateBuilder creates a new candidate builder with defaults
func NewCandidateBuilder() *CandidateBuilder {
	return &CandidateBuilder{
		candidate: database.ReviewCandidate{
			ReviewID:       "duplicate-0-" + uuid.New().String(),
			Kind:           database.CandidateKindDuplicate,
			PrimaryUUID:    uuid.New().String(),
			SecondaryUUID:  uuid.New().String(),
			Reason:         "matching address",
			Confidence:     0.95,
			ProposedAction: database.ActionMerge,
			Approval:       database.ApprovalPending,
			CreatedAt:      time.Now(),
		},
	}
}

// WithReviewID sets the deterministic review id
func (b *CandidateBuilder) WithReviewID(id string) *CandidateBuilder {
	b.candidate.ReviewID = id
	return b
}

// WithKind sets the candidate kind
func (b *CandidateBuilder) WithKind(kind database.CandidateKind) *CandidateBuilder {
	b.candidate.Kind = kind
	return b
}

// WithPrimaryUUID sets the primary target
func (b *CandidateBuilder) WithPrimaryUUID(id string) *CandidateBuilder {
	b.candidate.PrimaryUUID = id
	return b
}

// WithSecondaryUUID sets the secondary target
func (b *CandidateBuilder) WithSecondaryUUID(id string) *CandidateBuilder {
	b.candidate.SecondaryUUID = id
	return b
}

// WithAction sets the proposed action
func (b *CandidateBuilder) WithAction(action database.ProposedAction) *CandidateBuilder {
	b.candidate.ProposedAction = action
	return b
}

// Approved marks the candidate approved
func (b *CandidateBuilder) Approved() *CandidateBuilder {
	b.candidate.Approval = database.ApprovalApproved
	return b
}

// Disapproved marks the candidate disapproved
func (b *CandidateBuilder) Disapproved() *CandidateBuilder {
	b.candidate.Approval = database.ApprovalDisapproved
	return b
}

// Build returns the constructed candidate
func (b *CandidateBuilder) Build() database.ReviewCandidate {
	return b.candidate
}
