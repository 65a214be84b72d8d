// Package merge collapses a duplicate group into a single record.
package merge

import (
	"errors"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/match"
)

// ErrEmptyGroup is returned when a group with no members is merged.
// Unlike dirty field data, this is a programmer error.
var ErrEmptyGroup = errors.New("merge: empty duplicate group")

// Merge collapses an ordered duplicate group into one record. The primary
// wins every non-empty conflict; secondaries only fill gaps, in group
// order. Descriptions concatenate, attribute maps shallow-merge, and
// every contributing broker is recorded in SourceBrokers. The inputs are
// never mutated. Not commutative: order decides conflicts.
func Merge(group *match.DuplicateGroup) (database.Property, error) {
	if group == nil {
		return database.Property{}, ErrEmptyGroup
	}
	secondaries := make([]*database.Property, 0, len(group.Members))
	for _, member := range group.Members {
		secondaries = append(secondaries, member.Property)
	}
	return Records(group.Primary, secondaries)
}

// Records merges secondaries into the primary without requiring a scored
// group. Same policy as Merge.
func Records(primary *database.Property, secondaries []*database.Property) (database.Property, error) {
	if primary == nil {
		return database.Property{}, ErrEmptyGroup
	}

	result := *primary
	result.Attributes = cloneAttributes(primary.Attributes)
	result.SourceBrokers = nil
	appendBroker(&result, primary.Broker)
	for _, b := range primary.SourceBrokers {
		appendBroker(&result, b)
	}

	for _, secondary := range secondaries {
		fillFrom(&result, secondary)
	}

	return result, nil
}

// fillFrom copies a secondary's values into gaps on the base record
func fillFrom(base *database.Property, secondary *database.Property) {
	if base.Name == "" {
		base.Name = secondary.Name
	}
	if base.Address == "" {
		base.Address = secondary.Address
	}
	if base.City == "" {
		base.City = secondary.City
	}
	if base.State == "" {
		base.State = secondary.State
	}
	if base.Zip == "" {
		base.Zip = secondary.Zip
	}
	if base.Price == 0 {
		base.Price = secondary.Price
	}
	if base.Units == 0 {
		base.Units = secondary.Units
	}
	if base.YearBuilt == 0 {
		base.YearBuilt = secondary.YearBuilt
	}
	if base.SquareFeet == 0 {
		base.SquareFeet = secondary.SquareFeet
	}
	if base.PropertyType == "" {
		base.PropertyType = secondary.PropertyType
	}
	if base.PropertyStatus == "" {
		base.PropertyStatus = secondary.PropertyStatus
	}

	switch {
	case base.Description == "":
		base.Description = secondary.Description
	case secondary.Description != "":
		base.Description = base.Description + "\n\n" + secondary.Description
	}

	// Shallow-merge attributes; the secondary overwrites on key collision
	if len(secondary.Attributes) > 0 {
		if base.Attributes == nil {
			base.Attributes = database.JSONB{}
		}
		for k, v := range secondary.Attributes {
			base.Attributes[k] = v
		}
	}

	appendBroker(base, secondary.Broker)
	for _, b := range secondary.SourceBrokers {
		appendBroker(base, b)
	}
}

// appendBroker adds a broker id to SourceBrokers, skipping empties and
// duplicates while preserving order
func appendBroker(p *database.Property, broker string) {
	if broker == "" {
		return
	}
	for _, existing := range p.SourceBrokers {
		if existing == broker {
			return
		}
	}
	p.SourceBrokers = append(p.SourceBrokers, broker)
}

func cloneAttributes(attrs database.JSONB) database.JSONB {
	if attrs == nil {
		return nil
	}
	clone := make(database.JSONB, len(attrs))
	for k, v := range attrs {
		clone[k] = v
	}
	return clone
}
