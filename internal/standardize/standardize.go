// Package standardize normalizes raw scraped listings into the canonical
// shape the matcher and validator expect. Standardization is best-effort
// and never fails: unusable values degrade to type-correct defaults.
package standardize

import (
	"log"
	"strconv"
	"strings"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
)

// Year range outside of which year_built is treated as scraper garbage
const (
	minYearBuilt = 1800
	maxYearBuilt = 2030
)

// Standardize returns a normalized copy of the record. Categorical fields
// are mapped onto canonical categories, numeric fields are range-checked,
// and every field ends up with a type-correct value. Idempotent.
func Standardize(p database.Property) database.Property {
	resolved := matchCategory(p.PropertyType, propertyTypeSynonyms, DefaultPropertyType)
	if resolved == DefaultPropertyType && strings.TrimSpace(p.PropertyType) != "" &&
		strings.ToUpper(strings.TrimSpace(p.PropertyType)) != DefaultPropertyType {
		log.Printf("Unrecognized property type %q, defaulting to %s", p.PropertyType, DefaultPropertyType)
	}
	p.PropertyType = resolved

	status := matchCategory(p.PropertyStatus, propertyStatusSynonyms, DefaultPropertyStatus)
	if status == DefaultPropertyStatus && strings.TrimSpace(p.PropertyStatus) != "" &&
		strings.ToUpper(strings.TrimSpace(p.PropertyStatus)) != DefaultPropertyStatus {
		log.Printf("Unrecognized property status %q, defaulting to %s", p.PropertyStatus, DefaultPropertyStatus)
	}
	p.PropertyStatus = status

	if p.YearBuilt < minYearBuilt || p.YearBuilt > maxYearBuilt {
		p.YearBuilt = 0
	}
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Units < 0 {
		p.Units = 0
	}
	if p.SquareFeet < 0 {
		p.SquareFeet = 0
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	p.State = strings.TrimSpace(p.State)
	p.Zip = strings.TrimSpace(p.Zip)
	p.Broker = strings.TrimSpace(p.Broker)

	if p.Attributes == nil {
		p.Attributes = database.JSONB{}
	}

	return p
}

// Known raw-record keys consumed into typed Property fields; everything
// else lands in Attributes.
var knownKeys = map[string]bool{
	"name": true, "address": true, "city": true, "state": true, "zip": true,
	"zip_code": true, "price": true, "units": true, "year_built": true,
	"square_feet": true, "property_type": true, "property_status": true,
	"description": true, "broker": true, "uuid": true,
}

// ParseRecord converts a raw scraped map into a typed Property, coercing
// string numerics and tolerating missing or extra keys. The result still
// needs Standardize before it reaches the matcher.
func ParseRecord(raw map[string]interface{}) database.Property {
	p := database.Property{
		UUID:           coerceString(raw["uuid"]),
		Name:           coerceString(raw["name"]),
		Address:        coerceString(raw["address"]),
		City:           coerceString(raw["city"]),
		State:          coerceString(raw["state"]),
		Zip:            coerceString(raw["zip"]),
		Price:          coerceFloat(raw["price"]),
		Units:          coerceInt(raw["units"]),
		YearBuilt:      coerceInt(raw["year_built"]),
		SquareFeet:     coerceFloat(raw["square_feet"]),
		PropertyType:   coerceString(raw["property_type"]),
		PropertyStatus: coerceString(raw["property_status"]),
		Description:    coerceString(raw["description"]),
		Broker:         coerceString(raw["broker"]),
		Attributes:     database.JSONB{},
	}
	if p.Zip == "" {
		p.Zip = coerceString(raw["zip_code"])
	}

	for key, value := range raw {
		if !knownKeys[key] {
			p.Attributes[key] = value
		}
	}

	return p
}

func coerceString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// coerceFloat parses numerics out of scraper output. Strings are
// stripped of everything but digits and the decimal point ("$1,250,000"
// parses as 1250000). Unparseable values default to 0.
func coerceFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		cleaned := stripNonNumeric(val)
		if cleaned == "" {
			return 0
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceInt(v interface{}) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		return int(coerceFloat(val))
	default:
		return 0
	}
}

func stripNonNumeric(s string) string {
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '.' && !seenDot {
			b.WriteRune(r)
			seenDot = true
		}
	}
	return b.String()
}
