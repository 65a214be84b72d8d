package standardize

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPropertyType is the catch-all category for unresolvable types
const DefaultPropertyType = "SPECIAL_PURPOSE"

// DefaultPropertyStatus is the catch-all status for unresolvable statuses
const DefaultPropertyStatus = "ACTIVE"

// propertyTypeSynonyms maps each canonical property type to the raw
// vocabulary brokers use for it. Matching is exact first, then substring
// containment in either direction.
var propertyTypeSynonyms = map[string][]string{
	"MULTIFAMILY": {
		"MULTIFAMILY", "MULTI-FAMILY", "MULTI FAMILY", "APARTMENT",
		"APARTMENTS", "APARTMENT BUILDING", "RESIDENTIAL INCOME", "DUPLEX",
		"TRIPLEX", "FOURPLEX", "QUADPLEX",
	},
	"OFFICE": {
		"OFFICE", "OFFICE BUILDING", "OFFICE SPACE", "MEDICAL OFFICE",
		"CREATIVE OFFICE",
	},
	"RETAIL": {
		"RETAIL", "RETAIL SPACE", "STOREFRONT", "SHOPPING CENTER",
		"STRIP MALL", "STRIP CENTER",
	},
	"INDUSTRIAL": {
		"INDUSTRIAL", "WAREHOUSE", "DISTRIBUTION", "MANUFACTURING",
		"FLEX SPACE", "FLEX",
	},
	"LAND": {
		"LAND", "VACANT LAND", "LOT", "DEVELOPMENT SITE", "ACREAGE",
	},
	"HOSPITALITY": {
		"HOSPITALITY", "HOTEL", "MOTEL", "RESORT",
	},
	"MIXED_USE": {
		"MIXED USE", "MIXED-USE", "MIXED",
	},
	"SPECIAL_PURPOSE": {
		"SPECIAL PURPOSE", "SPECIAL-PURPOSE", "SELF STORAGE", "SELF-STORAGE",
		"CHURCH", "SCHOOL", "OTHER",
	},
}

// propertyStatusSynonyms maps each canonical listing status to its raw forms
var propertyStatusSynonyms = map[string][]string{
	"ACTIVE": {
		"ACTIVE", "AVAILABLE", "FOR SALE", "ON MARKET", "LISTED", "NEW",
	},
	"UNDER_CONTRACT": {
		"UNDER CONTRACT", "UNDER-CONTRACT", "PENDING", "IN ESCROW", "CONTINGENT",
	},
	"SOLD": {
		"SOLD", "CLOSED", "COMPLETED SALE",
	},
	"OFF_MARKET": {
		"OFF MARKET", "OFF-MARKET", "WITHDRAWN", "EXPIRED", "DELISTED",
		"INACTIVE",
	},
}

// categoryFile is the YAML shape for synonym overrides
type categoryFile struct {
	PropertyTypes    map[string][]string `yaml:"property_types"`
	PropertyStatuses map[string][]string `yaml:"property_statuses"`
}

// LoadCategoryFile merges synonym overrides from a YAML file into the
// built-in tables. Overrides extend a canonical category's synonym list;
// unknown canonical categories are added as new ones.
func LoadCategoryFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read category file: %w", err)
	}
	var cf categoryFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse category file: %w", err)
	}
	for canonical, synonyms := range cf.PropertyTypes {
		key := strings.ToUpper(canonical)
		propertyTypeSynonyms[key] = appendUpper(propertyTypeSynonyms[key], synonyms)
	}
	for canonical, synonyms := range cf.PropertyStatuses {
		key := strings.ToUpper(canonical)
		propertyStatusSynonyms[key] = appendUpper(propertyStatusSynonyms[key], synonyms)
	}
	return nil
}

func appendUpper(existing []string, extra []string) []string {
	for _, s := range extra {
		existing = append(existing, strings.ToUpper(s))
	}
	return existing
}

// matchCategory resolves a raw categorical value against a synonym table:
// exact match first, then substring containment in either direction.
// Canonical categories are checked in sorted order so a value matching
// synonyms from several categories always resolves the same way.
// Returns the fallback when nothing matches.
func matchCategory(raw string, table map[string][]string, fallback string) string {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return fallback
	}

	if _, ok := table[value]; ok {
		return value
	}

	canonicals := make([]string, 0, len(table))
	for canonical := range table {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	for _, canonical := range canonicals {
		for _, syn := range table[canonical] {
			if value == syn {
				return canonical
			}
		}
	}
	for _, canonical := range canonicals {
		for _, syn := range table[canonical] {
			if strings.Contains(value, syn) || strings.Contains(syn, value) {
				return canonical
			}
		}
	}

	return fallback
}
