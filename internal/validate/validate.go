// Package validate checks canonical records against structural rules.
// Validation problems are values, never errors: scraped data is expected
// to be dirty, and a record with findings is still a record.
package validate

import (
	"fmt"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
)

// FieldError describes one validation finding on one field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate returns all structural problems with a record. An empty slice
// means the record is valid.
func Validate(p *database.Property) []FieldError {
	var errs []FieldError

	if p.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required field is empty"})
	}
	if p.Address == "" {
		errs = append(errs, FieldError{Field: "address", Message: "required field is empty"})
	}

	if p.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "must not be negative"})
	}
	if p.Units < 0 {
		errs = append(errs, FieldError{Field: "units", Message: "must not be negative"})
	}
	if p.SquareFeet < 0 {
		errs = append(errs, FieldError{Field: "square_feet", Message: "must not be negative"})
	}
	if p.YearBuilt < 0 {
		errs = append(errs, FieldError{Field: "year_built", Message: "must not be negative"})
	}

	return errs
}

// ValidateRaw checks a raw scraped map before coercion, reporting values
// that do not parse as numbers at all. A non-numeric value and a negative
// value are independent findings.
func ValidateRaw(raw map[string]interface{}) []FieldError {
	var errs []FieldError

	for _, field := range []string{"price", "units", "square_feet"} {
		value, ok := raw[field]
		if !ok || value == nil {
			continue
		}
		switch value.(type) {
		case float64, float32, int, int64:
			// Already numeric
		case string:
			if !looksNumeric(value.(string)) {
				errs = append(errs, FieldError{Field: field, Message: "not a number"})
			}
		default:
			errs = append(errs, FieldError{Field: field, Message: "not a number"})
		}
	}

	return errs
}

func looksNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits > 0
}
