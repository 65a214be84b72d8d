package match

import (
	"strings"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
)

// Placeholder words that show up in fixture names left behind by
// broker site developers
var testNameMarkers = []string{"test", "example", "sample", "demo", "dummy", "template"}

// Placeholder phrases that show up in fixture addresses
var testAddressMarkers = []string{"123 main", "test address", "placeholder"}

// IsTestProperty heuristically detects test/placeholder fixtures that
// leaked into scraped data. The first rule that fires supplies the
// reason; real listings hit none of them.
func IsTestProperty(p *database.Property) (bool, string) {
	name := strings.ToLower(p.Name)
	for _, marker := range testNameMarkers {
		if strings.Contains(name, marker) {
			return true, "name contains placeholder word '" + marker + "'"
		}
	}

	if p.Price == 1 {
		return true, "price is $1"
	}

	if p.Units == 0 {
		return true, "zero units"
	}
	if p.Units == 999 {
		return true, "placeholder unit count 999"
	}

	address := strings.ToLower(p.Address)
	for _, marker := range testAddressMarkers {
		if strings.Contains(address, marker) {
			return true, "address contains placeholder phrase '" + marker + "'"
		}
	}

	return false, ""
}
