package match

import (
	"regexp"
	"strings"
)

// Street-suffix and unit abbreviations collapsed before comparison.
// Both the long and short form normalize to the short form, so
// "100 Oak Avenue" and "100 Oak Ave" compare equal.
var addressAbbreviations = map[string]string{
	"STREET":    "ST",
	"AVENUE":    "AVE",
	"BOULEVARD": "BLVD",
	"ROAD":      "RD",
	"DRIVE":     "DR",
	"LANE":      "LN",
	"COURT":     "CT",
	"PLACE":     "PL",
	"SUITE":     "STE",
	"APARTMENT": "APT",
	"BUILDING":  "BLDG",
	"NORTH":     "N",
	"SOUTH":     "S",
	"EAST":      "E",
	"WEST":      "W",
}

// Patterns for marketing boilerplate that brokers append to names
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bFOR SALE\b`),
	regexp.MustCompile(`\bFOR LEASE\b`),
	regexp.MustCompile(`\bNOW AVAILABLE\b`),
	regexp.MustCompile(`\bNEW LISTING\b`),
	regexp.MustCompile(`\bPRICE REDUCED\b`),
	regexp.MustCompile(`\bMUST SEE\b`),
	regexp.MustCompile(`\bEXCLUSIVE\b`),
}

var (
	punctPattern      = regexp.MustCompile(`[.,#'()\-/]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeAddress canonicalizes an address for comparison: uppercase,
// punctuation stripped, common suffixes abbreviated, whitespace collapsed.
// Idempotent.
func NormalizeAddress(address string) string {
	s := strings.ToUpper(address)
	s = punctPattern.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	for i, w := range words {
		if abbr, ok := addressAbbreviations[w]; ok {
			words[i] = abbr
		}
	}
	return strings.Join(words, " ")
}

// NormalizeName canonicalizes a property name for comparison: uppercase,
// marketing boilerplate removed, punctuation stripped, whitespace collapsed.
// Idempotent.
func NormalizeName(name string) string {
	s := strings.ToUpper(name)
	// Collapse whitespace first so irregular spacing inside a boilerplate
	// phrase ("FOR  SALE", "FOR\tSALE") cannot shield it from the patterns
	s = whitespacePattern.ReplaceAllString(s, " ")
	for _, p := range boilerplatePatterns {
		s = p.ReplaceAllString(s, " ")
	}
	s = punctPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
