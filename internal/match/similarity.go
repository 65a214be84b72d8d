package match

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
)

// Weights maps comparable field names to their contribution to the
// overall similarity score. The score is renormalized over the fields
// actually present on both records, so missing optional data never
// drags a pair down.
type Weights map[string]float64

var defaultWeights = Weights{
	"name":        0.25,
	"address":     0.30,
	"city":        0.05,
	"state":       0.05,
	"zip":         0.10,
	"price":       0.10,
	"units":       0.10,
	"square_feet": 0.05,
}

// DefaultWeights returns a copy of the standard field weighting. Address
// and name dominate because they are the strongest identity signals
// across brokers.
func DefaultWeights() Weights {
	w := make(Weights, len(defaultWeights))
	for field, weight := range defaultWeights {
		w[field] = weight
	}
	return w
}

// SetDefaultWeights replaces the process-wide default weighting, as when
// an operator supplies a weights file at startup. Not safe to call once
// cleaning passes are running.
func SetDefaultWeights(w Weights) {
	defaultWeights = w
}

// LoadWeightsFile reads weight overrides from a YAML file. Fields not
// named in the file keep their default weight.
func LoadWeightsFile(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file: %w", err)
	}
	overrides := map[string]float64{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse weights file: %w", err)
	}
	w := DefaultWeights()
	for field, weight := range overrides {
		if _, ok := w[field]; !ok {
			return nil, fmt.Errorf("unknown similarity field: %s", field)
		}
		w[field] = weight
	}
	return w, nil
}

// Similarity computes the weighted similarity of two records in [0, 1].
// Symmetric; returns 0 when the records share no comparable fields.
func Similarity(a, b *database.Property, weights Weights) float64 {
	scores := Breakdown(a, b, weights)
	fields := make([]string, 0, len(scores))
	for field := range scores {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	var sum, weightTotal float64
	for _, field := range fields {
		sum += scores[field] * weights[field]
		weightTotal += weights[field]
	}
	if weightTotal == 0 {
		return 0
	}
	return sum / weightTotal
}

// Breakdown returns the per-field similarity scores for the fields
// present and non-empty on both records. Fields missing on either side
// are left out entirely.
func Breakdown(a, b *database.Property, weights Weights) map[string]float64 {
	scores := make(map[string]float64)

	if _, ok := weights["name"]; ok && a.Name != "" && b.Name != "" {
		scores["name"] = nameSimilarity(NormalizeName(a.Name), NormalizeName(b.Name))
	}
	if _, ok := weights["address"]; ok && a.Address != "" && b.Address != "" {
		scores["address"] = nameSimilarity(NormalizeAddress(a.Address), NormalizeAddress(b.Address))
	}
	if _, ok := weights["city"]; ok && a.City != "" && b.City != "" {
		scores["city"] = exactSimilarity(a.City, b.City)
	}
	if _, ok := weights["state"]; ok && a.State != "" && b.State != "" {
		scores["state"] = exactSimilarity(a.State, b.State)
	}
	if _, ok := weights["zip"]; ok && a.Zip != "" && b.Zip != "" {
		scores["zip"] = zipSimilarity(a.Zip, b.Zip)
	}
	if _, ok := weights["price"]; ok && (a.Price != 0 || b.Price != 0) {
		scores["price"] = numberSimilarity(a.Price, b.Price)
	}
	if _, ok := weights["units"]; ok && (a.Units != 0 || b.Units != 0) {
		scores["units"] = numberSimilarity(float64(a.Units), float64(b.Units))
	}
	if _, ok := weights["square_feet"]; ok && (a.SquareFeet != 0 || b.SquareFeet != 0) {
		scores["square_feet"] = numberSimilarity(a.SquareFeet, b.SquareFeet)
	}

	return scores
}

// nameSimilarity compares two normalized strings: exact match short-circuits
// to 1.0, otherwise the best of edit-distance ratio and token-order-invariant
// ratio. Token sorting keeps "OAK GROVE APARTMENTS" close to
// "APARTMENTS OAK GROVE".
func nameSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	direct := editRatio(a, b)
	sorted := editRatio(sortTokens(a), sortTokens(b))
	if sorted > direct {
		return sorted
	}
	return direct
}

func exactSimilarity(a, b string) float64 {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return 1.0
	}
	return 0.0
}

// zipSimilarity compares the first five digits only, so ZIP+4 codes
// match their plain counterparts.
func zipSimilarity(a, b string) float64 {
	a = zipPrefix(a)
	b = zipPrefix(b)
	if a != "" && a == b {
		return 1.0
	}
	return 0.0
}

func zipPrefix(zip string) string {
	var digits []rune
	for _, r := range strings.TrimSpace(zip) {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == 5 {
				break
			}
		}
	}
	return string(digits)
}

// numberSimilarity is the ratio of the smaller to the larger value.
// Both zero means both defaults, which counts as agreement.
func numberSimilarity(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1.0
	}
	if a == 0 || b == 0 {
		return 0.0
	}
	if a > b {
		a, b = b, a
	}
	return a / b
}

// editRatio is the Levenshtein similarity ratio of two strings in [0, 1]
func editRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	ra := []rune(a)
	rb := []rune(b)
	dist := levenshtein(ra, rb)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1.0 - float64(dist)/float64(longest)
}

// levenshtein computes the edit distance with a two-row matrix
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
