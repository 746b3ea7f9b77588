package service

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"bevin/internal/model"
)

// Location strings may embed a distance suffix, e.g. "Midtown · 1.1 mi".
// That substring is the only distance signal available; there are no real
// coordinates in the recipe rows.
var milesRe = regexp.MustCompile(`(?i)([\d.]+)\s*mi\b`)

// parseMiles extracts the embedded distance, or +Inf when the location has
// none so those rows sort last.
func parseMiles(location *string) float64 {
	if location == nil {
		return math.Inf(1)
	}
	m := milesRe.FindStringSubmatch(*location)
	if m == nil {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

// SortByProximity re-orders candidates by parsed distance ascending. The
// sort is stable and pure: equal or unparsable distances keep their
// pre-sort relative order, and neither the selection nor the count changes.
func SortByProximity(recipes []model.Recipe) []model.Recipe {
	sorted := make([]model.Recipe, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseMiles(sorted[i].LocationPurchased) < parseMiles(sorted[j].LocationPurchased)
	})
	return sorted
}
