package service

import (
	"math"
	"testing"

	"bevin/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestParseMiles(t *testing.T) {
	assert.Equal(t, 1.1, parseMiles(sptr("Midtown · 1.1 mi")))
	assert.Equal(t, 0.4, parseMiles(sptr("0.4 mi away")))
	assert.Equal(t, 2.0, parseMiles(sptr("Cafe on 5th · 2 MI")))
	assert.True(t, math.IsInf(parseMiles(nil), 1))
	assert.True(t, math.IsInf(parseMiles(sptr("East Atlanta Village")), 1))
	assert.True(t, math.IsInf(parseMiles(sptr("2 miles-ish, maybe")), 1))
}

func TestSortByProximity(t *testing.T) {
	recipes := []model.Recipe{
		{DrinkName: "far", LocationPurchased: sptr("Midtown · 1.1 mi")},
		{DrinkName: "no-distance-a", LocationPurchased: sptr("East Atlanta")},
		{DrinkName: "near", LocationPurchased: sptr("Downtown · 0.4 mi")},
		{DrinkName: "no-distance-b", LocationPurchased: nil},
	}

	sorted := SortByProximity(recipes)

	names := make([]string, 0, len(sorted))
	for _, r := range sorted {
		names = append(names, r.DrinkName)
	}
	assert.Equal(t, []string{"near", "far", "no-distance-a", "no-distance-b"}, names)

	// Input order is untouched; the sort works on a copy.
	assert.Equal(t, "far", recipes[0].DrinkName)
}

func TestSortByProximityStable(t *testing.T) {
	recipes := []model.Recipe{
		{DrinkName: "first", LocationPurchased: sptr("A · 1.0 mi")},
		{DrinkName: "second", LocationPurchased: sptr("B · 1.0 mi")},
		{DrinkName: "third", LocationPurchased: sptr("C · 1.0 mi")},
	}

	sorted := SortByProximity(recipes)

	assert.Equal(t, "first", sorted[0].DrinkName)
	assert.Equal(t, "second", sorted[1].DrinkName)
	assert.Equal(t, "third", sorted[2].DrinkName)
}

func TestSortByProximityEmpty(t *testing.T) {
	assert.Empty(t, SortByProximity(nil))
}
