package service

import (
	"context"
	"sort"
	"strings"

	"bevin/internal/model"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }

// memStore is an in-memory RecipeStore that applies RecipeQuery semantics
// the way the real store does: numeric bounds, tag overlap, case-insensitive
// substring search, canonical ordering, limit.
type memStore struct {
	rows    []model.Recipe
	err     error
	queries []model.RecipeQuery
}

func (m *memStore) FindRecipes(_ context.Context, q model.RecipeQuery) ([]model.Recipe, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, m.err
	}

	var out []model.Recipe
	for _, r := range m.rows {
		if q.MaxPrice != nil && (r.Price == nil || *r.Price > *q.MaxPrice) {
			continue
		}
		if q.MinRating != nil && (r.Rating == nil || *r.Rating < *q.MinRating) {
			continue
		}
		if len(q.Tags) > 0 && !overlaps(r.Tags, q.Tags) {
			continue
		}
		if q.Term != "" && !matchesTerm(r, q.Term) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := ratingOf(out[i]), ratingOf(out[j])
		if ri != rj {
			return ri > rj
		}
		return countOf(out[i]) > countOf(out[j])
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func overlaps(have []string, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func matchesTerm(r model.Recipe, term string) bool {
	t := strings.ToLower(term)
	for _, f := range []*string{&r.DrinkName, r.Thoughts, r.Recipe} {
		if f != nil && strings.Contains(strings.ToLower(*f), t) {
			return true
		}
	}
	return false
}

func ratingOf(r model.Recipe) float64 {
	if r.Rating == nil {
		return -1
	}
	return *r.Rating
}

func countOf(r model.Recipe) int {
	if r.RatingCount == nil {
		return -1
	}
	return *r.RatingCount
}

// fakeGenerator records generation calls and replies with canned output.
type fakeGenerator struct {
	enabled bool
	reply   string
	err     error

	prompts []string // user-role content per call
	temps   []float64
}

func (f *fakeGenerator) Complete(_ context.Context, messages []ChatMessage, temperature float64) (string, error) {
	for _, m := range messages {
		if m.Role == "user" {
			f.prompts = append(f.prompts, m.Content)
		}
	}
	f.temps = append(f.temps, temperature)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGenerator) IsEnabled() bool { return f.enabled }
