package service

import (
	"context"
	"fmt"

	"bevin/internal/model"

	"go.uber.org/zap"
)

// RecipeStore is the query surface the retriever needs from the recipe
// database. *repository.PostgresRepository implements it; tests inject
// fakes.
type RecipeStore interface {
	FindRecipes(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, error)
}

// Retriever runs the tiered candidate cascade: start with every parsed
// constraint, then relax in fixed priority order until a tier returns rows.
// The text term is the least trustworthy signal and is dropped first, tags
// next; numeric filters come from explicit parses and are held longest.
type Retriever struct {
	store  RecipeStore
	logger *zap.Logger
}

// NewRetriever creates a new retriever
func NewRetriever(store RecipeStore, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{store: store, logger: logger}
}

// Retrieve executes the cascade and returns the first non-empty tier's
// rows. An empty result after all four tiers is a valid empty success; a
// store error at any tier aborts the whole retrieval (no fallthrough on
// error, no retry).
func (r *Retriever) Retrieve(ctx context.Context, intent model.Intent, limit int) ([]model.Recipe, error) {
	tags := ExpandTag(intent.Tag)

	base := model.RecipeQuery{
		MaxPrice:  intent.MaxPrice,
		MinRating: intent.MinRating,
		Limit:     limit,
	}

	tiers := make([]model.RecipeQuery, 0, 4)

	// Tier 1: full filter set plus text search, only when there is a term.
	if intent.Term != "" {
		q := base
		q.Tags = tags
		q.Term = intent.Term
		tiers = append(tiers, q)
	}

	// Tier 2: drop the term, keep tags and numeric filters.
	withTags := base
	withTags.Tags = tags
	tiers = append(tiers, withTags)

	// Tier 3: numeric filters only.
	tiers = append(tiers, base)

	// Tier 4: unfiltered top-rated.
	tiers = append(tiers, model.RecipeQuery{Limit: limit})

	for i, q := range tiers {
		recipes, err := r.store.FindRecipes(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("tier %d query failed: %w", i+1, err)
		}
		if len(recipes) > 0 {
			r.logger.Debug("retrieval tier satisfied",
				zap.Int("tier", i+1),
				zap.Int("candidates", len(recipes)),
			)
			return recipes, nil
		}
	}

	return nil, nil
}
