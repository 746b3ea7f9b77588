package model

// RecipeQuery is an explicit query specification consumed by the recipe
// store. The retriever builds one per cascade tier instead of chaining a
// mutable query builder.
type RecipeQuery struct {
	MaxPrice  *float64
	MinRating *float64
	Tags      []string // overlap filter against the row's tag array; nil = no tag filter
	Term      string   // ILIKE substring across name/thoughts/recipe; "" = no text filter
	Limit     int
}
