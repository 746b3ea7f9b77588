package model

// Intent represents the structured filters parsed from a free-text chat
// message. Every field is optional; an empty message yields a zero Intent,
// which still retrieves an unfiltered top-rated result set.
type Intent struct {
	MaxPrice  *float64 `json:"max_price,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
	Tag       *string  `json:"tag,omitempty"`
	Term      string   `json:"term,omitempty"`
	NearMe    bool     `json:"near_me,omitempty"`
}
