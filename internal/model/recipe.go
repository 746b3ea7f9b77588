package model

import (
	"github.com/lib/pq"
)

// Recipe is a read-only projection of a stored drink recipe row. The
// pipeline never writes recipes; mutation belongs to the app's own CRUD
// surface.
type Recipe struct {
	UUID              string         `json:"uuid" db:"uuid"`
	DrinkName         string         `json:"drink_name" db:"drink_name"`
	Price             *float64       `json:"price,omitempty" db:"price"`
	Rating            *float64       `json:"rating,omitempty" db:"rating"`
	RatingCount       *int           `json:"rating_count,omitempty" db:"rating_count"`
	Tags              pq.StringArray `json:"tags,omitempty" db:"tags"`
	Thoughts          *string        `json:"thoughts,omitempty" db:"thoughts"`
	Recipe            *string        `json:"recipe,omitempty" db:"recipe"`
	LocationPurchased *string        `json:"location_purchased,omitempty" db:"location_purchased"`
	ImageURL          *string        `json:"image_url,omitempty" db:"image_url"`
}

// Pick is the shape a candidate takes in chat responses and in the
// payload handed to the text-generation model. Free-text fields are
// clipped before they get here.
type Pick struct {
	Index       int      `json:"i"`
	UUID        string   `json:"uuid"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Rating      *float64 `json:"rating"`
	RatingCount *int     `json:"rating_count"`
	Tags        []string `json:"tags"`
	Location    *string  `json:"location"`
	Thoughts    string   `json:"thoughts"`
	Recipe      string   `json:"recipe"`
	ImageURL    *string  `json:"image_url"`
}
