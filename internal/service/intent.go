package service

import (
	"regexp"
	"strconv"
	"strings"

	"bevin/internal/model"
)

var (
	// The budget qualifier is detected but not required, so a bare number is
	// captured as a price ceiling. "rating 5 stars" therefore also sets
	// maxPrice=5; this mirrors the app's historical behavior and stays until
	// the cross-capture question is settled (see DESIGN.md).
	priceRe  = regexp.MustCompile(`(?i)(under|below|<=)?\s*\$?\s*(\d+(?:\.\d{1,2})?)`)
	ratingRe = regexp.MustCompile(`(?i)(?:rating|star|stars)\s*(?:>=?|at least)?\s*(\d(?:\.\d)?)`)
	termRe   = regexp.MustCompile(`[^\w\s]`)
	nearMeRe = regexp.MustCompile(`(?i)\bnear me\b`)
)

// IntentParser turns a free-text message into structured filters.
type IntentParser struct{}

// NewIntentParser creates a new intent parser
func NewIntentParser() *IntentParser {
	return &IntentParser{}
}

// Parse extracts budget, rating floor, flavor tag, search term, and "near
// me" proximity from the message. The caller is expected to clip the
// message before parsing.
func (p *IntentParser) Parse(message string) model.Intent {
	lower := strings.ToLower(message)
	intent := model.Intent{
		Term:   strings.TrimSpace(termRe.ReplaceAllString(message, " ")),
		NearMe: nearMeRe.MatchString(message),
	}

	if m := priceRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[2], 64); err == nil {
			intent.MaxPrice = &v
		}
	}

	if m := ratingRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			intent.MinRating = &v
		}
	}

	// Scan the flavor vocabulary in bucket declaration order; only the
	// first hit is kept, mapped back to its owning bucket.
	for _, b := range tagBuckets {
		for _, w := range b.Members {
			if strings.Contains(lower, w) {
				tag := bucketForKeyword(w)
				intent.Tag = &tag
				break
			}
		}
		if intent.Tag != nil {
			break
		}
	}

	return intent
}

// Merge applies caller-supplied filter overrides on top of the parsed
// intent. Explicit values win over inferred ones for the same field.
func (p *IntentParser) Merge(intent model.Intent, explicit *model.ChatFilters) model.Intent {
	if explicit == nil {
		return intent
	}
	if explicit.MaxPrice != nil {
		intent.MaxPrice = explicit.MaxPrice
	}
	if explicit.MinRating != nil {
		intent.MinRating = explicit.MinRating
	}
	if explicit.Tag != nil {
		intent.Tag = explicit.Tag
	}
	return intent
}
