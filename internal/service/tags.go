package service

import "strings"

// tagBucket maps a coarse flavor bucket to the catalog keywords it covers.
// Declaration order doubles as the intent parser's scan order, so keep it
// stable.
type tagBucket struct {
	Name    string
	Members []string
}

var tagBuckets = []tagBucket{
	{"tropical", []string{"tropical", "mango", "pineapple", "coconut", "lychee", "passionfruit", "guava", "peach"}},
	{"citrus", []string{"citrus", "lemon", "lime", "orange", "grapefruit", "yuzu"}},
	{"creamy", []string{"creamy", "milk-tea", "latte", "milk", "foam", "cold-foam"}},
}

// ExpandTag maps a flavor tag to the full member list of its bucket, so
// "mango" retrieves everything tagged under the tropical bucket and vice
// versa. An unknown tag becomes a singleton list; an empty tag means no
// filter at all.
func ExpandTag(tag *string) []string {
	if tag == nil || *tag == "" {
		return nil
	}
	t := strings.ToLower(*tag)
	for _, b := range tagBuckets {
		if b.Name == t {
			return b.Members
		}
	}
	return []string{t}
}

// bucketForKeyword returns the owning bucket name for a catalog keyword,
// or the keyword itself when no bucket claims it.
func bucketForKeyword(word string) string {
	for _, b := range tagBuckets {
		for _, m := range b.Members {
			if m == word {
				return b.Name
			}
		}
	}
	return word
}
