// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	// Matches runs of anything that is not a lowercase letter or digit.
	nonAlphanumericRunRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// ListingSlug converts a listing name to a URL-safe slug.
// The slug is derived from the sanitized listing name and used as a stable
// identity in query filters.
//
// Normalization rules:
//  1. Trim whitespace and lowercase
//  2. Collapse runs of non-alphanumeric characters into single hyphens
//  3. Trim leading/trailing hyphens
//
// Examples:
//
//	"2B N1 A - 29 Shoreditch Heights" → "2b-n1-a-29-shoreditch-heights"
//	"  Studio   (West) " → "studio-west"
//	"--unknown--" → "unknown"
func ListingSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlphanumericRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
