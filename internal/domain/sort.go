package domain

import (
	"math"
	"slices"
	"strings"
)

// SortField is a supported sort key.
type SortField string

// Supported sort fields.
const (
	SortByDate    SortField = "date"
	SortByRating  SortField = "rating"
	SortByListing SortField = "listing"
	SortByChannel SortField = "channel"
)

// SortDirection orders a sort field ascending or descending.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec describes the requested ordering of the working set.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort orders by submission date, newest first.
var DefaultSort = SortSpec{Field: SortByDate, Direction: SortDesc}

// ParseSortSpec parses a "field:direction" token. An empty token yields the
// default ordering; an unrecognized field falls back to date, a missing or
// unrecognized direction falls back to descending.
func ParseSortSpec(raw string) SortSpec {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return DefaultSort
	}

	field, direction, _ := strings.Cut(raw, ":")

	spec := SortSpec{Field: SortByDate, Direction: SortDesc}
	switch SortField(field) {
	case SortByRating:
		spec.Field = SortByRating
	case SortByListing:
		spec.Field = SortByListing
	case SortByChannel:
		spec.Field = SortByChannel
	}
	if SortDirection(direction) == SortAsc {
		spec.Direction = SortAsc
	}
	return spec
}

// SortReviews orders reviews in place according to the spec. The sort is
// stable, so ties keep their incoming relative order.
func SortReviews(reviews []NormalizedReview, spec SortSpec) {
	cmp := spec.comparator()
	slices.SortStableFunc(reviews, func(a, b NormalizedReview) int {
		c := cmp(&a, &b)
		if spec.Direction == SortDesc {
			return -c
		}
		return c
	})
}

// comparator returns the ascending comparison for the spec's field.
func (s SortSpec) comparator() func(a, b *NormalizedReview) int {
	switch s.Field {
	case SortByRating:
		return func(a, b *NormalizedReview) int {
			// Missing ratings sort below any present rating.
			av, bv := math.Inf(-1), math.Inf(-1)
			if a.NormalizedRating != nil {
				av = *a.NormalizedRating
			}
			if b.NormalizedRating != nil {
				bv = *b.NormalizedRating
			}
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case SortByListing:
		return func(a, b *NormalizedReview) int {
			return strings.Compare(strings.ToLower(a.ListingName), strings.ToLower(b.ListingName))
		}
	case SortByChannel:
		return func(a, b *NormalizedReview) int {
			return strings.Compare(string(a.Channel), string(b.Channel))
		}
	default:
		return func(a, b *NormalizedReview) int {
			return a.SubmittedAt.Compare(b.SubmittedAt)
		}
	}
}
