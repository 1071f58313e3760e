package domain

import (
	"slices"
	"strings"
	"time"
)

// FilterSpec describes which normalized reviews belong to the working set.
// Every field is optional; an unset predicate is vacuously true, and all set
// predicates must hold.
type FilterSpec struct {
	ListingID         *int64
	ListingSlug       *string
	Channels          []Channel
	Types             []ReviewType
	Statuses          []Status
	Approved          *bool
	MinRating         *float64
	MaxRating         *float64
	Category          *string
	MinCategoryRating *float64
	From              *time.Time
	To                *time.Time
	Search            string
}

// IsZero reports whether no predicate is set.
func (f *FilterSpec) IsZero() bool {
	return f.ListingID == nil && f.ListingSlug == nil &&
		len(f.Channels) == 0 && len(f.Types) == 0 && len(f.Statuses) == 0 &&
		f.Approved == nil && f.MinRating == nil && f.MaxRating == nil &&
		f.Category == nil && f.MinCategoryRating == nil &&
		f.From == nil && f.To == nil && f.Search == ""
}

// Matches reports whether the review satisfies every set predicate.
func (f *FilterSpec) Matches(r *NormalizedReview) bool {
	if f.ListingID != nil && r.ListingID != *f.ListingID {
		return false
	}
	if f.ListingSlug != nil && r.ListingSlug != *f.ListingSlug {
		return false
	}
	if len(f.Channels) > 0 && !slices.Contains(f.Channels, r.Channel) {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, r.Type) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, r.Status) {
		return false
	}
	if f.Approved != nil && r.IsApproved != *f.Approved {
		return false
	}

	// Rating bounds require a normalized rating to be present.
	if f.MinRating != nil && (r.NormalizedRating == nil || *r.NormalizedRating < *f.MinRating) {
		return false
	}
	if f.MaxRating != nil && (r.NormalizedRating == nil || *r.NormalizedRating > *f.MaxRating) {
		return false
	}

	// A category filter requires the review to carry the category at all,
	// regardless of any rating bound.
	if f.Category != nil {
		score, ok := r.CategoryScore(*f.Category)
		if !ok {
			return false
		}
		if f.MinCategoryRating != nil && (score == nil || *score < *f.MinCategoryRating) {
			return false
		}
	}

	// Date bounds are inclusive and require a parseable submission timestamp.
	if f.From != nil || f.To != nil {
		if !r.HasSubmissionDate() {
			return false
		}
		if f.From != nil && r.SubmittedAt.Before(*f.From) {
			return false
		}
		if f.To != nil && r.SubmittedAt.After(*f.To) {
			return false
		}
	}

	if f.Search != "" && !f.matchesSearch(r) {
		return false
	}

	return true
}

// matchesSearch applies the full-text predicate: every whitespace-split term
// must independently appear somewhere in the review's searchable text.
func (f *FilterSpec) matchesSearch(r *NormalizedReview) bool {
	haystack := strings.ToLower(searchableText(r))
	for _, term := range strings.Fields(strings.ToLower(f.Search)) {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// searchableText concatenates the free-text surfaces of a review.
func searchableText(r *NormalizedReview) string {
	var sb strings.Builder
	sb.WriteString(r.ListingName)
	for _, s := range []*string{r.GuestName, r.PublicReview, r.PrivateFeedback, r.ManagerResponse} {
		if s != nil {
			sb.WriteByte(' ')
			sb.WriteString(*s)
		}
	}
	for _, tag := range r.Tags {
		sb.WriteByte(' ')
		sb.WriteString(tag)
	}
	return sb.String()
}
