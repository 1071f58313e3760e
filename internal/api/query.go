package api

import (
	"strings"
	"time"

	"github.com/flexliving/reviews-server/internal/domain"
)

// ListReviewsInput carries the review query parameters. Every parameter is
// optional; unrecognized enum tokens are coerced to their fallback variant
// rather than rejected, so a typo'd filter yields a best-effort result.
type ListReviewsInput struct {
	Listing           string   `query:"listing" doc:"Listing slug"`
	ListingID         *int64   `query:"listingId" doc:"Listing id"`
	Channels          string   `query:"channels" doc:"Comma-separated channel list"`
	Types             string   `query:"types" doc:"Comma-separated review type list"`
	Statuses          string   `query:"statuses" doc:"Comma-separated status list"`
	Approved          *bool    `query:"approved" doc:"Approval state"`
	MinRating         *float64 `query:"minRating" doc:"Normalized rating lower bound"`
	MaxRating         *float64 `query:"maxRating" doc:"Normalized rating upper bound"`
	Category          string   `query:"category" doc:"Category key the review must carry"`
	MinCategoryRating *float64 `query:"minCategoryRating" doc:"Category normalized rating lower bound"`
	From              string   `query:"from" doc:"Inclusive start date (ISO)"`
	To                string   `query:"to" doc:"Inclusive end date (ISO)"`
	Search            string   `query:"search" doc:"Free-text search terms"`
	Sort              string   `query:"sort" doc:"Sort token, field:direction"`
}

// FilterSpec translates the query parameters into the filter contract.
func (in *ListReviewsInput) FilterSpec() domain.FilterSpec {
	f := domain.FilterSpec{
		ListingID: in.ListingID,
		Approved:  in.Approved,
		MinRating: in.MinRating,
		MaxRating: in.MaxRating,
		Search:    strings.TrimSpace(in.Search),
	}

	if slug := strings.TrimSpace(in.Listing); slug != "" {
		f.ListingSlug = &slug
	}
	if key := strings.ToLower(strings.TrimSpace(in.Category)); key != "" {
		f.Category = &key
		f.MinCategoryRating = in.MinCategoryRating
	}

	for _, token := range splitTokens(in.Channels) {
		f.Channels = append(f.Channels, domain.ParseChannel(token))
	}
	for _, token := range splitTokens(in.Types) {
		f.Types = append(f.Types, domain.ParseReviewType(token))
	}
	for _, token := range splitTokens(in.Statuses) {
		f.Statuses = append(f.Statuses, domain.ParseStatus(token))
	}

	f.From = parseQueryDate(in.From, false)
	f.To = parseQueryDate(in.To, true)

	return f
}

// SortSpec translates the sort token.
func (in *ListReviewsInput) SortSpec() domain.SortSpec {
	return domain.ParseSortSpec(in.Sort)
}

// splitTokens splits a comma-separated list, dropping empties.
func splitTokens(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseQueryDate parses an ISO date or instant. A date-only upper bound is
// extended to the end of that day so the range stays inclusive. Unparseable
// values are dropped, matching the best-effort filter contract.
func parseQueryDate(raw string, endOfDay bool) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.UTC); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t
	}
	return nil
}
