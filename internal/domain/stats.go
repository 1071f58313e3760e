package domain

import "time"

// ChannelBreakdown is one slice of a channel-mix distribution.
// Ratio is the review count of the channel divided by the total review count
// of the set the breakdown was computed over, rounded to two decimals.
type ChannelBreakdown struct {
	Channel Channel `json:"channel"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Ratio   float64 `json:"ratio"`
}

// CategoryAverage is the per-category mean over a review set. Average is
// expressed on the category's last-observed original scale; NormalizedAverage
// on the canonical 0–5 scale. Reviews without a value for the category are
// excluded from both numerator and denominator.
type CategoryAverage struct {
	Category          string  `json:"category"`
	Label             string  `json:"label"`
	Average           float64 `json:"average"`
	Scale             float64 `json:"scale"`
	NormalizedAverage float64 `json:"normalizedAverage"`
}

// TrendPoint is one YYYY-MM bucket of a monthly trend series. Reviews whose
// submission timestamp could not be parsed carry the epoch fallback and land
// in the "1970-01" bucket, so bucket counts always sum to the set size.
type TrendPoint struct {
	Period        string   `json:"period"`
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

// DateRange is an inclusive [from, to] span of submission timestamps.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ListingReviewSummary aggregates one listing's reviews within a working set.
type ListingReviewSummary struct {
	ListingID     int64              `json:"listingId"`
	ListingName   string             `json:"listingName"`
	ListingSlug   string             `json:"listingSlug"`
	ReviewCount   int                `json:"reviewCount"`
	ApprovedCount int                `json:"approvedCount"`
	LastReviewAt  *time.Time         `json:"lastReviewAt"`
	AverageRating *float64           `json:"averageRating"`
	Channels      []ChannelBreakdown `json:"channels"`
	Categories    []CategoryAverage  `json:"categories"`
	MonthlyTrend  []TrendPoint       `json:"monthlyTrend"`
}

// CollectionMetrics summarizes an arbitrary review set.
type CollectionMetrics struct {
	TotalCount    int        `json:"totalCount"`
	ApprovedCount int        `json:"approvedCount"`
	AverageRating *float64   `json:"averageRating"`
	DateRange     *DateRange `json:"dateRange"`
}

// ResponseMeta carries the vocabulary observed in the entire unfiltered
// corpus, so filter controls can always offer the complete option set.
type ResponseMeta struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Channels    []Channel    `json:"channels"`
	Types       []ReviewType `json:"types"`
	Statuses    []Status     `json:"statuses"`
	Categories  []string     `json:"categories"`
	DateRange   *DateRange   `json:"dateRange"`
}

// ReviewsResponse is the full query result. Overall metrics and metadata are
// computed over the entire corpus; Filtered metrics, Listings, and Reviews
// over the filtered and sorted working set.
type ReviewsResponse struct {
	Meta     ResponseMeta           `json:"meta"`
	Overall  CollectionMetrics      `json:"overall"`
	Filtered CollectionMetrics      `json:"filtered"`
	Listings []ListingReviewSummary `json:"listings"`
	Reviews  []NormalizedReview     `json:"reviews"`
}
