package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/flexliving/reviews-server/internal/domain"
	"github.com/flexliving/reviews-server/internal/normalize"
)

// ChannelMix groups a review set by channel. Ratios are computed against the
// set's own size and rounded to two decimals. An empty set yields an empty
// breakdown.
func ChannelMix(reviews []domain.NormalizedReview) []domain.ChannelBreakdown {
	if len(reviews) == 0 {
		return []domain.ChannelBreakdown{}
	}

	counts := make(map[domain.Channel]int)
	for i := range reviews {
		counts[reviews[i].Channel]++
	}

	total := float64(len(reviews))
	out := make([]domain.ChannelBreakdown, 0, len(counts))
	for ch, count := range counts {
		out = append(out, domain.ChannelBreakdown{
			Channel: ch,
			Label:   ch.Label(),
			Count:   count,
			Ratio:   round2(float64(count) / total),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// categoryAccumulator collects present values for one category key.
type categoryAccumulator struct {
	normalized []float64
	lastScale  float64
}

// CategoryAverages computes per-category means over a review set. Only
// present normalized values participate; a category with no present values is
// omitted. The original-scale average rescales the normalized mean onto the
// category's last-observed scale.
func CategoryAverages(reviews []domain.NormalizedReview) []domain.CategoryAverage {
	acc := make(map[string]*categoryAccumulator)
	for i := range reviews {
		for _, c := range reviews[i].Categories {
			a := acc[c.Category]
			if a == nil {
				a = &categoryAccumulator{}
				acc[c.Category] = a
			}
			if c.NormalizedRating != nil {
				a.normalized = append(a.normalized, *c.NormalizedRating)
				a.lastScale = c.Scale
			}
		}
	}

	out := make([]domain.CategoryAverage, 0, len(acc))
	for key, a := range acc {
		if len(a.normalized) == 0 {
			continue
		}
		mean := stat.Mean(a.normalized, nil)
		out = append(out, domain.CategoryAverage{
			Category:          key,
			Label:             normalize.CategoryLabel(key),
			Average:           round2(mean * a.lastScale / normalize.TargetScale),
			Scale:             a.lastScale,
			NormalizedAverage: round2(mean),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// MonthlyTrend buckets a review set by YYYY-MM of the canonical submission
// timestamp (UTC calendar), ascending by period. A bucket with no present
// ratings reports a nil average.
func MonthlyTrend(reviews []domain.NormalizedReview) []domain.TrendPoint {
	type bucket struct {
		ratings []float64
		count   int
	}
	buckets := make(map[string]*bucket)
	for i := range reviews {
		period := reviews[i].SubmittedAt.UTC().Format("2006-01")
		b := buckets[period]
		if b == nil {
			b = &bucket{}
			buckets[period] = b
		}
		b.count++
		if reviews[i].NormalizedRating != nil {
			b.ratings = append(b.ratings, *reviews[i].NormalizedRating)
		}
	}

	periods := make([]string, 0, len(buckets))
	for p := range buckets {
		periods = append(periods, p)
	}
	// Lexicographic order is chronological for the YYYY-MM key format.
	sort.Strings(periods)

	out := make([]domain.TrendPoint, 0, len(periods))
	for _, p := range periods {
		b := buckets[p]
		point := domain.TrendPoint{Period: p, ReviewCount: b.count}
		if len(b.ratings) > 0 {
			avg := round2(stat.Mean(b.ratings, nil))
			point.AverageRating = &avg
		}
		out = append(out, point)
	}
	return out
}

// ListingSummaries groups a review set by listing id and aggregates each
// group. Listing name and slug come from the first-seen member of the group.
// Results are ordered by average rating descending with missing averages
// last, ties broken by listing name ascending.
func ListingSummaries(reviews []domain.NormalizedReview) []domain.ListingReviewSummary {
	groups := make(map[int64][]domain.NormalizedReview)
	order := make([]int64, 0)
	for i := range reviews {
		id := reviews[i].ListingID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], reviews[i])
	}

	out := make([]domain.ListingReviewSummary, 0, len(order))
	for _, id := range order {
		group := groups[id]
		first := group[0]

		summary := domain.ListingReviewSummary{
			ListingID:     id,
			ListingName:   first.ListingName,
			ListingSlug:   first.ListingSlug,
			ReviewCount:   len(group),
			AverageRating: meanRating(group),
			Channels:      ChannelMix(group),
			Categories:    CategoryAverages(group),
			MonthlyTrend:  MonthlyTrend(group),
		}
		for i := range group {
			if group[i].IsApproved {
				summary.ApprovedCount++
			}
			if group[i].HasSubmissionDate() {
				if summary.LastReviewAt == nil || group[i].SubmittedAt.After(*summary.LastReviewAt) {
					t := group[i].SubmittedAt
					summary.LastReviewAt = &t
				}
			}
		}
		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].AverageRating, out[j].AverageRating
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && *a != *b:
			return *a > *b
		}
		return strings.ToLower(out[i].ListingName) < strings.ToLower(out[j].ListingName)
	})
	return out
}

// Metrics summarizes a review set: tallies, null-excluding mean, and the
// [min, max] range of parseable submission timestamps.
func Metrics(reviews []domain.NormalizedReview) domain.CollectionMetrics {
	m := domain.CollectionMetrics{
		TotalCount:    len(reviews),
		AverageRating: meanRating(reviews),
	}

	var from, to time.Time
	for i := range reviews {
		if reviews[i].IsApproved {
			m.ApprovedCount++
		}
		if !reviews[i].HasSubmissionDate() {
			continue
		}
		t := reviews[i].SubmittedAt
		if from.IsZero() || t.Before(from) {
			from = t
		}
		if to.IsZero() || t.After(to) {
			to = t
		}
	}
	if !from.IsZero() {
		m.DateRange = &domain.DateRange{From: from, To: to}
	}
	return m
}

// meanRating returns the two-decimal mean of present normalized ratings, or
// nil when none are present.
func meanRating(reviews []domain.NormalizedReview) *float64 {
	values := make([]float64, 0, len(reviews))
	for i := range reviews {
		if reviews[i].NormalizedRating != nil {
			values = append(values, *reviews[i].NormalizedRating)
		}
	}
	if len(values) == 0 {
		return nil
	}
	mean := round2(stat.Mean(values, nil))
	return &mean
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
