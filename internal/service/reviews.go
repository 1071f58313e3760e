// Package service contains the review pipeline: normalization, filtering,
// sorting, aggregation, and response assembly.
package service

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/flexliving/reviews-server/internal/domain"
	"github.com/flexliving/reviews-server/internal/normalize"
)

// CorpusProvider supplies the raw review snapshot.
type CorpusProvider interface {
	Reviews() []domain.RawReview
}

// ApprovalReader supplies the approval override snapshot.
type ApprovalReader interface {
	OverrideMap(ctx context.Context) (map[string]bool, error)
}

// ReviewService assembles review query responses. Each call re-normalizes and
// re-aggregates the full corpus; no derived state is cached between calls.
type ReviewService struct {
	corpus    CorpusProvider
	approvals ApprovalReader
	logger    *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(corpus CorpusProvider, approvals ApprovalReader, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		corpus:    corpus,
		approvals: approvals,
		logger:    logger,
	}
}

// BuildResponse normalizes the entire corpus, applies the filter and sort to
// produce the working set, and aggregates both. Metadata vocabulary and
// overall metrics always reflect the full corpus, independent of any filter.
func (s *ReviewService) BuildResponse(ctx context.Context, filter domain.FilterSpec, sortSpec domain.SortSpec) (*domain.ReviewsResponse, error) {
	overrides, err := s.approvals.OverrideMap(ctx)
	if err != nil {
		return nil, err
	}
	lookup := normalize.ApprovalMap(overrides)

	raws := s.corpus.Reviews()
	corpus := make([]domain.NormalizedReview, 0, len(raws))
	for _, raw := range raws {
		corpus = append(corpus, normalize.Review(raw, lookup))
	}

	var working []domain.NormalizedReview
	if filter.IsZero() {
		// No predicates set, the working set is the whole corpus.
		working = slices.Clone(corpus)
	} else {
		working = make([]domain.NormalizedReview, 0, len(corpus))
		for i := range corpus {
			if filter.Matches(&corpus[i]) {
				working = append(working, corpus[i])
			}
		}
	}
	domain.SortReviews(working, sortSpec)

	s.logger.Debug("assembled review response",
		"corpus", len(corpus),
		"working_set", len(working),
	)

	return &domain.ReviewsResponse{
		Meta:     buildMeta(corpus),
		Overall:  Metrics(corpus),
		Filtered: Metrics(working),
		Listings: ListingSummaries(working),
		Reviews:  working,
	}, nil
}

// buildMeta collects the vocabulary observed across the full corpus.
func buildMeta(corpus []domain.NormalizedReview) domain.ResponseMeta {
	channels := make(map[domain.Channel]bool)
	types := make(map[domain.ReviewType]bool)
	statuses := make(map[domain.Status]bool)
	categories := make(map[string]bool)
	for i := range corpus {
		channels[corpus[i].Channel] = true
		types[corpus[i].Type] = true
		statuses[corpus[i].Status] = true
		for _, c := range corpus[i].Categories {
			categories[c.Category] = true
		}
	}

	meta := domain.ResponseMeta{
		GeneratedAt: time.Now().UTC(),
		Channels:    sortedKeys(channels),
		Types:       sortedKeys(types),
		Statuses:    sortedKeys(statuses),
		Categories:  sortedKeys(categories),
	}
	if r := Metrics(corpus).DateRange; r != nil {
		meta.DateRange = r
	}
	return meta
}

// sortedKeys returns the map's keys in ascending order.
func sortedKeys[K ~string](m map[K]bool) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
