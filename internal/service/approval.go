package service

import (
	"context"
	"log/slog"

	"github.com/flexliving/reviews-server/internal/errors"
	"github.com/flexliving/reviews-server/internal/normalize"
	"github.com/flexliving/reviews-server/internal/store"
)

// ApprovalStore is the persistence surface the approval service needs.
type ApprovalStore interface {
	GetApproval(ctx context.Context, reviewID string) (*bool, error)
	SeedIfAbsent(ctx context.Context, reviewID string, fallback *bool) error
	SetApproval(ctx context.Context, reviewID string, value bool) error
	Snapshot(ctx context.Context) ([]store.ApprovalRecord, error)
	AuditLog(ctx context.Context) ([]store.AuditEntry, error)
}

// ApprovalService manages manager approval overrides.
type ApprovalService struct {
	store  ApprovalStore
	corpus CorpusProvider
	logger *slog.Logger
}

// NewApprovalService creates a new approval service.
func NewApprovalService(store ApprovalStore, corpus CorpusProvider, logger *slog.Logger) *ApprovalService {
	return &ApprovalService{
		store:  store,
		corpus: corpus,
		logger: logger,
	}
}

// Set stores a manager override for a known review. Returns a not-found error
// when the review id does not correspond to any corpus record.
func (s *ApprovalService) Set(ctx context.Context, reviewID string, approved bool) error {
	if !s.knownReview(reviewID) {
		return errors.NotFound("review " + reviewID + " not found")
	}
	return s.store.SetApproval(ctx, reviewID, approved)
}

// Seed runs SeedIfAbsent for every review in the corpus, using the record's
// explicit publish flag as the fallback. Records without a flag are skipped
// (nil fallback is a store no-op). Safe to run repeatedly.
func (s *ApprovalService) Seed(ctx context.Context) error {
	raws := s.corpus.Reviews()
	seeded := 0
	for _, raw := range raws {
		if err := s.store.SeedIfAbsent(ctx, normalize.ReviewID(raw.ID), raw.PublishOnFlex); err != nil {
			return err
		}
		if raw.PublishOnFlex != nil {
			seeded++
		}
	}
	s.logger.Info("approval store seeded", "corpus", len(raws), "with_flag", seeded)
	return nil
}

// Snapshot returns all stored approval records.
func (s *ApprovalService) Snapshot(ctx context.Context) ([]store.ApprovalRecord, error) {
	return s.store.Snapshot(ctx)
}

// AuditLog returns the approval write history.
func (s *ApprovalService) AuditLog(ctx context.Context) ([]store.AuditEntry, error) {
	return s.store.AuditLog(ctx)
}

// knownReview reports whether the review id maps to a corpus record.
func (s *ApprovalService) knownReview(reviewID string) bool {
	for _, raw := range s.corpus.Reviews() {
		if normalize.ReviewID(raw.ID) == reviewID {
			return true
		}
	}
	return false
}
