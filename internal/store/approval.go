package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/flexliving/reviews-server/internal/id"
)

const (
	approvalPrefix = "approval:"
	auditPrefix    = "audit:"
)

// Approval write sources.
const (
	SourceSeed    = "seed"
	SourceManager = "manager"
)

// ApprovalRecord is one persisted approval value for a review.
type ApprovalRecord struct {
	ReviewID  string    `json:"reviewId"`
	Value     bool      `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
	Source    string    `json:"source"`
}

// AuditEntry records one approval write. Entries are append-only.
type AuditEntry struct {
	ID        string    `json:"id"`
	ReviewID  string    `json:"reviewId"`
	Value     bool      `json:"value"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetApproval returns the stored approval value for a review, or nil when no
// value exists.
func (s *Store) GetApproval(ctx context.Context, reviewID string) (*bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := approvalPrefix + reviewID
	var record ApprovalRecord
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &record.Value, nil
}

// SeedIfAbsent stores the fallback value for a review unless a value already
// exists. A nil fallback is a no-op, as is a repeated call for the same id.
func (s *Store) SeedIfAbsent(ctx context.Context, reviewID string, fallback *bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if fallback == nil {
		return nil
	}

	key := approvalPrefix + reviewID
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err == nil {
			return nil // already seeded
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return s.writeApproval(txn, reviewID, *fallback, SourceSeed)
	})
}

// SetApproval stores a manager override for a review. The override takes
// precedence over the explicit source flag and the threshold default on every
// subsequent normalization pass.
func (s *Store) SetApproval(ctx context.Context, reviewID string, value bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return s.writeApproval(txn, reviewID, value, SourceManager)
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("approval override set", "review_id", reviewID, "approved", value)
	}
	return nil
}

// writeApproval stores the approval record and an audit entry in one txn.
func (s *Store) writeApproval(txn *badger.Txn, reviewID string, value bool, source string) error {
	now := time.Now().UTC()

	record := ApprovalRecord{
		ReviewID:  reviewID,
		Value:     value,
		UpdatedAt: now,
		Source:    source,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal approval: %w", err)
	}
	if err := txn.Set([]byte(approvalPrefix+reviewID), data); err != nil {
		return err
	}

	entry := AuditEntry{
		ID:        id.MustGenerate("aud"),
		ReviewID:  reviewID,
		Value:     value,
		Source:    source,
		CreatedAt: now,
	}
	auditData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	// Key by a fixed-width timestamp so lexicographic iteration order is
	// chronological. RFC3339Nano trims trailing zeros and would break that.
	auditKey := auditPrefix + now.Format("2006-01-02T15:04:05.000000000Z") + ":" + entry.ID
	return txn.Set([]byte(auditKey), auditData)
}

// Snapshot returns all stored approval records, ordered by review id.
func (s *Store) Snapshot(ctx context.Context) ([]ApprovalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []ApprovalRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(approvalPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var record ApprovalRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ReviewID < records[j].ReviewID
	})
	return records, nil
}

// OverrideMap returns the current approval values keyed by review id. The
// pipeline reads this once per request so every normalization within one
// response observes the same snapshot.
func (s *Store) OverrideMap(ctx context.Context) (map[string]bool, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]bool, len(records))
	for _, r := range records {
		m[r.ReviewID] = r.Value
	}
	return m, nil
}

// AuditLog returns approval write history in chronological order.
func (s *Store) AuditLog(ctx context.Context) ([]AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []AuditEntry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(auditPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var entry AuditEntry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
