// Package corpus loads the raw review payload supplied by the integration
// and keeps an in-memory snapshot that reloads when the file changes.
package corpus

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/flexliving/reviews-server/internal/domain"
)

// payload is the integration's response envelope.
type payload struct {
	Status string             `json:"status"`
	Result []domain.RawReview `json:"result"`
}

// Loader reads raw reviews from a file and serves the parsed snapshot.
type Loader struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	reviews []domain.RawReview
}

// NewLoader creates a loader for the given payload file.
func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Load reads and parses the payload file, replacing the current snapshot.
// On failure the previous snapshot is kept.
func (l *Loader) Load() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	reviews, err := parsePayload(data)
	if err != nil {
		return fmt.Errorf("parse corpus %s: %w", l.path, err)
	}

	l.mu.Lock()
	l.reviews = reviews
	l.mu.Unlock()

	if l.logger != nil {
		l.logger.Info("corpus loaded", "path", l.path, "reviews", len(reviews))
	}
	return nil
}

// Reviews returns the current snapshot. The returned slice is a copy.
func (l *Loader) Reviews() []domain.RawReview {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.RawReview, len(l.reviews))
	copy(out, l.reviews)
	return out
}

// parsePayload accepts either the integration envelope or a bare array.
func parsePayload(data []byte) ([]domain.RawReview, error) {
	var env payload
	if err := json.Unmarshal(data, &env); err == nil && env.Result != nil {
		return env.Result, nil
	}

	var reviews []domain.RawReview
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
