// Package main provides a tool to seed the approval store from a corpus file.
//
// Seeding runs SeedIfAbsent for every review id in the corpus, using the
// record's explicit publish flag as the fallback. It is idempotent: a review
// that already has a stored value is left untouched.
//
// Usage:
//
//	DATA_PATH=./data CORPUS_PATH=./data/reviews.json go run ./cmd/seed
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flexliving/reviews-server/internal/corpus"
	"github.com/flexliving/reviews-server/internal/service"
	"github.com/flexliving/reviews-server/internal/store"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "./data"
	}
	corpusPath := os.Getenv("CORPUS_PATH")
	if corpusPath == "" {
		corpusPath = filepath.Join(dataPath, "reviews.json")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	loader := corpus.NewLoader(corpusPath, logger)
	if err := loader.Load(); err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}

	s, err := store.New(filepath.Join(dataPath, "approvals"), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	svc := service.NewApprovalService(s, loader, logger)
	if err := svc.Seed(context.Background()); err != nil {
		log.Fatalf("Failed to seed approval store: %v", err)
	}
}
