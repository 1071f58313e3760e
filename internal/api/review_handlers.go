package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flexliving/reviews-server/internal/domain"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews",
		Summary:     "Query reviews",
		Description: "Returns normalized reviews with collection metrics and per-listing summaries",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)

	// Integration-named alias used by the dashboard.
	huma.Register(s.api, huma.Operation{
		OperationID: "listHostawayReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews/hostaway",
		Summary:     "Query Hostaway reviews",
		Description: "Alias of listReviews for the Hostaway integration route",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)
}

// === DTOs ===

// ListReviewsOutput wraps the reviews response for Huma.
type ListReviewsOutput struct {
	Body domain.ReviewsResponse
}

// === Handlers ===

func (s *Server) handleListReviews(ctx context.Context, input *ListReviewsInput) (*ListReviewsOutput, error) {
	resp, err := s.services.Reviews.BuildResponse(ctx, input.FilterSpec(), input.SortSpec())
	if err != nil {
		s.logger.Error("failed to build review response", "error", err)
		return nil, huma.Error500InternalServerError("failed to build review response", err)
	}
	return &ListReviewsOutput{Body: *resp}, nil
}
