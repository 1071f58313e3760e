package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flexliving/reviews-server/internal/errors"
	"github.com/flexliving/reviews-server/internal/store"
)

func (s *Server) registerApprovalRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "setReviewApproval",
		Method:      http.MethodPatch,
		Path:        "/api/v1/reviews/{id}/approval",
		Summary:     "Set review approval",
		Description: "Stores a manager approval override. The override takes precedence over the source publish flag and the rating threshold default.",
		Tags:        []string{"Approvals"},
	}, s.handleSetApproval)

	huma.Register(s.api, huma.Operation{
		OperationID: "listApprovals",
		Method:      http.MethodGet,
		Path:        "/api/v1/approvals",
		Summary:     "List approval overrides",
		Description: "Returns the current approval store snapshot",
		Tags:        []string{"Approvals"},
	}, s.handleListApprovals)

	huma.Register(s.api, huma.Operation{
		OperationID: "listApprovalAudit",
		Method:      http.MethodGet,
		Path:        "/api/v1/approvals/audit",
		Summary:     "List approval audit trail",
		Description: "Returns approval writes in chronological order",
		Tags:        []string{"Approvals"},
	}, s.handleListApprovalAudit)
}

// === DTOs ===

// SetApprovalRequest is the approval mutation body.
type SetApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required" doc:"Approval state to store"`
}

// SetApprovalInput wraps the mutation with its path parameter and client identity.
type SetApprovalInput struct {
	ID            string `path:"id" doc:"Review id (e.g. hostaway-7453)"`
	XForwardedFor string `header:"X-Forwarded-For"`
	Body          SetApprovalRequest
}

// SetApprovalResponse echoes the stored state.
type SetApprovalResponse struct {
	ReviewID string `json:"reviewId"`
	Approved bool   `json:"approved"`
}

// SetApprovalOutput wraps the response for Huma.
type SetApprovalOutput struct {
	Body SetApprovalResponse
}

// ListApprovalsOutput wraps the snapshot for Huma.
type ListApprovalsOutput struct {
	Body struct {
		Approvals []store.ApprovalRecord `json:"approvals"`
	}
}

// ListApprovalAuditOutput wraps the audit trail for Huma.
type ListApprovalAuditOutput struct {
	Body struct {
		Entries []store.AuditEntry `json:"entries"`
	}
}

// === Handlers ===

func (s *Server) handleSetApproval(ctx context.Context, input *SetApprovalInput) (*SetApprovalOutput, error) {
	if !s.limiter.Allow(clientKey(input.XForwardedFor)) {
		return nil, huma.Error429TooManyRequests("approval mutation rate exceeded", errors.RateLimited("approval mutation rate exceeded"))
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, huma.Error400BadRequest("invalid approval request", err)
	}

	if err := s.services.Approvals.Set(ctx, input.ID, *input.Body.Approved); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, huma.Error404NotFound(err.Error(), err)
		}
		s.logger.Error("failed to set approval", "review_id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to set approval", err)
	}

	return &SetApprovalOutput{Body: SetApprovalResponse{
		ReviewID: input.ID,
		Approved: *input.Body.Approved,
	}}, nil
}

func (s *Server) handleListApprovals(ctx context.Context, _ *struct{}) (*ListApprovalsOutput, error) {
	records, err := s.services.Approvals.Snapshot(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to read approval snapshot", err)
	}
	out := &ListApprovalsOutput{}
	out.Body.Approvals = records
	return out, nil
}

func (s *Server) handleListApprovalAudit(ctx context.Context, _ *struct{}) (*ListApprovalAuditOutput, error) {
	entries, err := s.services.Approvals.AuditLog(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to read approval audit trail", err)
	}
	out := &ListApprovalAuditOutput{}
	out.Body.Entries = entries
	return out, nil
}

// clientKey identifies the caller for rate limiting. Falls back to a shared
// key when no forwarding header is present.
func clientKey(forwardedFor string) string {
	if forwardedFor != "" {
		return forwardedFor
	}
	return "local"
}
