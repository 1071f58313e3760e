package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/flexliving/reviews-server/internal/logger"
	"github.com/flexliving/reviews-server/internal/service"
)

// ApprovalServiceHandle wraps the approval service so providing it also seeds
// the store from the corpus before the server starts.
type ApprovalServiceHandle struct {
	Service *service.ApprovalService
}

// ProvideReviewService provides the review query service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	corpusHandle := do.MustInvoke[*CorpusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReviewService(corpusHandle.Loader, storeHandle.Store, log.Logger), nil
}

// ProvideApprovalService provides the approval service and seeds the store.
func ProvideApprovalService(i do.Injector) (*ApprovalServiceHandle, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	corpusHandle := do.MustInvoke[*CorpusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewApprovalService(storeHandle.Store, corpusHandle.Loader, log.Logger)

	if err := svc.Seed(context.Background()); err != nil {
		return nil, err
	}

	return &ApprovalServiceHandle{Service: svc}, nil
}
