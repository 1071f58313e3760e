// Package di provides dependency injection configuration for the reviews server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/flexliving/reviews-server/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage and corpus
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCorpus)

	// Business services
	do.Provide(injector, providers.ProvideReviewService)
	do.Provide(injector, providers.ProvideApprovalService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap starts the long-lived services: storage, corpus watcher, and the
// HTTP server. Seeding the approval store happens before the server accepts
// requests so the first normalization pass sees a populated store.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.CorpusHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.ApprovalServiceHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
