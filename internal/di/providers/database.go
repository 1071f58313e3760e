package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/flexliving/reviews-server/internal/config"
	"github.com/flexliving/reviews-server/internal/logger"
	"github.com/flexliving/reviews-server/internal/store"
)

// StoreHandle wraps the approval store with Shutdownable.
type StoreHandle struct {
	Store *store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore provides the Badger-backed approval store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := store.New(filepath.Join(cfg.Data.BasePath, "approvals"), log.Logger)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: st}, nil
}
