package providers

import (
	"context"
	"errors"

	"github.com/samber/do/v2"

	"github.com/flexliving/reviews-server/internal/config"
	"github.com/flexliving/reviews-server/internal/corpus"
	"github.com/flexliving/reviews-server/internal/logger"
)

// CorpusHandle wraps the corpus loader and its watcher goroutine.
type CorpusHandle struct {
	Loader *corpus.Loader
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CorpusHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

// ProvideCorpus provides the raw review corpus, loaded once at startup and
// reloaded on file changes when watching is enabled.
func ProvideCorpus(i do.Injector) (*CorpusHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	loader := corpus.NewLoader(cfg.Corpus.Path, log.Logger)
	if err := loader.Load(); err != nil {
		return nil, err
	}

	handle := &CorpusHandle{Loader: loader}

	if cfg.Corpus.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		handle.cancel = cancel
		go func() {
			if err := loader.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("corpus watcher stopped", "error", err)
			}
		}()
	}

	return handle, nil
}
