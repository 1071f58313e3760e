package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/flexliving/reviews-server/internal/api"
	"github.com/flexliving/reviews-server/internal/config"
	"github.com/flexliving/reviews-server/internal/logger"
	"github.com/flexliving/reviews-server/internal/ratelimit"
	"github.com/flexliving/reviews-server/internal/service"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	h.limiter.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	reviewService := do.MustInvoke[*service.ReviewService](i)
	approvalHandle := do.MustInvoke[*ApprovalServiceHandle](i)

	limiter := ratelimit.New(cfg.Approval.MutationRPS, cfg.Approval.MutationBurst)

	handler := api.NewServer(&api.Services{
		Reviews:   reviewService,
		Approvals: approvalHandle.Service,
	}, limiter, cfg.Server.CORSOrigins, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, limiter: limiter}, nil
}
