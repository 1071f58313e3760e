// Package api provides the HTTP API server and handlers for the reviews service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/flexliving/reviews-server/internal/http/response"
	"github.com/flexliving/reviews-server/internal/ratelimit"
	"github.com/flexliving/reviews-server/internal/service"
	"github.com/flexliving/reviews-server/internal/validation"
)

// apiVersion is reported in the OpenAPI document.
const apiVersion = "1.0.0"

// Services groups the business logic services used by the API server.
type Services struct {
	Reviews   *service.ReviewService
	Approvals *service.ApprovalService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services  *Services
	router    *chi.Mux
	api       huma.API
	validator *validation.Validator
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, limiter *ratelimit.KeyedRateLimiter, corsOrigins []string, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		services:  services,
		router:    router,
		validator: validation.New(),
		limiter:   limiter,
		logger:    logger,
	}

	s.setupMiddleware(corsOrigins)

	RegisterErrorHandler()
	s.api = humachi.New(router, huma.DefaultConfig("Reviews API", apiVersion))

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(corsOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check stays outside the typed API surface.
	s.router.Get("/health", s.handleHealthCheck)

	s.registerReviewRoutes()
	s.registerApprovalRoutes()
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
