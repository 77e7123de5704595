package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"analytics-api/internal/config"
	"analytics-api/internal/handlers"
	"analytics-api/internal/router"
	"analytics-api/internal/store"
)

type Server struct {
	store       *store.Store
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

func NewServer(s *store.Store, cfg *config.Config, logger *slog.Logger) *Server {
	srv := &Server{
		store:       s,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(router.New(s, logger), s, logger, cfg.API.MaxBodyBytes),
		sseHandlers: handlers.NewSSEHandlers(s, logger),
	}
	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	// Dashboard
	s.mux.HandleFunc("GET /{$}", handlers.HandleDashboard)

	// Probes and metrics
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /api/health", s.apiHandlers.HandleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	// Record API; the router owns method and path matching below /api/.
	s.mux.HandleFunc("/api/", s.apiHandlers.HandleDispatch)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/metrics", s.sseHandlers.HandleMetrics)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
