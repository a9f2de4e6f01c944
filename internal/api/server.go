package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"

	api "sysprobe/internal/api/application"
	"sysprobe/internal/api/handlers"
	apimiddleware "sysprobe/internal/api/middleware"
	configapp "sysprobe/internal/config/application"
	probesdomain "sysprobe/internal/probes/domain"
	sharedlogger "sysprobe/internal/shared/logger"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	logger     sharedlogger.Logger
}

// NewServer creates a new API server
func NewServer(
	logger sharedlogger.Logger,
	runtimeCfg *configapp.RuntimeConfig,
	configLoader handlers.ConfigLoader,
	snapshot probesdomain.SnapshotSource,
	registry probesdomain.Registry,
) (*Server, error) {
	if runtimeCfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set SYSPROBE_API_KEY or use --api-key flag)")
	}

	configHandler := handlers.NewConfigHandler(configLoader)
	snapshotHandler := handlers.NewSnapshotHandler(api.NewSnapshotService(snapshot))
	probeHandler := handlers.NewProbeHandler(api.NewProbeService(registry))

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// httplog needs the concrete slog.Logger
	var slogLogger *slog.Logger
	if infraLogger, ok := logger.(interface{ SLog() *slog.Logger }); ok {
		slogLogger = infraLogger.SLog()
	} else {
		slogLogger = slog.Default()
	}

	r.Use(httplog.RequestLogger(slogLogger, &httplog.Options{
		Level:             slog.LevelDebug,
		Schema:            httplog.SchemaECS.Concise(true),
		LogRequestHeaders: []string{},
	}))
	r.Use(handlers.WithLogger(slogLogger))

	// Go runtime profiles, only in dev mode
	if runtimeCfg.DevMode {
		r.Mount("/debug", middleware.Profiler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apimiddleware.APIKeyAuthWithKey(runtimeCfg.APIKey))

		r.Get("/config", configHandler.GetConfig)
		r.Post("/config", configHandler.LoadConfig)
		r.Get("/snapshot", snapshotHandler.ListSnapshot)
		r.Get("/snapshot/{name}", snapshotHandler.GetSnapshot)
		r.Get("/probes", probeHandler.ListProbes)
	})

	httpServer := &http.Server{
		Addr:         runtimeCfg.Listen,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Debug("Server configured",
		"addr", runtimeCfg.Listen,
		"dev_mode", runtimeCfg.DevMode,
		"middleware", []string{"RequestID", "RealIP", "Recoverer", "httplog"},
	)

	return &Server{
		httpServer: httpServer,
		logger:     logger,
	}, nil
}

// Handler returns the routed handler of the server
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Error("Server error", "err", err)
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server shutdown error", "err", err)
	} else {
		s.logger.Info("Server shutdown complete")
	}
	return err
}
