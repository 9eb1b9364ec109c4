package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"subtitle-whisper/internal/api/middleware"
	v1routes "subtitle-whisper/internal/api/v1/routes"
	"subtitle-whisper/internal/api/v1/services"
	"subtitle-whisper/internal/app/orchestrator"
	"subtitle-whisper/internal/app/session"
	"subtitle-whisper/internal/config"
	"subtitle-whisper/web/handlers"
)

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	router     *gin.Engine
	httpServer *http.Server
	store      *session.Store
	logger     *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	orch *orchestrator.Orchestrator,
	store *session.Store,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *Server {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = 32 << 20

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"sessions":  store.Len(),
			"timestamp": time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	serviceContainer := &v1routes.ServiceContainer{
		SessionService:       services.NewSessionService(orch, store, logger),
		TranscriptionService: services.NewTranscriptionService(orch, logger),
		MaxUploadBytes:       cfg.MaxUploadBytes(),
	}

	api := router.Group("/api")
	{
		v1 := api.Group("/v1", middleware.Session(store, !cfg.IsDevelopment(), logger))
		v1routes.RegisterRoutes(v1, serviceContainer)
	}

	static := handlers.NewStaticHandler()
	router.GET("/", gin.WrapF(static.ServeStatic))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			static.ServeStatic(c.Writer, c.Request)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"kind": "not_found", "message": "route not found"})
	})

	httpServer := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return &Server{
		config:     cfg,
		router:     router,
		httpServer: httpServer,
		store:      store,
		logger:     logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.httpServer.Addr),
		zap.String("environment", s.config.Server.Environment),
	)

	go s.store.Expire(ctx, s.config.Media.SessionIdleTimeout)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server and drops every session
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("Failed to release scratch data", zap.Error(err))
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
