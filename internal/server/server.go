package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/BrandishShop/internal/database"
	"github.com/osse101/BrandishShop/internal/economy"
	"github.com/osse101/BrandishShop/internal/handler"
	"github.com/osse101/BrandishShop/internal/metrics"
)

// Config holds the HTTP server settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

// Deps are the services the routes are wired to
type Deps struct {
	DBPool    database.Pool
	Economy   economy.Service
	Gold      handler.GoldReader
	Inventory handler.InventoryLister
}

// Server is the HTTP API server
type Server struct {
	httpServer *http.Server
	detector   *SuspiciousActivityDetector
}

// NewServer creates a new Server instance
func NewServer(cfg Config, deps Deps) *Server {
	detector := NewSuspiciousActivityDetector()

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           newRouter(cfg, deps, detector),
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			ReadTimeout:       orDefault(cfg.ReadTimeout, DefaultReadTimeout),
			WriteTimeout:      orDefault(cfg.WriteTimeout, DefaultWriteTimeout),
			IdleTimeout:       orDefault(cfg.IdleTimeout, DefaultIdleTimeout),
		},
		detector: detector,
	}
}

func newRouter(cfg Config, deps Deps, detector *SuspiciousActivityDetector) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost).
	// Logging goes first so every later layer sees the request logger.
	r.Use(loggingMiddleware)
	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/shop", func(r chi.Router) {
		r.Post("/buy", handler.HandleBuy(deps.Economy))
		r.Post("/sell", handler.HandleSell(deps.Economy))
		r.Get("/gold", handler.HandleGetGold(deps.Gold))
		r.Get("/inventory", handler.HandleGetInventory(deps.Inventory))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server. It returns nil after Stop.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
