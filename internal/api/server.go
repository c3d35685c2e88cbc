package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aishort/showcase-server/internal/http/response"
	"github.com/aishort/showcase-server/internal/ratelimit"
)

// Config holds HTTP server settings that shape routing and middleware.
type Config struct {
	Title         string
	Version       string
	CORSOrigins   []string
	CopyPerSecond float64
	CopyBurst     int
	AuthPerMinute float64
}

// Server is the HTTP API.
type Server struct {
	router   *chi.Mux
	api      huma.API
	services *Services
	logger   *slog.Logger

	copyLimiter *ratelimit.KeyedRateLimiter
	authLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates the router, registers middleware and every route.
func NewServer(services *Services, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Title == "" {
		cfg.Title = "Showcase API"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	authBurst := max(int(cfg.AuthPerMinute), 1)

	s := &Server{
		router:      chi.NewRouter(),
		services:    services,
		logger:      logger,
		copyLimiter: ratelimit.New(cfg.CopyPerSecond, max(cfg.CopyBurst, 1)),
		authLimiter: ratelimit.New(cfg.AuthPerMinute/60, authBurst),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(authMiddleware(services.Auth, logger))

	s.router.NotFound(response.NotFound(logger))
	s.router.MethodNotAllowed(response.MethodNotAllowed(logger))

	RegisterErrorHandler()

	humaConfig := huma.DefaultConfig(cfg.Title, cfg.Version)
	humaConfig.Info.Description = "Prompt showcase: tag and name filtering, favorites, copy counts."
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerPromptRoutes()
	s.registerTagRoutes()
	s.registerCopyCountRoutes()
	s.registerFavoriteRoutes()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background rate limiter sweeps.
func (s *Server) Close() {
	s.copyLimiter.Stop()
	s.authLimiter.Stop()
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
