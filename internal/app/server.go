package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/docreader/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/docreader/internal/api/middlewares"
	"github.com/markdave123-py/docreader/internal/config"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the HTTP server around NewRouter.
func NewServer(cfg *config.Config, docHandler *handlers.DocumentHandler) *Server {
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, docHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{httpServer: httpSrv}
}

const (
	requestTimeout = 60 * time.Second
	uploadTimeout  = 5 * time.Minute
)

// NewRouter builds and wires all routes.
func NewRouter(cfg *config.Config, docHandler *handlers.DocumentHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(cfg.CORSOrigins)))

	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.With(middleware.Timeout(requestTimeout)).Get("/health", docHandler.Health)
		api.With(middleware.Timeout(requestTimeout)).Get("/formats", docHandler.Formats)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWT(cfg.JWTSecret))

			protected.Group(func(short chi.Router) {
				short.Use(middleware.Timeout(requestTimeout))
				short.Post("/documents/extract", docHandler.Extract)
				short.Post("/documents/extract/batch", docHandler.ExtractBatch)

				if docHandler.StorageEnabled() {
					short.Get("/documents", docHandler.GetDocuments)
					short.Get("/documents/{id}", docHandler.GetDocument)
				}
			})

			if docHandler.StorageEnabled() {
				protected.With(middleware.Timeout(uploadTimeout)).Post("/documents/upload", docHandler.UploadDocument)
			}
		})
	})

	return r
}

// corsOptions allows credentials only for an explicit origin list; browsers
// reject credentialed responses to a wildcard origin.
func corsOptions(origins []string) cors.Options {
	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !wildcard,
	}
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
