// Package server exposes the archive over a local HTTP JSON API. It is
// meant to sit behind a browser UI on the same machine, so CORS is open
// for localhost origins and there is no authentication.
package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Server struct {
	db     *sql.DB
	addr   string
	logger *zap.Logger
}

func New(db *sql.DB, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{db: db, addr: addr, logger: logger}
}

// Handler assembles the router. Separate from Start so tests can mount it
// on an httptest server.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", s.handleListEntries)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetEntry)
				r.Patch("/", s.handleUpdateEntry)
				r.Delete("/", s.handleDeleteEntry)
				r.Post("/swipe", s.handleSwipeEntry)
				r.Post("/tags", s.handleAttachTag)
				r.Delete("/tags/{name}", s.handleDetachTag)
			})
		})
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags)
			r.Post("/", s.handleCreateTag)
			r.Delete("/{name}", s.handleDeleteTag)
		})
		r.Get("/queue", s.handleQueue)
		r.Get("/stats", s.handleStats)
	})

	return router
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("HTTP server listening", zap.String("addr", s.addr))
	return srv.ListenAndServe()
}
