package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/fitscribe/internal/exercises"
	"github.com/claude/fitscribe/internal/ingest/ocrtext"
	"github.com/claude/fitscribe/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	ocr    *ocrtext.Provider
	lookup exercises.Lookup
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, ocrProvider *ocrtext.Provider, lookup exercises.Lookup, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		ocr:    ocrProvider,
		lookup: lookup,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/ingest", s.handleIngest)
		r.Post("/api/v1/export", s.handleExport)
	})

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/workouts", s.handleListWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/workouts/{id}/fit", s.handleWorkoutFIT)
	s.router.Get("/api/v1/exports", s.handleListExports)
}
