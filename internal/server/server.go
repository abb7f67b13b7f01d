package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/formcoach/internal/catalog"
	"github.com/claude/formcoach/internal/session"
	"github.com/claude/formcoach/internal/store"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog  *catalog.Catalog
	store    *store.Store
	sessions *session.Manager
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves mutating routes open for local development.
func New(cat *catalog.Catalog, st *store.Store, sessions *session.Manager, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		catalog:  cat,
		store:    st,
		sessions: sessions,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// MountMCP serves the MCP endpoint under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
	s.router.Handle("/mcp/*", h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	// Read-only API
	s.router.Get("/api/v1/workouts", s.handleListWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/progress/daily", s.handleDailyProgress)
	s.router.Get("/api/v1/progress/weekly", s.handleWeeklyProgress)
	s.router.Get("/api/v1/profile", s.handleGetProfile)
	s.router.Get("/api/v1/sessions/current", s.handleCurrentSession)

	// Mutating API (API key required when configured)
	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/api/v1/auth/login", s.handleLogin)
		r.Post("/api/v1/auth/logout", s.handleLogout)
		r.Put("/api/v1/profile", s.handleUpdateProfile)
		r.Post("/api/v1/sessions", s.handleStartSession)
		r.Delete("/api/v1/sessions/current", s.handleAbandonSession)
		r.Post("/api/v1/sessions/current/pause", s.handlePause)
		r.Post("/api/v1/sessions/current/resume", s.handleResume)
		r.Post("/api/v1/sessions/current/complete-set", s.handleCompleteSet)
		r.Post("/api/v1/sessions/current/skip", s.handleSkip)
		r.Post("/api/v1/sessions/current/retry-commit", s.handleRetryCommit)
		r.Post("/api/v1/feedback", s.handleFeedback)
	})
}
