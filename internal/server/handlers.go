package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/claude/formcoach/internal/catalog"
	"github.com/claude/formcoach/internal/feedback"
	"github.com/claude/formcoach/internal/models"
	"github.com/claude/formcoach/internal/session"
	"github.com/claude/formcoach/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	writeJSON(w, http.StatusOK, s.catalog.List(category))
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	workout, err := s.catalog.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkoutID string `json:"workoutId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.WorkoutID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "workoutId is required"})
		return
	}

	snap, err := s.sessions.Start(req.WorkoutID)
	switch {
	case errors.Is(err, session.ErrSessionActive):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a session is already active"})
		return
	case errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	case err != nil:
		s.log.Error("start session error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sessions.Current()
	if errors.Is(err, session.ErrNoActiveSession) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleControl runs a session control action and responds with the updated
// snapshot. Persistence failures surface as 500 with the session retained
// in memory so the client can retry the commit.
func (s *Server) handleControl(w http.ResponseWriter, action func() error) {
	err := action()
	if errors.Is(err, session.ErrNoActiveSession) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	if err != nil {
		s.log.Error("session commit error", "error", err)
		snap, _ := s.sessions.Current()
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   err.Error(),
			"session": snap,
		})
		return
	}
	snap, err := s.sessions.Current()
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, s.sessions.Pause)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, s.sessions.Resume)
}

func (s *Server) handleCompleteSet(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, s.sessions.CompleteSet)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, s.sessions.Skip)
}

func (s *Server) handleRetryCommit(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, s.sessions.RetryCommit)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.Abandon()
	if errors.Is(err, session.ErrNoActiveSession) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, feedback.Evaluate(req.Score))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.History()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleDailyProgress(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.History()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats.Daily(history, time.Now()))
}

func (s *Server) handleWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.History()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	user, err := s.store.User()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	var profile *models.UserProfile
	if user != nil {
		profile = user.Profile
	}
	weekly := stats.Weekly(history, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": weekly,
		"goals":   stats.Goals(profile, weekly),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a valid email is required"})
		return
	}

	user := &models.User{
		ID:    uuid.NewString(),
		Email: req.Email,
		Name:  strings.SplitN(req.Email, "@", 2)[0],
	}
	// Signing back in keeps the stored profile for the same account.
	if prev, err := s.store.User(); err == nil && prev != nil && prev.Email == req.Email {
		user.ID = prev.ID
		user.Profile = prev.Profile
	}
	if err := s.store.SetUser(user); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.SetUser(nil); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.User()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not signed in"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.store.UpdateProfile(profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	user, err := s.store.User()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
