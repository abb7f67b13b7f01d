// Package store owns the persisted application state: the signed-in user and
// the append-only workout history, stored as a single JSON document under a
// namespaced key. The document shape (field names, flat session array) is a
// compatibility contract with previously persisted data.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/claude/formcoach/internal/models"
)

// StateKey is the namespaced key the whole application state lives under.
const StateKey = "fitness-store"

// Store is the typed state layer over a KV backend. All mutations are
// serialized: history appends preserve arrival order and never interleave.
type Store struct {
	mu   sync.Mutex
	kv   KV
	subs []func()
}

// New returns a Store over the given backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Subscribe registers fn to run after every successful state mutation.
// The returned cancel func removes the subscription.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs[idx] = nil
	}
}

// load reads and decodes the state document. A missing key yields the empty
// state. Callers must hold s.mu.
func (s *Store) load() (*models.AppState, error) {
	data, err := s.kv.Get(StateKey)
	if err == ErrNotFound {
		return &models.AppState{WorkoutHistory: []models.Session{}}, nil
	}
	if err != nil {
		return nil, err
	}
	state := &models.AppState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decoding persisted state: %w", err)
	}
	if state.WorkoutHistory == nil {
		state.WorkoutHistory = []models.Session{}
	}
	return state, nil
}

// save encodes and persists the state document, then notifies subscribers.
// Callers must hold s.mu.
func (s *Store) save(state *models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := s.kv.Set(StateKey, data); err != nil {
		return err
	}
	for _, fn := range s.subs {
		if fn != nil {
			fn()
		}
	}
	return nil
}

// AppendSession appends a closed session to the workout history. Prior
// entries are never modified. Errors surface to the caller so the completion
// flow can retry; the in-memory session is not lost.
func (s *Store) AppendSession(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return err
	}
	state.WorkoutHistory = append(state.WorkoutHistory, sess.Clone())
	return s.save(state)
}

// History returns a snapshot copy of the workout history, oldest first.
func (s *Store) History() ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.Session, len(state.WorkoutHistory))
	for i := range state.WorkoutHistory {
		out[i] = state.WorkoutHistory[i].Clone()
	}
	return out, nil
}

// User returns the signed-in user, or nil when nobody is signed in.
func (s *Store) User() (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return nil, err
	}
	return state.User, nil
}

// SetUser stores the signed-in user. Passing nil signs out.
func (s *Store) SetUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return err
	}
	state.User = u
	return s.save(state)
}

// UpdateProfile replaces the signed-in user's profile, stamping LastUpdated.
// Fails when nobody is signed in.
func (s *Store) UpdateProfile(p models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return err
	}
	if state.User == nil {
		return fmt.Errorf("no signed-in user")
	}
	p.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	state.User.Profile = &p
	return s.save(state)
}
