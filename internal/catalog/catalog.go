package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNotFound marks lookups of ids absent from the catalog.
var ErrNotFound = errors.New("not found in catalog")

// Workout categories.
const (
	CategoryStrength    = "Strength"
	CategoryCardio      = "Cardio"
	CategoryFlexibility = "Flexibility"
	CategoryHIIT        = "HIIT"
)

// Workout difficulty levels.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Exercise is a single movement with prescribed sets, reps, and the rest
// duration (seconds) that gates set completion during a session.
type Exercise struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Sets     int    `json:"sets" yaml:"sets"`
	Reps     int    `json:"reps" yaml:"reps"`
	RestTime int    `json:"restTime" yaml:"rest_time"`
	Image    string `json:"image" yaml:"image"`
}

// Workout is an immutable catalog template: an ordered list of exercises
// plus presentation metadata. Duration is the nominal length in minutes.
type Workout struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Category    string     `json:"category" yaml:"category"`
	Difficulty  string     `json:"difficulty" yaml:"difficulty"`
	Duration    int        `json:"duration" yaml:"duration"`
	Image       string     `json:"image" yaml:"image"`
	Exercises   []Exercise `json:"exercises" yaml:"exercises"`
}

// Catalog is the read-only workout registry. Built-in workouts are always
// present; extra workouts may be loaded from a YAML file at startup.
type Catalog struct {
	workouts []Workout
	byID     map[string]int
}

// New returns a catalog containing the built-in workouts.
func New() *Catalog {
	c := &Catalog{byID: make(map[string]int)}
	for _, w := range builtinWorkouts {
		c.byID[w.ID] = len(c.workouts)
		c.workouts = append(c.workouts, w)
	}
	return c
}

// LoadFile adds workouts from a YAML file on top of the built-ins.
// Duplicate or invalid entries fail the load; the catalog is unchanged on error.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog file: %w", err)
	}

	var doc struct {
		Workouts []Workout `yaml:"workouts"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing catalog file: %w", err)
	}

	incoming := make(map[string]bool)
	for _, w := range doc.Workouts {
		if err := validateWorkout(w); err != nil {
			return fmt.Errorf("workout %q: %w", w.ID, err)
		}
		if _, exists := c.byID[w.ID]; exists || incoming[w.ID] {
			return fmt.Errorf("workout %q: duplicate id", w.ID)
		}
		incoming[w.ID] = true
	}
	for _, w := range doc.Workouts {
		c.byID[w.ID] = len(c.workouts)
		c.workouts = append(c.workouts, w)
	}
	return nil
}

func validateWorkout(w Workout) error {
	if w.ID == "" {
		return fmt.Errorf("missing id")
	}
	if w.Name == "" {
		return fmt.Errorf("missing name")
	}
	switch w.Category {
	case CategoryStrength, CategoryCardio, CategoryFlexibility, CategoryHIIT:
	default:
		return fmt.Errorf("unknown category %q", w.Category)
	}
	switch w.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return fmt.Errorf("unknown difficulty %q", w.Difficulty)
	}
	if len(w.Exercises) == 0 {
		return fmt.Errorf("no exercises")
	}
	seen := make(map[string]bool)
	for _, e := range w.Exercises {
		if e.ID == "" {
			return fmt.Errorf("exercise with missing id")
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate exercise id %q", e.ID)
		}
		seen[e.ID] = true
		if e.Sets < 1 || e.Reps < 1 {
			return fmt.Errorf("exercise %q: sets and reps must be >= 1", e.ID)
		}
		if e.RestTime < 0 {
			return fmt.Errorf("exercise %q: rest time must not be negative", e.ID)
		}
	}
	return nil
}

// List returns all workouts, optionally filtered by category. Empty category
// (or "All") returns everything.
func (c *Catalog) List(category string) []Workout {
	if category == "" || category == "All" {
		return append([]Workout(nil), c.workouts...)
	}
	var out []Workout
	for _, w := range c.workouts {
		if w.Category == category {
			out = append(out, w)
		}
	}
	return out
}

// Get returns the workout with the given id.
func (c *Catalog) Get(id string) (*Workout, error) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("workout %q: %w", id, ErrNotFound)
	}
	w := c.workouts[idx]
	return &w, nil
}

// Exercise returns the exercise with the given id within a workout.
func (w *Workout) Exercise(id string) (*Exercise, error) {
	for i := range w.Exercises {
		if w.Exercises[i].ID == id {
			return &w.Exercises[i], nil
		}
	}
	return nil, fmt.Errorf("exercise %q in workout %q: %w", id, w.ID, ErrNotFound)
}
