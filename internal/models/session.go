package models

import "time"

// Session is one timed execution of a catalog workout. It is mutable while
// the session engine drives it and immutable once closed; the JSON field
// names are the durable persistence contract and must not change, or
// previously persisted history becomes unreadable.
type Session struct {
	ID        string             `json:"id"`
	WorkoutID string             `json:"workoutId"`
	StartTime time.Time          `json:"startTime"`
	EndTime   *time.Time         `json:"endTime,omitempty"`
	Completed bool               `json:"completed"`
	Exercises []ExerciseProgress `json:"exercises"`
}

// ExerciseProgress tracks per-set completion for one exercise of a session.
type ExerciseProgress struct {
	ExerciseID string        `json:"exerciseId"`
	Completed  bool          `json:"completed"`
	Sets       []SetProgress `json:"sets"`
}

// SetProgress is a single prescribed set. Reps is copied from the catalog at
// session creation so later catalog edits never alter an in-flight session.
type SetProgress struct {
	SetNumber int  `json:"setNumber"`
	Completed bool `json:"completed"`
	Reps      int  `json:"reps"`
}

// DurationMinutes returns the session length in whole minutes, or 0 for a
// session without an end time.
func (s *Session) DurationMinutes() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Minutes()
}

// Clone returns a deep copy of the session. History reads hand out clones so
// callers can never mutate appended records.
func (s *Session) Clone() Session {
	out := *s
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	out.Exercises = make([]ExerciseProgress, len(s.Exercises))
	for i, ex := range s.Exercises {
		cp := ex
		cp.Sets = append([]SetProgress(nil), ex.Sets...)
		out.Exercises[i] = cp
	}
	return out
}

// User is the authenticated account, including the optional onboarding
// profile. Field names match the persisted state contract.
type User struct {
	ID      string       `json:"id"`
	Email   string       `json:"email"`
	Name    string       `json:"name"`
	Profile *UserProfile `json:"profile,omitempty"`
}

// UserProfile holds onboarding answers used for goal targets.
type UserProfile struct {
	Age                  int      `json:"age"`
	Weight               float64  `json:"weight"`
	Height               float64  `json:"height"`
	Gender               string   `json:"gender"`
	FitnessGoal          string   `json:"fitnessGoal"`
	ActivityLevel        string   `json:"activityLevel"`
	MedicalConditions    []string `json:"medicalConditions"`
	PreferredWorkoutTime string   `json:"preferredWorkoutTime"`
	WorkoutDuration      int      `json:"workoutDuration"`
	LastUpdated          string   `json:"lastUpdated"`
}

// AppState is the full persisted document stored under the namespaced state
// key: the signed-in user (or null) plus the flat append-only session log.
type AppState struct {
	User           *User     `json:"user"`
	WorkoutHistory []Session `json:"workoutHistory"`
}
