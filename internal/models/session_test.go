package models

import (
	"testing"
	"time"
)

// TestCloneIsolation verifies that mutating a clone never touches the
// original session, including nested set slices and the end time pointer.
func TestCloneIsolation(t *testing.T) {
	end := time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)
	orig := Session{
		ID:        "s1",
		WorkoutID: "1",
		StartTime: end.Add(-30 * time.Minute),
		EndTime:   &end,
		Completed: true,
		Exercises: []ExerciseProgress{
			{ExerciseID: "e1", Completed: true, Sets: []SetProgress{
				{SetNumber: 1, Completed: true, Reps: 10},
				{SetNumber: 2, Completed: true, Reps: 10},
			}},
		},
	}

	cl := orig.Clone()
	cl.Exercises[0].Sets[0].Completed = false
	cl.Exercises[0].Completed = false
	*cl.EndTime = cl.EndTime.Add(time.Hour)

	if !orig.Exercises[0].Sets[0].Completed {
		t.Error("clone mutation leaked into original set progress")
	}
	if !orig.Exercises[0].Completed {
		t.Error("clone mutation leaked into original exercise progress")
	}
	if !orig.EndTime.Equal(end) {
		t.Errorf("clone mutation leaked into original end time: %v", orig.EndTime)
	}
}

// TestDurationMinutes verifies duration math and the open-session zero case.
func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	s := Session{StartTime: start, EndTime: &end}
	if got := s.DurationMinutes(); got != 45 {
		t.Errorf("DurationMinutes = %v, want 45", got)
	}

	open := Session{StartTime: start}
	if got := open.DurationMinutes(); got != 0 {
		t.Errorf("open session DurationMinutes = %v, want 0", got)
	}
}
