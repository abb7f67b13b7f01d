package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/claude/formcoach/internal/models"
)

func sessionAt(start time.Time, minutes int) models.Session {
	s := models.Session{
		ID:        "s-" + start.Format("20060102T1504"),
		WorkoutID: "1",
		StartTime: start,
		Completed: true,
	}
	if minutes >= 0 {
		end := start.Add(time.Duration(minutes) * time.Minute)
		s.EndTime = &end
	}
	return s
}

// TestDailySingleSession is the reference scenario: one 20-minute session
// exactly 3 days ago yields {20 min, 160 kcal, 1 workout} in its bucket and
// zeros everywhere else.
func TestDailySingleSession(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	threeDaysAgo := now.AddDate(0, 0, -3)
	history := []models.Session{sessionAt(threeDaysAgo, 20)}

	buckets := Daily(history, now)
	if len(buckets) != DailyWindow {
		t.Fatalf("bucket count = %d, want %d", len(buckets), DailyWindow)
	}
	if buckets[len(buckets)-1].Date != "2026-03-15" {
		t.Errorf("last bucket = %s, want today", buckets[len(buckets)-1].Date)
	}

	wantDate := "2026-03-12"
	for _, b := range buckets {
		if b.Date == wantDate {
			if b.Duration != 20 || b.Calories != 160 || b.Workouts != 1 {
				t.Errorf("bucket %s = %+v, want 20 min, 160 kcal, 1 workout", wantDate, b)
			}
			continue
		}
		if b.Duration != 0 || b.Calories != 0 || b.Workouts != 0 {
			t.Errorf("bucket %s = %+v, want all zero", b.Date, b)
		}
	}
}

// TestDailyDeterminism verifies two invocations with identical inputs return
// identical output.
func TestDailyDeterminism(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	history := []models.Session{
		sessionAt(now.AddDate(0, 0, -1), 30),
		sessionAt(now.AddDate(0, 0, -1).Add(2*time.Hour), 15),
		sessionAt(now.AddDate(0, 0, -10), 45),
	}
	a := Daily(history, now)
	b := Daily(history, now)
	if !reflect.DeepEqual(a, b) {
		t.Error("Daily is not deterministic for fixed inputs")
	}
}

// TestDailyUnterminatedSession verifies a session without an end time counts
// as a workout but contributes zero duration and calories.
func TestDailyUnterminatedSession(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	history := []models.Session{sessionAt(now.Add(-2*time.Hour), -1)}

	buckets := Daily(history, now)
	today := buckets[len(buckets)-1]
	if today.Workouts != 1 {
		t.Errorf("workouts = %d, want 1", today.Workouts)
	}
	if today.Duration != 0 || today.Calories != 0 {
		t.Errorf("unterminated session contributed duration=%d calories=%d, want 0", today.Duration, today.Calories)
	}
}

// TestDailyMultipleSessionsSameDay verifies per-day totals sum across
// sessions before the calorie estimate is rounded.
func TestDailyMultipleSessionsSameDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)
	day := now.AddDate(0, 0, -2)
	history := []models.Session{
		sessionAt(day, 10),
		sessionAt(day.Add(3*time.Hour), 25),
	}
	buckets := Daily(history, now)
	for _, b := range buckets {
		if b.Date == "2026-03-13" {
			if b.Workouts != 2 || b.Duration != 35 || b.Calories != 280 {
				t.Errorf("bucket = %+v, want 2 workouts, 35 min, 280 kcal", b)
			}
			return
		}
	}
	t.Fatal("expected bucket for 2026-03-13 not found")
}

// TestDailyOldSessionsExcluded verifies sessions older than the window do
// not appear in any bucket.
func TestDailyOldSessionsExcluded(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	history := []models.Session{sessionAt(now.AddDate(0, 0, -45), 60)}
	for _, b := range Daily(history, now) {
		if b.Workouts != 0 {
			t.Errorf("bucket %s counted a session outside the window", b.Date)
		}
	}
}

// TestWeeklyBounds verifies the week runs Monday through Sunday and only
// sessions starting inside it are counted.
func TestWeeklyBounds(t *testing.T) {
	// 2026-03-11 is a Wednesday; its week is Mon 03-09 .. Sun 03-15.
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	history := []models.Session{
		sessionAt(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 30),   // Monday start, in
		sessionAt(time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), 20), // Sunday night, in
		sessionAt(time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC), 60),  // prior Sunday, out
		sessionAt(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), 60),  // next Monday, out
	}

	w := Weekly(history, now)
	if w.WeekStart != "2026-03-09" || w.WeekEnd != "2026-03-15" {
		t.Errorf("week = %s..%s, want 2026-03-09..2026-03-15", w.WeekStart, w.WeekEnd)
	}
	if w.Workouts != 2 {
		t.Errorf("workouts = %d, want 2", w.Workouts)
	}
	if w.ActiveMinutes != 50 {
		t.Errorf("active minutes = %d, want 50", w.ActiveMinutes)
	}
	if w.Calories != 400 {
		t.Errorf("calories = %d, want 400", w.Calories)
	}
}

// TestWeeklyOnMonday verifies a reference time on the week-start day anchors
// the week at that same day.
func TestWeeklyOnMonday(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC) // Monday morning
	w := Weekly(nil, now)
	if w.WeekStart != "2026-03-09" {
		t.Errorf("week start = %s, want 2026-03-09", w.WeekStart)
	}
}

// TestGoals verifies targets scale with the profile's preferred workout
// duration and current values come from the weekly summary.
func TestGoals(t *testing.T) {
	weekly := WeeklySummary{Workouts: 3, ActiveMinutes: 90, Calories: 720}

	goals := Goals(&models.UserProfile{WorkoutDuration: 45}, weekly)
	if len(goals) != 3 {
		t.Fatalf("goal count = %d, want 3", len(goals))
	}
	if goals[0].Target != 5 || goals[0].Current != 3 {
		t.Errorf("workouts goal = %+v", goals[0])
	}
	if goals[1].Target != 225 || goals[1].Current != 90 {
		t.Errorf("active minutes goal = %+v, want target 225", goals[1])
	}
	if goals[2].Target != 2000 || goals[2].Current != 720 {
		t.Errorf("calories goal = %+v", goals[2])
	}

	// No profile falls back to the 30-minute default.
	goals = Goals(nil, weekly)
	if goals[1].Target != 150 {
		t.Errorf("default active minutes target = %d, want 150", goals[1].Target)
	}
}
