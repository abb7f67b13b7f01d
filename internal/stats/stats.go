// Package stats derives progress views from the workout history. All
// functions are pure: identical history and reference time produce identical
// output, so the dashboard and MCP surfaces can recompute freely.
package stats

import (
	"math"
	"time"

	"github.com/claude/formcoach/internal/models"
)

// WeekStart is the calendar week start used everywhere in the system.
const WeekStart = time.Monday

// DailyWindow is how many trailing days the daily view covers, today included.
const DailyWindow = 30

// caloriesPerMinute is the fixed estimation heuristic. Not physiologically
// modeled; kept until replaced by an explicit model.
const caloriesPerMinute = 8

// DailyBucket is one calendar day of aggregated activity. Duration is whole
// minutes; the JSON names match the original progress feed.
type DailyBucket struct {
	Date     string `json:"date"`
	Workouts int    `json:"workouts"`
	Duration int    `json:"duration"`
	Calories int    `json:"calories"`
}

// WeeklySummary aggregates the current calendar week.
type WeeklySummary struct {
	WeekStart     string `json:"weekStart"`
	WeekEnd       string `json:"weekEnd"`
	Workouts      int    `json:"workouts"`
	ActiveMinutes int    `json:"activeMinutes"`
	Calories      int    `json:"calories"`
}

// Goal is one weekly target with current progress.
type Goal struct {
	Name    string `json:"name"`
	Target  int    `json:"target"`
	Current int    `json:"current"`
	Unit    string `json:"unit"`
}

// dayOf truncates t to its calendar day in now's location. Sessions are
// bucketed by where their start falls on the viewer's calendar.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Daily buckets the trailing 30 days, oldest first and today last. A session
// counts toward the day its start falls on; sessions without an end time
// contribute to the workout count but zero duration.
func Daily(history []models.Session, now time.Time) []DailyBucket {
	loc := now.Location()
	today := dayOf(now, loc)

	type acc struct {
		minutes  float64
		workouts int
	}
	byDay := make(map[string]*acc)
	for i := range history {
		key := dayOf(history[i].StartTime, loc).Format("2006-01-02")
		a := byDay[key]
		if a == nil {
			a = &acc{}
			byDay[key] = a
		}
		a.workouts++
		a.minutes += history[i].DurationMinutes()
	}

	out := make([]DailyBucket, 0, DailyWindow)
	for i := DailyWindow - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		b := DailyBucket{Date: key}
		if a := byDay[key]; a != nil {
			b.Workouts = a.workouts
			b.Duration = int(math.Round(a.minutes))
			b.Calories = int(math.Round(a.minutes * caloriesPerMinute))
		}
		out = append(out, b)
	}
	return out
}

// weekStartOf returns the start of t's calendar week (WeekStart at midnight).
func weekStartOf(t time.Time, loc *time.Location) time.Time {
	day := dayOf(t, loc)
	offset := (int(day.Weekday()) - int(WeekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// Weekly aggregates sessions whose start falls in the current calendar week.
func Weekly(history []models.Session, now time.Time) WeeklySummary {
	loc := now.Location()
	start := weekStartOf(now, loc)
	end := start.AddDate(0, 0, 7)

	var minutes float64
	var workouts int
	for i := range history {
		st := history[i].StartTime.In(loc)
		if st.Before(start) || !st.Before(end) {
			continue
		}
		workouts++
		minutes += history[i].DurationMinutes()
	}
	return WeeklySummary{
		WeekStart:     start.Format("2006-01-02"),
		WeekEnd:       end.AddDate(0, 0, -1).Format("2006-01-02"),
		Workouts:      workouts,
		ActiveMinutes: int(math.Round(minutes)),
		Calories:      int(math.Round(minutes * caloriesPerMinute)),
	}
}

// defaultWorkoutDuration is assumed when the user has no onboarding profile.
const defaultWorkoutDuration = 30

// Goals returns the weekly targets with current progress taken from the
// weekly summary. Active-minute targets scale with the user's preferred
// workout duration.
func Goals(profile *models.UserProfile, weekly WeeklySummary) []Goal {
	duration := defaultWorkoutDuration
	if profile != nil && profile.WorkoutDuration > 0 {
		duration = profile.WorkoutDuration
	}
	return []Goal{
		{Name: "Workouts", Target: 5, Current: weekly.Workouts, Unit: "sessions"},
		{Name: "Active Minutes", Target: duration * 5, Current: weekly.ActiveMinutes, Unit: "minutes"},
		{Name: "Calories Burned", Target: 2000, Current: weekly.Calories, Unit: "kcal"},
	}
}
