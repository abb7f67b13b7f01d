package mcp

import (
	"context"
	"time"

	"github.com/claude/formcoach/internal/models"
	"github.com/claude/formcoach/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List catalog workouts with their exercises, set/rep targets, and rest durations."),
	mcp.WithString("category", mcp.Description("Filter by category"), mcp.Enum("Strength", "Cardio", "Flexibility", "HIIT")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get a single catalog workout by id, including the full exercise prescription."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout id (e.g. '1')")),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Completed and recorded workout sessions, oldest first, with per-set completion detail."),
	mcp.WithString("since", mcp.Description("Only sessions starting on or after this date (YYYY-MM-DD)")),
)

var toolGetDailyProgress = mcp.NewTool("get_daily_progress",
	mcp.WithDescription("Trailing 30-day activity: per-day workout count, active minutes, and estimated calories."),
)

var toolGetWeeklySummary = mcp.NewTool("get_weekly_summary",
	mcp.WithDescription("Current calendar week (Monday start): workout count, active minutes, calories, and goal progress."),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts := h.catalog.List(req.GetString("category", ""))
	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	workout, err := h.catalog.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history, err := h.store.History()
	if err != nil {
		h.log.Error("mcp get_workout_history", "error", err)
		return mcp.NewToolResultError("reading history failed: " + err.Error()), nil
	}

	if sinceStr := req.GetString("since", ""); sinceStr != "" {
		since, err := time.Parse("2006-01-02", sinceStr)
		if err != nil {
			return mcp.NewToolResultError("invalid since date, want YYYY-MM-DD"), nil
		}
		filtered := history[:0]
		for _, sess := range history {
			if !sess.StartTime.Before(since) {
				filtered = append(filtered, sess)
			}
		}
		history = filtered
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDailyProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history, err := h.store.History()
	if err != nil {
		h.log.Error("mcp get_daily_progress", "error", err)
		return mcp.NewToolResultError("reading history failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(stats.Daily(history, time.Now()))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, goals, err := h.weeklyWithGoals()
	if err != nil {
		h.log.Error("mcp get_weekly_summary", "error", err)
		return mcp.NewToolResultError("reading history failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(map[string]any{"summary": summary, "goals": goals})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// weeklyWithGoals computes the current week's summary and goal progress.
func (h *handlers) weeklyWithGoals() (stats.WeeklySummary, []stats.Goal, error) {
	history, err := h.store.History()
	if err != nil {
		return stats.WeeklySummary{}, nil, err
	}
	user, err := h.store.User()
	if err != nil {
		return stats.WeeklySummary{}, nil, err
	}
	var profile *models.UserProfile
	if user != nil {
		profile = user.Profile
	}
	weekly := stats.Weekly(history, time.Now())
	return weekly, stats.Goals(profile, weekly), nil
}
