package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/formcoach/internal/catalog"
	"github.com/claude/formcoach/internal/models"
	"github.com/claude/formcoach/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

func testHandlers(t *testing.T) (*handlers, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryKV())
	return &handlers{
		catalog: catalog.New(),
		store:   st,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, st
}

func seedSession(t *testing.T, st *store.Store, start time.Time, minutes int) {
	t.Helper()
	end := start.Add(time.Duration(minutes) * time.Minute)
	if err := st.AppendSession(models.Session{
		ID: "s-" + start.Format("150405"), WorkoutID: "1",
		StartTime: start, EndTime: &end, Completed: true,
	}); err != nil {
		t.Fatal(err)
	}
}

func textContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error result: %+v", res.Content)
	}
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content in tool result")
	return ""
}

// TestListWorkoutsTool verifies the catalog listing tool returns all
// built-in workouts as JSON.
func TestListWorkoutsTool(t *testing.T) {
	h, _ := testHandlers(t)

	res, err := h.listWorkouts(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	var workouts []catalog.Workout
	if err := json.Unmarshal([]byte(textContent(t, res)), &workouts); err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 3 {
		t.Errorf("workouts = %d, want 3", len(workouts))
	}
}

// TestGetWorkoutTool verifies required-parameter handling and unknown-id
// errors come back as tool errors, not transport failures.
func TestGetWorkoutTool(t *testing.T) {
	h, _ := testHandlers(t)

	res, err := h.getWorkout(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected error result for missing id")
	}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"id": "unknown"}
	res, err = h.getWorkout(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected error result for unknown workout id")
	}
}

// TestWeeklySummaryTool verifies the weekly tool aggregates seeded history
// and includes goal progress.
func TestWeeklySummaryTool(t *testing.T) {
	h, st := testHandlers(t)
	seedSession(t, st, time.Now().Add(-1*time.Hour), 30)

	res, err := h.getWeeklySummary(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	var payload struct {
		Summary struct {
			Workouts      int `json:"workouts"`
			ActiveMinutes int `json:"activeMinutes"`
		} `json:"summary"`
		Goals []struct {
			Name string `json:"name"`
		} `json:"goals"`
	}
	if err := json.Unmarshal([]byte(textContent(t, res)), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Summary.Workouts != 1 || payload.Summary.ActiveMinutes != 30 {
		t.Errorf("summary = %+v, want 1 workout / 30 minutes", payload.Summary)
	}
	if len(payload.Goals) != 3 {
		t.Errorf("goals = %d, want 3", len(payload.Goals))
	}
}

// TestProgressOverviewResource verifies the resource bundles the weekly
// summary with the most recent sessions.
func TestProgressOverviewResource(t *testing.T) {
	h, st := testHandlers(t)
	for i := 0; i < 7; i++ {
		seedSession(t, st, time.Now().Add(-time.Duration(i+1)*time.Hour), 10)
	}

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "formcoach://progress_overview"
	contents, err := h.progressOverview(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatal("expected text resource contents")
	}
	var overview struct {
		RecentSessions []models.Session `json:"recent_sessions"`
	}
	if err := json.Unmarshal([]byte(text.Text), &overview); err != nil {
		t.Fatal(err)
	}
	if len(overview.RecentSessions) != recentSessionCount {
		t.Errorf("recent sessions = %d, want capped at %d", len(overview.RecentSessions), recentSessionCount)
	}
}
