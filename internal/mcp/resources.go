package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// recentSessionCount caps how many history entries the overview carries.
const recentSessionCount = 5

func (h *handlers) progressOverview(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	summary, goals, err := h.weeklyWithGoals()
	if err != nil {
		return nil, err
	}

	history, err := h.store.History()
	if err != nil {
		return nil, err
	}
	if len(history) > recentSessionCount {
		history = history[len(history)-recentSessionCount:]
	}

	overview := map[string]any{
		"weekly_summary":  summary,
		"weekly_goals":    goals,
		"recent_sessions": history,
	}

	data, err := json.Marshal(overview)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
