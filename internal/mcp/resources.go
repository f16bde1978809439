package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) currentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	programs, err := h.ds.ListPrograms(ctx, uid)
	if err != nil {
		return nil, err
	}

	sessions := make([]map[string]any, 0, len(programs))
	for _, p := range programs {
		view, err := h.ds.CurrentSession(ctx, p.ID)
		if err != nil {
			h.log.Warn("current_sessions: lookup failed", "program_id", p.ID, "error", err)
			continue
		}
		entry := map[string]any{
			"program_id":    p.ID,
			"program_title": p.Title,
		}
		if view != nil {
			entry["session"] = view
		} else {
			entry["completed"] = true
		}
		sessions = append(sessions, entry)
	}

	data, err := json.Marshal(sessions)
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

func (h *handlers) programProgress(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	programs, err := h.ds.ListPrograms(ctx, uid)
	if err != nil {
		return nil, err
	}

	progress := make([]map[string]any, 0, len(programs))
	for _, p := range programs {
		state, err := h.ds.GetCompletionState(ctx, p.ID)
		if err != nil {
			h.log.Warn("program_progress: lookup failed", "program_id", p.ID, "error", err)
			continue
		}
		progress = append(progress, map[string]any{
			"program_id":    p.ID,
			"program_title": p.Title,
			"progress":      state,
		})
	}

	data, err := json.Marshal(progress)
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
