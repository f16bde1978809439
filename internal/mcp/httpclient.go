package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/schedule"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the CoachPlan REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is sent on mutating requests only.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	return c.do(req, path)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	return c.do(req, path)
}

func (c *HTTPClient) do(req *http.Request, path string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func programPath(programID uuid.UUID, suffix string) string {
	return "/api/v1/programs/" + programID.String() + suffix
}

func (c *HTTPClient) ListPrograms(ctx context.Context, _ int) ([]models.Program, error) {
	body, err := c.get(ctx, "/api/v1/programs", nil)
	if err != nil {
		return nil, err
	}

	var programs []models.Program
	if err := json.Unmarshal(body, &programs); err != nil {
		return nil, fmt.Errorf("httpclient: decode programs: %w", err)
	}
	return programs, nil
}

func (c *HTTPClient) WeekSchedule(ctx context.Context, programID uuid.UUID, week int) ([]schedule.SessionView, error) {
	body, err := c.get(ctx, programPath(programID, fmt.Sprintf("/weeks/%d", week)), nil)
	if err != nil {
		return nil, err
	}

	var views []schedule.SessionView
	if err := json.Unmarshal(body, &views); err != nil {
		return nil, fmt.Errorf("httpclient: decode week schedule: %w", err)
	}
	return views, nil
}

func (c *HTTPClient) CurrentSession(ctx context.Context, programID uuid.UUID) (*schedule.ScheduledWorkoutView, error) {
	body, err := c.get(ctx, programPath(programID, "/current"), nil)
	if err != nil {
		return nil, err
	}

	var view *schedule.ScheduledWorkoutView
	if err := json.Unmarshal(body, &view); err != nil {
		return nil, fmt.Errorf("httpclient: decode current session: %w", err)
	}
	return view, nil
}

func (c *HTTPClient) GetCompletionState(ctx context.Context, programID uuid.UUID) (*schedule.CompletionState, error) {
	body, err := c.get(ctx, programPath(programID, "/progress"), nil)
	if err != nil {
		return nil, err
	}

	var state schedule.CompletionState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("httpclient: decode progress: %w", err)
	}
	return &state, nil
}

func (c *HTTPClient) Calendar(ctx context.Context, programID uuid.UUID, from, to models.Date) ([]schedule.ScheduledWorkoutView, error) {
	params := url.Values{}
	params.Set("start", from.String())
	params.Set("end", to.String())

	body, err := c.get(ctx, programPath(programID, "/calendar"), params)
	if err != nil {
		return nil, err
	}

	var views []schedule.ScheduledWorkoutView
	if err := json.Unmarshal(body, &views); err != nil {
		return nil, fmt.Errorf("httpclient: decode calendar: %w", err)
	}
	return views, nil
}

func (c *HTTPClient) History(ctx context.Context, programID uuid.UUID, limit int) ([]models.WorkoutHistoryEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	body, err := c.get(ctx, programPath(programID, "/history"), params)
	if err != nil {
		return nil, err
	}

	var entries []models.WorkoutHistoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("httpclient: decode history: %w", err)
	}
	return entries, nil
}

func (c *HTTPClient) CompleteSession(ctx context.Context, programID uuid.UUID, week, day, durationSeconds int) (uuid.UUID, error) {
	path := programPath(programID, fmt.Sprintf("/sessions/%d/%d/complete", week, day))
	body, err := c.send(ctx, http.MethodPost, path, map[string]int{"duration_seconds": durationSeconds})
	if err != nil {
		return uuid.Nil, err
	}

	var resp struct {
		HistoryID string `json:"history_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("httpclient: decode completion: %w", err)
	}
	return uuid.Parse(resp.HistoryID)
}

func (c *HTTPClient) LogRestDay(ctx context.Context, programID uuid.UUID, week, day int, feeling string, activities []string, note string) (uuid.UUID, error) {
	path := programPath(programID, fmt.Sprintf("/rest-days/%d/%d", week, day))
	payload := map[string]any{
		"feeling":    feeling,
		"activities": activities,
		"note":       note,
	}
	body, err := c.send(ctx, http.MethodPut, path, payload)
	if err != nil {
		return uuid.Nil, err
	}

	var resp struct {
		LogID string `json:"log_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("httpclient: decode rest day log: %w", err)
	}
	return uuid.Parse(resp.LogID)
}

func (c *HTTPClient) RestDayLogs(ctx context.Context, programID uuid.UUID) ([]models.RestDayLog, error) {
	body, err := c.get(ctx, programPath(programID, "/rest-days"), nil)
	if err != nil {
		return nil, err
	}

	var logs []models.RestDayLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("httpclient: decode rest day logs: %w", err)
	}
	return logs, nil
}
