package offline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client sends queued entries to the CoachPlan server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the CoachPlan server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Send replays one queued entry against the REST API. Retries up to 3 times
// with exponential backoff on failure.
func (c *Client) Send(e Entry) error {
	var method, path string
	var payload any

	switch e.Kind {
	case KindCompletion:
		method = http.MethodPost
		path = fmt.Sprintf("/api/v1/programs/%s/sessions/%d/%d/complete", e.ProgramID, e.Week, e.Day)
		payload = map[string]int{"duration_seconds": e.DurationSeconds}
	case KindRestDay:
		method = http.MethodPut
		path = fmt.Sprintf("/api/v1/programs/%s/rest-days/%d/%d", e.ProgramID, e.Week, e.Day)
		payload = map[string]string{"feeling": e.Feeling, "note": e.Note}
	default:
		return fmt.Errorf("unknown entry kind %q", e.Kind)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(method, c.serverURL+path, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return nil
		}
		lastErr = fmt.Errorf("sync failed (status %d): %s", resp.StatusCode, body)

		// 4xx means the entry itself is bad; retrying will not help.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			break
		}
	}

	return fmt.Errorf("after retries: %w", lastErr)
}
