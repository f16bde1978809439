package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/schedule"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client sends correct paths and
// query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListPrograms verifies the program list endpoint parsing.
func TestListPrograms(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.Program{
				{ID: id, Title: "Push Pull Legs"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	programs, err := client.ListPrograms(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(programs) != 1 {
		t.Fatalf("got %d programs, want 1", len(programs))
	}
	if programs[0].Title != "Push Pull Legs" {
		t.Errorf("title = %q, want %q", programs[0].Title, "Push Pull Legs")
	}
}

// TestWeekSchedule verifies week path construction and response parsing.
func TestWeekSchedule(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs/" + id.String() + "/weeks/2": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []schedule.SessionView{
				{Week: 2, DayNumber: 1, Name: "Push"},
				{Week: 2, DayNumber: 2, Name: "Pull"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	views, err := client.WeekSchedule(context.Background(), id, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	if views[0].Name != "Push" {
		t.Errorf("name = %q, want Push", views[0].Name)
	}
}

// TestCurrentSessionNull verifies a JSON null response maps to a nil view.
func TestCurrentSessionNull(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs/" + id.String() + "/current": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("null"))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	view, err := client.CurrentSession(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if view != nil {
		t.Errorf("view = %+v, want nil for completed program", view)
	}
}

// TestGetCompletionState verifies the progress endpoint parsing.
func TestGetCompletionState(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs/" + id.String() + "/progress": func(w http.ResponseWriter, r *http.Request) {
			keys := models.NewKeySet()
			keys.Add("1-1")
			writeTestJSON(t, w, schedule.CompletionState{
				CompletedKeys: keys,
				Percentage:    0.125,
				Status:        models.StatusInProgress,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	state, err := client.GetCompletionState(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if state.Percentage != 0.125 {
		t.Errorf("percentage = %v, want 0.125", state.Percentage)
	}
	if !state.CompletedKeys.Contains("1-1") {
		t.Error("completed keys missing 1-1")
	}
}

// TestCalendarParams verifies the calendar window is sent as query params.
func TestCalendarParams(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs/" + id.String() + "/calendar": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("start"); got != "2024-01-01" {
				t.Errorf("start=%q, want 2024-01-01", got)
			}
			if got := r.URL.Query().Get("end"); got != "2024-01-14" {
				t.Errorf("end=%q, want 2024-01-14", got)
			}
			writeTestJSON(t, w, []schedule.ScheduledWorkoutView{})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	from, _ := models.ParseDate("2024-01-01")
	to, _ := models.ParseDate("2024-01-14")
	if _, err := client.Calendar(context.Background(), id, from, to); err != nil {
		t.Fatal(err)
	}
}

// TestCompleteSession verifies the mutation sends the API key and body and
// parses the returned history ID.
func TestCompleteSession(t *testing.T) {
	id := uuid.New()
	historyID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs/" + id.String() + "/sessions/1/2/complete": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if got := r.Header.Get("X-API-Key"); got != "secret" {
				t.Errorf("api key = %q, want secret", got)
			}
			var body struct {
				DurationSeconds int `json:"duration_seconds"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.DurationSeconds != 2700 {
				t.Errorf("duration = %d, want 2700", body.DurationSeconds)
			}
			writeTestJSON(t, w, map[string]string{"history_id": historyID.String()})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "secret")
	got, err := client.CompleteSession(context.Background(), id, 1, 2, 2700)
	if err != nil {
		t.Fatal(err)
	}
	if got != historyID {
		t.Errorf("history id = %s, want %s", got, historyID)
	}
}

// TestLogRestDay verifies the rest day PUT payload and response parsing.
func TestLogRestDay(t *testing.T) {
	id := uuid.New()
	logID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs/" + id.String() + "/rest-days/2/3": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("method = %s, want PUT", r.Method)
			}
			var body struct {
				Feeling string `json:"feeling"`
				Note    string `json:"note"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Feeling != "recovered" {
				t.Errorf("feeling = %q, want recovered", body.Feeling)
			}
			writeTestJSON(t, w, map[string]string{"log_id": logID.String()})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "secret")
	got, err := client.LogRestDay(context.Background(), id, 2, 3, "recovered", nil, "felt good")
	if err != nil {
		t.Fatal(err)
	}
	if got != logID {
		t.Errorf("log id = %s, want %s", got, logID)
	}
}

// TestErrorStatus verifies non-2xx responses surface as errors.
func TestErrorStatus(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs/" + id.String() + "/progress": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"program not found"}`, http.StatusNotFound)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	if _, err := client.GetCompletionState(context.Background(), id); err == nil {
		t.Error("expected error for 404 response")
	}
}
