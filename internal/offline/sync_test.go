package offline

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	q, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { q.Close() })
	return q
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSyncerDrains verifies that successfully sent entries are removed from
// the queue and counted.
func TestSyncerDrains(t *testing.T) {
	var gotPaths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("api key = %q, want secret", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	q := newTestQueue(t)
	if _, err := q.Enqueue(Entry{Kind: KindCompletion, ProgramID: "p1", Week: 1, Day: 2, DurationSeconds: 1800}); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Enqueue(Entry{Kind: KindRestDay, ProgramID: "p1", Week: 1, Day: 3, Feeling: "sore"}); err != nil {
		t.Fatal(err)
	}

	syncer := NewSyncer(NewClient(ts.URL, "secret"), q, false, discardLogger())
	stats, err := syncer.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sent != 2 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want 2 sent / 0 failed", stats)
	}

	wantPaths := []string{
		"POST /api/v1/programs/p1/sessions/1/2/complete",
		"PUT /api/v1/programs/p1/rest-days/1/3",
	}
	if len(gotPaths) != len(wantPaths) {
		t.Fatalf("got %d requests, want %d", len(gotPaths), len(wantPaths))
	}
	for i, want := range wantPaths {
		if gotPaths[i] != want {
			t.Errorf("request %d = %q, want %q", i, gotPaths[i], want)
		}
	}

	pending, err := q.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("queue still holds %d entries, want 0", len(pending))
	}
}

// TestSyncerKeepsFailedEntries verifies that a rejected entry stays queued.
func TestSyncerKeepsFailedEntries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"schedule not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	q := newTestQueue(t)
	if _, err := q.Enqueue(Entry{Kind: KindCompletion, ProgramID: "gone", Week: 1, Day: 1}); err != nil {
		t.Fatal(err)
	}

	syncer := NewSyncer(NewClient(ts.URL, "secret"), q, false, discardLogger())
	stats, err := syncer.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sent != 0 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 0 sent / 1 failed", stats)
	}

	pending, err := q.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Errorf("queue holds %d entries, want 1", len(pending))
	}
}

// TestSyncerDryRun verifies no requests are sent and nothing is removed.
func TestSyncerDryRun(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("dry run should not send requests")
	}))
	defer ts.Close()

	q := newTestQueue(t)
	if _, err := q.Enqueue(Entry{Kind: KindCompletion, ProgramID: "p1", Week: 1, Day: 1}); err != nil {
		t.Fatal(err)
	}

	syncer := NewSyncer(NewClient(ts.URL, "secret"), q, true, discardLogger())
	if _, err := syncer.Run(); err != nil {
		t.Fatal(err)
	}

	pending, err := q.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Errorf("queue holds %d entries, want 1", len(pending))
	}
}

// TestClientPayloads verifies the JSON bodies sent for each entry kind.
func TestClientPayloads(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/programs/p1/sessions/2/3/complete":
			var body struct {
				DurationSeconds int `json:"duration_seconds"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.DurationSeconds != 3600 {
				t.Errorf("duration = %d, want 3600", body.DurationSeconds)
			}
		case "/api/v1/programs/p1/rest-days/2/4":
			var body struct {
				Feeling string `json:"feeling"`
				Note    string `json:"note"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Feeling != "tired" || body.Note != "long day" {
				t.Errorf("body = %+v", body)
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	if err := client.Send(Entry{Kind: KindCompletion, ProgramID: "p1", Week: 2, Day: 3, DurationSeconds: 3600}); err != nil {
		t.Fatal(err)
	}
	if err := client.Send(Entry{Kind: KindRestDay, ProgramID: "p1", Week: 2, Day: 4, Feeling: "tired", Note: "long day"}); err != nil {
		t.Fatal(err)
	}
}
