package models

import (
	"encoding/json"
	"testing"
)

// TestSessionKeyFormat verifies the literal "{week}-{day}" key format that
// previously stored schedules depend on.
func TestSessionKeyFormat(t *testing.T) {
	tests := []struct {
		week, day int
		want      string
	}{
		{1, 1, "1-1"},
		{1, 7, "1-7"},
		{12, 3, "12-3"},
		{10, 10, "10-10"},
	}
	for _, tt := range tests {
		if got := SessionKey(tt.week, tt.day); got != tt.want {
			t.Errorf("SessionKey(%d, %d) = %q, want %q", tt.week, tt.day, got, tt.want)
		}
	}
}

// TestParseSessionKey verifies round-tripping and rejection of malformed keys.
func TestParseSessionKey(t *testing.T) {
	week, day, err := ParseSessionKey("4-6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week != 4 || day != 6 {
		t.Errorf("ParseSessionKey(\"4-6\") = (%d, %d), want (4, 6)", week, day)
	}

	if _, _, err := ParseSessionKey("garbage"); err == nil {
		t.Error("expected error for malformed key, got nil")
	}
}

// TestKeySetIdempotentAdd verifies that re-adding an existing key does not
// grow the set.
func TestKeySetIdempotentAdd(t *testing.T) {
	s := NewKeySet()
	s.Add(SessionKey(1, 1))
	s.Add(SessionKey(1, 1))
	s.Add(SessionKey(1, 2))

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains("1-1") {
		t.Error("set should contain 1-1")
	}
	if s.Contains("2-1") {
		t.Error("set should not contain 2-1")
	}
}

// TestKeySetJSONRoundTrip verifies the serialize/deserialize boundary: the
// set stores as a sorted JSON array and loads back identically.
func TestKeySetJSONRoundTrip(t *testing.T) {
	s := NewKeySet("2-1", "1-7", "1-2", "10-3")

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	want := `["1-2","1-7","2-1","10-3"]`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var back KeySet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if back.Len() != s.Len() {
		t.Errorf("round-trip Len() = %d, want %d", back.Len(), s.Len())
	}
	for k := range s {
		if !back.Contains(k) {
			t.Errorf("round-trip lost key %q", k)
		}
	}
}

// TestKeySetSortedOrder verifies numeric ordering (week 10 after week 2, not
// lexically before it).
func TestKeySetSortedOrder(t *testing.T) {
	s := NewKeySet("10-1", "2-1", "2-7", "1-3")
	got := s.Sorted()
	want := []string{"1-3", "2-1", "2-7", "10-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted() = %v, want %v", got, want)
		}
	}
}
