package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ScheduleStatus is the lifecycle state of a program schedule.
type ScheduleStatus string

const (
	StatusNotStarted ScheduleStatus = "NOT_STARTED"
	StatusActive     ScheduleStatus = "ACTIVE"
	StatusInProgress ScheduleStatus = "IN_PROGRESS"
	StatusCompleted  ScheduleStatus = "COMPLETED"
)

// SessionKey formats the persisted completed-key for a (week, day) session:
// base-10 integers, no leading zeros, single hyphen. Previously stored data
// uses exactly this format, so it must not change.
func SessionKey(week, day int) string {
	return fmt.Sprintf("%d-%d", week, day)
}

// ParseSessionKey splits a "{week}-{day}" key back into its parts.
func ParseSessionKey(key string) (week, day int, err error) {
	if _, err := fmt.Sscanf(key, "%d-%d", &week, &day); err != nil {
		return 0, 0, fmt.Errorf("invalid session key %q: %w", key, err)
	}
	return week, day, nil
}

// KeySet is the set of completed session keys. It serializes as a JSON array
// of strings at the storage edge; business logic only ever sees the set.
type KeySet map[string]struct{}

// NewKeySet builds a KeySet from the given keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts key into the set. Adding an existing key is a no-op.
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// Contains reports whether key is in the set.
func (s KeySet) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of completed sessions.
func (s KeySet) Len() int {
	return len(s)
}

// Sorted returns the keys ordered by week, then day. Keys that do not parse
// sort after all well-formed keys, in lexical order.
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		wi, di, erri := ParseSessionKey(keys[i])
		wj, dj, errj := ParseSessionKey(keys[j])
		if erri != nil || errj != nil {
			if (erri == nil) != (errj == nil) {
				return erri == nil
			}
			return keys[i] < keys[j]
		}
		if wi != wj {
			return wi < wj
		}
		return di < dj
	})
	return keys
}

// MarshalJSON encodes the set as a sorted JSON array for deterministic storage.
func (s KeySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes a JSON array of keys.
func (s *KeySet) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*s = NewKeySet(keys...)
	return nil
}

// ProgramSchedule is a user's live instantiation of a template: start date,
// duration, progress cursor and completion state. One per program.
type ProgramSchedule struct {
	ID            uuid.UUID      `json:"id"`
	UserID        int            `json:"user_id"`
	ProgramID     uuid.UUID      `json:"program_id"`
	TemplateID    uuid.UUID      `json:"template_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Icon          string         `json:"icon,omitempty"`
	StartDate     Date           `json:"start_date"`
	DurationWeeks int            `json:"duration_weeks"`
	CurrentWeek   int            `json:"current_week"`
	CurrentDay    int            `json:"current_day"`
	Completed     KeySet         `json:"completed_keys"`
	Status        ScheduleStatus `json:"status"`
	CompletionPct float64        `json:"completion_pct"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
