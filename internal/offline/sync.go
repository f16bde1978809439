package offline

import (
	"fmt"
	"log/slog"
)

// Stats tracks one sync run.
type Stats struct {
	Sent   int
	Failed int
}

// Syncer drains the queue against the server.
type Syncer struct {
	client *Client
	queue  *Queue
	dryRun bool
	log    *slog.Logger
}

// NewSyncer creates a Syncer. In dry-run mode entries are listed but neither
// sent nor removed.
func NewSyncer(client *Client, queue *Queue, dryRun bool, log *slog.Logger) *Syncer {
	return &Syncer{client: client, queue: queue, dryRun: dryRun, log: log}
}

// Run sends every pending entry in insertion order. Entries that fail to send
// stay queued for the next run.
func (s *Syncer) Run() (*Stats, error) {
	entries, err := s.queue.Pending()
	if err != nil {
		return nil, fmt.Errorf("reading queue: %w", err)
	}

	stats := &Stats{}
	for _, e := range entries {
		if s.dryRun {
			s.log.Info("would sync", "kind", e.Kind, "program_id", e.ProgramID, "week", e.Week, "day", e.Day)
			continue
		}

		if err := s.client.Send(e); err != nil {
			s.log.Error("sync entry", "id", e.ID, "kind", e.Kind, "error", err)
			stats.Failed++
			continue
		}

		if err := s.queue.Remove(e.ID); err != nil {
			return stats, fmt.Errorf("removing synced entry %d: %w", e.ID, err)
		}
		stats.Sent++
		s.log.Info("synced", "kind", e.Kind, "program_id", e.ProgramID, "week", e.Week, "day", e.Day)
	}

	return stats, nil
}
