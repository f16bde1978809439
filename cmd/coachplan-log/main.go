package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/coachplan/internal/offline"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "CoachPlan server URL (e.g. https://coachplan.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("COACHPLAN_AUTH_API_KEY"), "API key for mutating requests")
	programID := flag.String("program", "", "program UUID")
	week := flag.Int("week", 0, "session week")
	day := flag.Int("day", 0, "session day")
	duration := flag.Int("duration", 0, "workout duration in seconds")
	rest := flag.Bool("rest", false, "log a rest day instead of a completion")
	feeling := flag.String("feeling", "", "how the rest day felt")
	note := flag.String("note", "", "free-form note")
	sync := flag.Bool("sync", false, "send all queued entries to the server")
	list := flag.Bool("list", false, "print queued entries and exit")
	dryRun := flag.Bool("dry-run", false, "with -sync: list what would be sent without sending")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("coachplan-log", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	queue, err := offline.Open(filepath.Join(homeDir, ".coachplan-log"))
	if err != nil {
		log.Error("failed to open queue", "error", err)
		os.Exit(1)
	}
	defer queue.Close()

	switch {
	case *list:
		printQueue(queue, log)

	case *sync:
		if *serverURL == "" && !*dryRun {
			fmt.Fprintf(os.Stderr, "Error: -server is required for -sync (or use -dry-run)\n")
			os.Exit(1)
		}
		syncer := offline.NewSyncer(offline.NewClient(*serverURL, *apiKey), queue, *dryRun, log)
		stats, err := syncer.Run()
		if err != nil {
			log.Error("sync failed", "error", err)
			os.Exit(1)
		}
		log.Info("sync complete", "sent", stats.Sent, "failed", stats.Failed)

	default:
		if *programID == "" || *week < 1 || *day < 1 {
			fmt.Fprintf(os.Stderr, "Usage:\n"+
				"  coachplan-log -program <uuid> -week N -day N [-duration SECS]   queue a completion\n"+
				"  coachplan-log -program <uuid> -week N -day N -rest [-feeling F] queue a rest day log\n"+
				"  coachplan-log -sync -server <URL> [-api-key KEY]                send queued entries\n"+
				"  coachplan-log -list                                             show the queue\n\n")
			flag.PrintDefaults()
			os.Exit(1)
		}

		entry := offline.Entry{
			Kind:            offline.KindCompletion,
			ProgramID:       *programID,
			Week:            *week,
			Day:             *day,
			DurationSeconds: *duration,
		}
		if *rest {
			entry.Kind = offline.KindRestDay
			entry.Feeling = *feeling
			entry.Note = *note
		}

		id, err := queue.Enqueue(entry)
		if err != nil {
			log.Error("failed to queue entry", "error", err)
			os.Exit(1)
		}
		log.Info("queued", "id", id, "kind", entry.Kind, "week", entry.Week, "day", entry.Day)
	}
}

func printQueue(queue *offline.Queue, log *slog.Logger) {
	entries, err := queue.Pending()
	if err != nil {
		log.Error("failed to read queue", "error", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("queue is empty")
		return
	}

	fmt.Println("=== Pending Entries ===")
	for _, e := range entries {
		switch e.Kind {
		case offline.KindCompletion:
			fmt.Printf("  #%d  completion  program=%s  week=%d day=%d  duration=%ds\n",
				e.ID, e.ProgramID, e.Week, e.Day, e.DurationSeconds)
		case offline.KindRestDay:
			fmt.Printf("  #%d  rest day    program=%s  week=%d day=%d  feeling=%q\n",
				e.ID, e.ProgramID, e.Week, e.Day, e.Feeling)
		}
	}
}
