package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/coachplan/internal/schedule"
	"github.com/claude/coachplan/internal/storage"
	"github.com/go-chi/chi/v5"
	"tailscale.com/client/local"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	engine *schedule.Engine
	log    *slog.Logger
	apiKey string
	ts     *local.Client
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, engine *schedule.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		engine: engine,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale enables Tailscale identity resolution for incoming requests.
func (s *Server) SetTailscale(lc *local.Client) {
	s.ts = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Get("/api/v1/me", s.handleMe)

	s.router.Route("/api/v1/programs", func(r chi.Router) {
		// Read endpoints (no auth; tsnet handles access)
		r.Get("/", s.handleListPrograms)
		r.Get("/{id}", s.handleGetProgram)
		r.Get("/{id}/weeks/{week}", s.handleWeekSchedule)
		r.Get("/{id}/current", s.handleCurrentSession)
		r.Get("/{id}/progress", s.handleProgress)
		r.Get("/{id}/calendar", s.handleCalendar)
		r.Get("/{id}/history", s.handleHistory)
		r.Get("/{id}/rest-days", s.handleListRestDays)

		// Mutating endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/", s.handleCreateProgram)
			r.Delete("/{id}", s.handleDeleteProgram)
			r.Post("/{id}/sessions/{week}/{day}/complete", s.handleCompleteSession)
			r.Patch("/{id}/days/{day}", s.handlePatchDay)
			r.Post("/{id}/days/{day}/exercises", s.handleAddExercise)
			r.Put("/{id}/days/{day}/exercises/{index}", s.handleUpdateExercise)
			r.Delete("/{id}/days/{day}/exercises/{index}", s.handleRemoveExercise)
			r.Put("/{id}/rest-days/{week}/{day}", s.handleLogRestDay)
		})
	})
}
