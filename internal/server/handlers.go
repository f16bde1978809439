package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/coachplan/internal/importer"
	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/schedule"
	"github.com/claude/coachplan/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFromContext(r.Context()))
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var spec importer.ProgramSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	user := userFromContext(r.Context())
	prog, tmpl, days, sched, err := spec.Materialize(user.ID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.db.CreateProgram(r.Context(), prog, tmpl, days, sched); err != nil {
		s.log.Error("create program", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"program":  prog,
		"schedule": sched,
	})
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	programs, err := s.db.ListPrograms(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	prog, err := s.db.GetProgram(r.Context(), programID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	state, err := s.engine.GetCompletionState(r.Context(), programID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"program":  prog,
		"progress": state,
	})
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteProgram(r.Context(), programID); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleWeekSchedule(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	week, ok := intParam(w, r, "week")
	if !ok {
		return
	}
	views, err := s.engine.WeekSchedule(r.Context(), programID, week)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	view, err := s.engine.CurrentSession(r.Context(), programID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	state, err := s.engine.GetCompletionState(r.Context(), programID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	views, err := s.engine.Calendar(r.Context(), programID, from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	week, ok := intParam(w, r, "week")
	if !ok {
		return
	}
	day, ok := intParam(w, r, "day")
	if !ok {
		return
	}

	var body struct {
		DurationSeconds int `json:"duration_seconds"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}

	historyID, err := s.engine.CompleteSession(r.Context(), programID, week, day, body.DurationSeconds)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"history_id": historyID.String()})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	entries, err := s.engine.History(r.Context(), programID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// writeError maps engine and storage error kinds to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrProgramNotFound),
		errors.Is(err, storage.ErrScheduleNotFound),
		errors.Is(err, storage.ErrTemplateNotFound),
		errors.Is(err, schedule.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, schedule.ErrIndexOutOfRange):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func programIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return uuid.Nil, false
	}
	return id, true
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return v, true
}

// parseDateRange reads start/end query params as YYYY-MM-DD calendar dates.
// Defaults: start = today, end = 28 days out.
func parseDateRange(r *http.Request) (from, to models.Date, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		from = models.DateOf(time.Now())
	} else if from, err = models.ParseDate(startStr); err != nil {
		return models.Date{}, models.Date{}, err
	}

	if endStr == "" {
		to = from.AddDays(28)
	} else if to, err = models.ParseDate(endStr); err != nil {
		return models.Date{}, models.Date{}, err
	}
	return from, to, nil
}
