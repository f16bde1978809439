package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/coachplan/internal/models"
)

// handlePatchDay renames a day, toggles it between rest and workout, or both.
// Only fields present in the request body are applied.
func (s *Server) handlePatchDay(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	day, ok := intParam(w, r, "day")
	if !ok {
		return
	}

	var body struct {
		WorkoutType *string `json:"workout_type"`
		IsRestDay   *bool   `json:"is_rest_day"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.WorkoutType == nil && body.IsRestDay == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "nothing to update"})
		return
	}

	if err := s.engine.UpdateDayInfo(r.Context(), programID, day, body.WorkoutType, body.IsRestDay); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	day, ok := intParam(w, r, "day")
	if !ok {
		return
	}

	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if ex.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise name is required"})
		return
	}

	if err := s.engine.AddExercise(r.Context(), programID, day, ex); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	day, ok := intParam(w, r, "day")
	if !ok {
		return
	}
	index, ok := intParam(w, r, "index")
	if !ok {
		return
	}

	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.engine.UpdateExercise(r.Context(), programID, day, index, ex); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	day, ok := intParam(w, r, "day")
	if !ok {
		return
	}
	index, ok := intParam(w, r, "index")
	if !ok {
		return
	}

	if err := s.engine.RemoveExercise(r.Context(), programID, day, index); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleLogRestDay(w http.ResponseWriter, r *http.Request) {
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
		Feeling    string   `json:"feeling"`
		Activities []string `json:"activities"`
		Note       string   `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	logID, err := s.engine.LogRestDay(r.Context(), programID, week, day, body.Feeling, body.Activities, body.Note)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"log_id": logID.String()})
}

func (s *Server) handleListRestDays(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	logs, err := s.engine.RestDayLogs(r.Context(), programID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
