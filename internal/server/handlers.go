package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/fitscribe/internal/fit"
	"github.com/claude/fitscribe/internal/ingest/ocrtext"
	"github.com/claude/fitscribe/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	result, err := s.ocr.Ingest(r.Context(), r.Body, source)
	if err != nil {
		s.log.Error("ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleExport converts workout text straight to a FIT file without storing
// anything. Useful for one-off conversions.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	text, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}

	workout := ocrtext.Parse(string(text), "export")
	s.writeFIT(w, workout)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	workouts, err := s.db.ListWorkouts(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	workoutID, err := uuid.Parse(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	row, err := s.db.GetWorkout(r.Context(), workoutID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// handleWorkoutFIT compiles a stored workout to a downloadable FIT file.
func (s *Server) handleWorkoutFIT(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	workoutID, err := uuid.Parse(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	row, err := s.db.GetWorkout(r.Context(), workoutID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}

	var workout models.Workout
	if err := json.Unmarshal(row.Document, &workout); err != nil {
		s.log.Error("decoding stored workout", "id", workoutID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "corrupt workout document"})
		return
	}

	steps, err := fit.Compile(&workout, s.lookup)
	if err != nil {
		if errors.Is(err, fit.ErrNoExercises) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "workout has no exercises"})
			return
		}
		s.log.Error("compiling workout", "id", workoutID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	data, err := fit.Encode(workout.Title, steps, time.Now())
	if err != nil {
		s.log.Error("encoding FIT", "id", workoutID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	filename := fit.Filename(workout.Title)
	if err := s.db.LogExport(r.Context(), models.ExportRow{
		ID:         uuid.New(),
		WorkoutID:  workoutID,
		Filename:   filename,
		SizeBytes:  len(data),
		StepCount:  len(steps),
		ExportedAt: time.Now().UTC(),
	}); err != nil {
		s.log.Warn("logging export failed", "id", workoutID, "error", err)
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	exports, err := s.db.ListExports(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exports)
}

// writeFIT compiles and encodes a workout and writes it as a download.
func (s *Server) writeFIT(w http.ResponseWriter, workout *models.Workout) {
	steps, err := fit.Compile(workout, s.lookup)
	if err != nil {
		if errors.Is(err, fit.ErrNoExercises) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no exercises recognized"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	data, err := fit.Encode(workout.Title, steps, time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fit.Filename(workout.Title)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
