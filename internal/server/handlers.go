package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/claude/pitchlog/internal/models"
	"github.com/claude/pitchlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	var (
		exercises []models.Exercise
		err       error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		exercises, err = s.db.ListExercisesByCategory(r.Context(), category)
	} else {
		exercises, err = s.db.ListExercises(r.Context())
	}
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if ex.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	uid := userIDFromContext(r)
	ex.IsCustom = true
	ex.UserID = &uid

	created, inserted, err := s.db.CreateExercise(r.Context(), ex)
	if err != nil {
		s.respondError(w, err)
		return
	}
	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	writeJSON(w, status, created)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.db.ListWorkouts(r.Context(), userIDFromContext(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleTodayWorkout(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = models.ModeSolo
	}
	day := r.URL.Query().Get("day")
	if day == "" {
		day = todayName()
	}

	workout, err := s.db.GetWorkoutByDay(r.Context(), userIDFromContext(r), day, mode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if workout == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no workout scheduled for " + day})
		return
	}
	detail, err := s.db.GetWorkoutDetail(r.Context(), workout.ID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	detail, err := s.db.GetWorkoutDetail(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if workout.DayOfWeek == "" || workout.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "day_of_week and title are required"})
		return
	}
	if workout.Mode == "" {
		workout.Mode = models.ModeSolo
	}
	workout.UserID = userIDFromContext(r)
	workout.IsActive = true

	created, err := s.db.CreateWorkout(r.Context(), workout)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	existing, err := s.db.GetWorkout(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	workout, err := overlayWorkout(*existing, r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.db.UpdateWorkout(r.Context(), workout); err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// overlayWorkout decodes a partial update over the stored row, so fields
// the body omits keep their values; a PUT that only changes the title must
// not zero is_active and hide the workout. Identity fields cannot move.
func overlayWorkout(existing models.Workout, body io.Reader) (models.Workout, error) {
	w := existing
	if err := json.NewDecoder(body).Decode(&w); err != nil {
		return models.Workout{}, err
	}
	w.ID = existing.ID
	w.UserID = existing.UserID
	w.CreatedAt = existing.CreatedAt
	return w, nil
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.DeleteWorkout(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var block models.WorkoutBlock
	if err := json.NewDecoder(r.Body).Decode(&block); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	block.WorkoutID = workoutID
	if block.Order == 0 {
		max, err := s.db.MaxBlockOrder(r.Context(), workoutID)
		if err != nil {
			s.respondError(w, err)
			return
		}
		block.Order = max + 1
	}
	created, err := s.db.CreateBlock(r.Context(), block)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var block models.WorkoutBlock
	if err := json.NewDecoder(r.Body).Decode(&block); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	block.ID = id
	if err := s.db.UpdateBlock(r.Context(), block); err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, block)
}

func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.DeleteBlock(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateBlockExercise(w http.ResponseWriter, r *http.Request) {
	blockID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var be models.BlockExercise
	if err := json.NewDecoder(r.Body).Decode(&be); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if be.ExerciseID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise_id is required"})
		return
	}
	be.BlockID = blockID

	created, err := s.db.CreateBlockExercise(r.Context(), be)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateBlockExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var be models.BlockExercise
	if err := json.NewDecoder(r.Body).Decode(&be); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	be.ID = id
	if err := s.db.UpdateBlockExercise(r.Context(), be); err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, be)
}

func (s *Server) handleDeleteBlockExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.DeleteBlockExercise(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondError maps storage errors to status codes. Unknown errors are
// logged and reported as 500 without leaking internals.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	s.log.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
