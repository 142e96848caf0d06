package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/claude/pitchlog/internal/models"
	"github.com/claude/pitchlog/internal/schedule"
)

const formatHint = "expected lines like 'MONDAY — Speed & Agility (45 min)', " +
	"numbered blocks '1. Warm-up (10 min)' and exercises '- Name: 3x10, rest 60s'"

type uploadWeekRequest struct {
	Text      string `json:"text"`
	Mode      string `json:"mode"`
	Overwrite bool   `json:"overwrite"`
}

type uploadDayRequest struct {
	Text      string `json:"text"`
	Overwrite bool   `json:"overwrite"`
}

// handleUploadWeek parses a whole-week schedule and persists one workout per
// recognized day.
func (s *Server) handleUploadWeek(w http.ResponseWriter, r *http.Request) {
	var req uploadWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}
	if req.Mode == "" {
		req.Mode = models.ModeSolo
	}

	result, err := s.pipeline.ApplyWeek(r.Context(), userIDFromContext(r), req.Text, req.Mode, req.Overwrite)
	if errors.Is(err, schedule.ErrNoBlocks) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "no workout blocks recognized",
			"hint":  formatHint,
		})
		return
	}
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleUploadDay parses single-day text into an existing workout, either
// replacing its blocks or appending after them.
func (s *Server) handleUploadDay(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req uploadDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	result, err := s.pipeline.ApplyDay(r.Context(), userIDFromContext(r), workoutID, req.Text, req.Overwrite)
	if errors.Is(err, schedule.ErrNoBlocks) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "no workout blocks recognized",
			"hint":  formatHint,
		})
		return
	}
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func todayName() string {
	return strings.ToUpper(time.Now().Weekday().String())
}
