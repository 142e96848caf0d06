package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/claude/pitchlog/internal/models"
	"github.com/claude/pitchlog/internal/session"
	"github.com/google/uuid"
)

type beginSessionRequest struct {
	WorkoutID uuid.UUID `json:"workout_id"`
	Mode      string    `json:"mode"`
	Notes     *string   `json:"notes,omitempty"`
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context(), userIDFromContext(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	active, err := s.db.GetActiveSession(r.Context(), userIDFromContext(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if active == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) handlePausedSessions(w http.ResponseWriter, r *http.Request) {
	paused, err := s.db.ListPausedSessions(r.Context(), userIDFromContext(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paused)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sess, err := s.db.GetSession(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleBeginSession(w http.ResponseWriter, r *http.Request) {
	var req beginSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.WorkoutID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "workout_id is required"})
		return
	}

	workout, err := s.db.GetWorkout(r.Context(), req.WorkoutID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = workout.Mode
	}

	created, err := s.db.CreateSession(r.Context(), models.WorkoutSession{
		UserID:    userIDFromContext(r),
		WorkoutID: workout.ID,
		StartedAt: time.Now(),
		Status:    models.SessionInProgress,
		Mode:      mode,
		Notes:     req.Notes,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handlePauseSession stores the client's runner snapshot on the session row.
// The snapshot is validated before storing so a resume never sees a payload
// that cannot be decoded back.
func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var snap session.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if snap.Version == 0 {
		snap.Version = session.SnapshotVersion
	}
	if err := snap.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	encoded, err := session.EncodeSnapshot(snap)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	currentBlockID := s.blockIDAt(r, id, snap.CurrentBlockIndex)

	sess, err := s.db.PauseSession(r.Context(), id, encoded, currentBlockID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type resumeResponse struct {
	Session  *models.WorkoutSession `json:"session"`
	Snapshot *session.Snapshot      `json:"snapshot,omitempty"`
	Fresh    bool                   `json:"fresh"`
	Warning  string                 `json:"warning,omitempty"`
}

// handleResumeSession returns the stored snapshot alongside the reactivated
// session. A snapshot that no longer decodes is discarded: the session
// resumes from the start rather than from half-restored state.
func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sess, err := s.db.GetSession(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}

	resp := resumeResponse{Fresh: true}
	if sess.PausedState != nil {
		snap, err := session.DecodeSnapshot(*sess.PausedState)
		var logs []models.ExerciseLog
		if err == nil {
			logs, err = snap.Logs(id)
		}
		if err != nil {
			s.log.Warn("discarding unreadable pause snapshot", "session", id, "error", err)
			resp.Warning = "saved progress could not be read; starting from the beginning"
		} else {
			// The snapshot is authoritative for set state while paused;
			// rewrite the session's logs to match before reactivating.
			if err := s.db.ReplaceSessionLogs(r.Context(), id, logs); err != nil {
				s.respondError(w, err)
				return
			}
			resp.Snapshot = &snap
			resp.Fresh = false
		}
	}

	resumed, err := s.db.ResumeSession(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	resp.Session = resumed
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sess, err := s.db.CompleteSession(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.db.RefreshUserStats(r.Context(), sess.UserID, time.Now()); err != nil {
		s.log.Error("stats refresh failed", "user", sess.UserID, "error", err)
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.DeleteSession(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetSessionStats(r.Context(), userIDFromContext(r), time.Now())
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListSessionLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	logs, err := s.db.ListSessionLogs(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// handleRecordSet writes one set log synchronously. Posting the same set
// again toggles it back off.
func (s *Server) handleRecordSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var logEntry models.ExerciseLog
	if err := json.NewDecoder(r.Body).Decode(&logEntry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if logEntry.BlockID == uuid.Nil || logEntry.ExerciseID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "block_id and exercise_id are required"})
		return
	}
	if logEntry.SetNumber < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "set_number must be positive"})
		return
	}
	if _, err := s.db.GetSession(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	logEntry.SessionID = id

	recorded, err := s.db.RecordSet(r.Context(), logEntry)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recorded)
}

// blockIDAt resolves a snapshot's block index to the block's ID, or nil when
// the index no longer matches the workout shape.
func (s *Server) blockIDAt(r *http.Request, sessionID uuid.UUID, blockIdx int) *uuid.UUID {
	sess, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		return nil
	}
	blocks, err := s.db.GetWorkoutBlocks(r.Context(), sess.WorkoutID)
	if err != nil || blockIdx < 0 || blockIdx >= len(blocks) {
		return nil
	}
	return &blocks[blockIdx].ID
}
