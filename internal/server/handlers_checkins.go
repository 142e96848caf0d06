package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/claude/pitchlog/internal/models"
)

func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	checkIns, err := s.db.ListCheckIns(r.Context(), userIDFromContext(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkIns)
}

func (s *Server) handleLatestCheckIn(w http.ResponseWriter, r *http.Request) {
	latest, err := s.db.LatestCheckIn(r.Context(), userIDFromContext(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if latest == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no check-ins yet"})
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

func (s *Server) handleGetCheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	checkIn, err := s.db.GetCheckIn(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkIn)
}

func (s *Server) handleCreateCheckIn(w http.ResponseWriter, r *http.Request) {
	var checkIn models.CheckIn
	if err := json.NewDecoder(r.Body).Decode(&checkIn); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	checkIn.UserID = userIDFromContext(r)
	if checkIn.CheckInDate.IsZero() {
		checkIn.CheckInDate = time.Now()
	}

	created, err := s.db.CreateCheckIn(r.Context(), checkIn)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateCheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var checkIn models.CheckIn
	if err := json.NewDecoder(r.Body).Decode(&checkIn); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	checkIn.ID = id

	updated, err := s.db.UpdateCheckIn(r.Context(), checkIn)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetUserStats(r.Context(), userIDFromContext(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if stats == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no stats yet"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// defaultProgressWeeks is how far back the weekly progress view reaches
// when the request names no range.
const defaultProgressWeeks = 12

func (s *Server) handleWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	start, end, err := progressRange(r.URL.Query(), time.Now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	progress, err := s.db.GetWeeklyProgress(r.Context(), userIDFromContext(r), start, end)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// progressRange resolves the weekly progress window. An explicit
// start_date/end_date pair wins; otherwise the window is the last `weeks`
// weeks ending now, defaulting to defaultProgressWeeks.
func progressRange(q url.Values, now time.Time) (time.Time, time.Time, error) {
	startStr, endStr := q.Get("start_date"), q.Get("end_date")
	if startStr != "" || endStr != "" {
		start, err := time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q", startStr)
		}
		end, err := time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q", endStr)
		}
		end = end.AddDate(0, 0, 1) // end date is inclusive
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date before start_date")
		}
		return start, end, nil
	}

	weeks := defaultProgressWeeks
	if ws := q.Get("weeks"); ws != "" {
		n, err := strconv.Atoi(ws)
		if err != nil || n < 1 {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid weeks %q", ws)
		}
		weeks = n
	}
	return now.AddDate(0, 0, -7*weeks), now, nil
}

func (s *Server) handleRefreshStats(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	if err := s.db.RefreshUserStats(r.Context(), uid, time.Now()); err != nil {
		s.respondError(w, err)
		return
	}
	stats, err := s.db.GetUserStats(r.Context(), uid)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
