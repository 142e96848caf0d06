package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/pitchlog/internal/models"
	"github.com/claude/pitchlog/internal/storage"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListWorkouts verifies the HTTP client correctly parses a JSON array
// response from the workouts endpoint.
func TestListWorkouts(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.Workout{
				{ID: uuid.New(), DayOfWeek: "MONDAY", Mode: "solo", Title: "Speed & Agility"},
				{ID: uuid.New(), DayOfWeek: "WEDNESDAY", Mode: "friend", Title: "Finishing"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	workouts, err := client.ListWorkouts(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 2 {
		t.Fatalf("got %d workouts, want 2", len(workouts))
	}
	if workouts[0].DayOfWeek != "MONDAY" {
		t.Errorf("DayOfWeek = %q, want MONDAY", workouts[0].DayOfWeek)
	}
}

// TestGetWorkoutByDay verifies query params and that the workout is lifted
// out of the detail response.
func TestGetWorkoutByDay(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts/today": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("day"); got != "FRIDAY" {
				t.Errorf("day=%q, want FRIDAY", got)
			}
			if got := r.URL.Query().Get("mode"); got != "solo" {
				t.Errorf("mode=%q, want solo", got)
			}
			writeTestJSON(t, w, models.WorkoutDetail{
				Workout: models.Workout{ID: id, DayOfWeek: "FRIDAY", Mode: "solo", Title: "Shooting"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	workout, err := client.GetWorkoutByDay(context.Background(), 1, "FRIDAY", "solo")
	if err != nil {
		t.Fatal(err)
	}
	if workout == nil {
		t.Fatal("workout = nil, want value")
	}
	if workout.ID != id {
		t.Errorf("ID = %v, want %v", workout.ID, id)
	}
}

// TestGetWorkoutByDayNotFound verifies a 404 maps to (nil, nil), matching
// the storage layer's contract.
func TestGetWorkoutByDayNotFound(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts/today": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	workout, err := client.GetWorkoutByDay(context.Background(), 1, "SUNDAY", "solo")
	if err != nil {
		t.Fatal(err)
	}
	if workout != nil {
		t.Errorf("workout = %v, want nil", workout)
	}
}

// TestGetSessionStats verifies the HTTP client correctly parses a single
// struct response.
func TestGetSessionStats(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/sessions/stats": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, storage.SessionStats{
				TotalSessions:    12,
				CurrentStreak:    3,
				ThisWeekSessions: 2,
				AverageAccuracy:  71,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	stats, err := client.GetSessionStats(context.Background(), 1, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSessions != 12 {
		t.Errorf("TotalSessions = %d, want 12", stats.TotalSessions)
	}
	if stats.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", stats.CurrentStreak)
	}
}

// TestGetServerError verifies non-200 responses surface as errors with the
// status code.
func TestGetServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/sessions": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	_, err := client.ListSessions(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
