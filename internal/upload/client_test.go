package upload

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestSendSchedule verifies the request shape (path, API key, JSON body) and
// that the server's result decodes into the mirror type.
func TestSendSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/schedule" {
			t.Errorf("path = %s, want /api/v1/schedule", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q, want %q", got, "secret")
		}
		var req struct {
			Text      string `json:"text"`
			Mode      string `json:"mode"`
			Overwrite bool   `json:"overwrite"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Mode != "solo" || !req.Overwrite {
			t.Errorf("request = %+v, want mode solo with overwrite", req)
		}
		json.NewEncoder(w).Encode(Result{WorkoutsCreated: 2, BlocksCreated: 5})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	result, err := client.SendSchedule(context.Background(), "MONDAY — Shooting (45 min)", "solo", true)
	if err != nil {
		t.Fatalf("SendSchedule: %v", err)
	}
	if result.WorkoutsCreated != 2 || result.BlocksCreated != 5 {
		t.Errorf("result = %+v, want 2 workouts and 5 blocks", result)
	}
}

// TestSendScheduleFormatRejection verifies a 422 becomes a *FormatError
// without retrying.
func TestSendScheduleFormatRejection(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "no workout blocks found",
			"hint":  "start each day with a DAYNAME header",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	_, err := client.SendSchedule(context.Background(), "not a schedule", "solo", false)

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error = %v, want *FormatError", err)
	}
	if formatErr.Hint == "" {
		t.Error("expected hint to be carried through")
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1 (format errors are not retryable)", calls)
	}
}

// TestSendScheduleRetriesServerErrors verifies a transient 500 is retried and
// a later success wins.
func TestSendScheduleRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "temporarily unavailable", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(Result{WorkoutsCreated: 1})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	result, err := client.SendSchedule(context.Background(), "MONDAY — Passing", "solo", false)
	if err != nil {
		t.Fatalf("SendSchedule: %v", err)
	}
	if result.WorkoutsCreated != 1 {
		t.Errorf("WorkoutsCreated = %d, want 1", result.WorkoutsCreated)
	}
	if calls != 2 {
		t.Errorf("server called %d times, want 2", calls)
	}
}

// TestSendScheduleBadKey verifies an auth failure is surfaced immediately.
func TestSendScheduleBadKey(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong")
	if _, err := client.SendSchedule(context.Background(), "MONDAY", "solo", false); err == nil {
		t.Fatal("expected error for rejected API key")
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1 (auth errors are not retryable)", calls)
	}
}
