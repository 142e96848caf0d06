package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/claude/pitchlog/internal/models"
	"github.com/claude/pitchlog/internal/schedule"
	"github.com/google/uuid"
)

// fakeStore is an in-memory schedule.Store for exercising the upload
// endpoints without a database.
type fakeStore struct {
	exercises map[string]models.Exercise
	workouts  map[uuid.UUID]models.Workout
	blocks    []models.WorkoutBlock
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		exercises: make(map[string]models.Exercise),
		workouts:  make(map[uuid.UUID]models.Workout),
	}
}

func (f *fakeStore) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	var out []models.Exercise
	for _, e := range f.exercises {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) CreateExercise(ctx context.Context, ex models.Exercise) (models.Exercise, bool, error) {
	key := strings.ToLower(ex.Name)
	if existing, ok := f.exercises[key]; ok {
		return existing, false, nil
	}
	ex.ID = uuid.New()
	f.exercises[key] = ex
	return ex, true, nil
}

func (f *fakeStore) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	w, ok := f.workouts[id]
	if !ok {
		return nil, errors.New("workout not found")
	}
	return &w, nil
}

func (f *fakeStore) ListWorkoutsByDay(ctx context.Context, userID int, dayOfWeek, mode string) ([]models.Workout, error) {
	var out []models.Workout
	for _, w := range f.workouts {
		if w.UserID == userID && w.DayOfWeek == dayOfWeek && w.Mode == mode {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateWorkout(ctx context.Context, w models.Workout) (models.Workout, error) {
	w.ID = uuid.New()
	f.workouts[w.ID] = w
	return w, nil
}

func (f *fakeStore) UpdateWorkout(ctx context.Context, w models.Workout) error {
	f.workouts[w.ID] = w
	return nil
}

func (f *fakeStore) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	delete(f.workouts, id)
	return nil
}

func (f *fakeStore) DeleteWorkoutBlocks(ctx context.Context, workoutID uuid.UUID) error {
	var kept []models.WorkoutBlock
	for _, b := range f.blocks {
		if b.WorkoutID != workoutID {
			kept = append(kept, b)
		}
	}
	f.blocks = kept
	return nil
}

func (f *fakeStore) MaxBlockOrder(ctx context.Context, workoutID uuid.UUID) (int, error) {
	max := 0
	for _, b := range f.blocks {
		if b.WorkoutID == workoutID && b.Order > max {
			max = b.Order
		}
	}
	return max, nil
}

func (f *fakeStore) CreateBlock(ctx context.Context, b models.WorkoutBlock) (models.WorkoutBlock, error) {
	b.ID = uuid.New()
	f.blocks = append(f.blocks, b)
	return b, nil
}

func (f *fakeStore) CreateBlockExercise(ctx context.Context, e models.BlockExercise) (models.BlockExercise, error) {
	e.ID = uuid.New()
	return e, nil
}

func (f *fakeStore) InTx(ctx context.Context, fn func(schedule.Store) error) error {
	return fn(f)
}

func testServer(store *fakeStore) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(nil, schedule.NewPipeline(store, log), "test-key", log)
}

const weekText = `MONDAY — Speed & Agility (45 min)
Location: Park
1. Warm-up (10 min)
- Jog: 2x10, rest 60s
- High knees
`

// TestUploadWeekRequiresAPIKey verifies that the bulk upload route is
// guarded by the API key middleware.
func TestUploadWeekRequiresAPIKey(t *testing.T) {
	srv := testServer(newFakeStore())

	body := strings.NewReader(`{"text":"whatever"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// TestUploadWeekCreatesWorkout verifies a valid week upload creates the
// parsed workout and reports counts.
func TestUploadWeekCreatesWorkout(t *testing.T) {
	store := newFakeStore()
	srv := testServer(store)

	payload, _ := json.Marshal(uploadWeekRequest{Text: weekText, Mode: models.ModeSolo})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", strings.NewReader(string(payload)))
	req.Header.Set("X-API-Key", "test-key")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var result schedule.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.WorkoutsCreated != 1 {
		t.Errorf("WorkoutsCreated = %d, want 1", result.WorkoutsCreated)
	}
	if result.BlocksCreated != 1 {
		t.Errorf("BlocksCreated = %d, want 1", result.BlocksCreated)
	}
	if len(store.workouts) != 1 {
		t.Errorf("stored workouts = %d, want 1", len(store.workouts))
	}
	for _, w := range store.workouts {
		if w.DayOfWeek != "MONDAY" {
			t.Errorf("DayOfWeek = %q, want MONDAY", w.DayOfWeek)
		}
		if w.Title != "Speed & Agility" {
			t.Errorf("Title = %q, want 'Speed & Agility'", w.Title)
		}
	}
}

// TestUploadWeekNoBlocks verifies that text with no recognizable blocks is
// rejected with 422 and a format hint rather than creating empty workouts.
func TestUploadWeekNoBlocks(t *testing.T) {
	srv := testServer(newFakeStore())

	payload, _ := json.Marshal(uploadWeekRequest{Text: "just some prose\nwith no structure"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", strings.NewReader(string(payload)))
	req.Header.Set("X-API-Key", "test-key")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["hint"] == "" {
		t.Error("expected a format hint in the 422 response")
	}
}

// TestUploadWeekEmptyText verifies blank input is a 400, not a parse attempt.
func TestUploadWeekEmptyText(t *testing.T) {
	srv := testServer(newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", strings.NewReader(`{"text":"  "}`))
	req.Header.Set("X-API-Key", "test-key")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// TestOverlayWorkout verifies a partial update keeps every field the body
// omits, so a title-only PUT cannot flip is_active and hide the workout.
func TestOverlayWorkout(t *testing.T) {
	desc := "leg day"
	existing := models.Workout{
		ID:          uuid.New(),
		UserID:      7,
		DayOfWeek:   "MONDAY",
		Mode:        models.ModeSolo,
		Title:       "Passing + Lower Strength",
		Description: &desc,
		Duration:    "~1h45min",
		Location:    "Pitch",
		IsActive:    true,
		CreatedAt:   time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC),
	}

	got, err := overlayWorkout(existing, strings.NewReader(`{"title":"Recovery"}`))
	if err != nil {
		t.Fatalf("overlayWorkout: %v", err)
	}
	if got.Title != "Recovery" {
		t.Errorf("Title = %q, want Recovery", got.Title)
	}
	if !got.IsActive {
		t.Error("IsActive was zeroed by a partial update")
	}
	if got.DayOfWeek != "MONDAY" || got.Duration != "~1h45min" || got.Location != "Pitch" {
		t.Errorf("omitted fields changed: %+v", got)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("Description = %v, want %q", got.Description, desc)
	}

	// Identity fields in the body are ignored.
	body := `{"id":"` + uuid.NewString() + `","user_id":99,"is_active":false}`
	got, err = overlayWorkout(existing, strings.NewReader(body))
	if err != nil {
		t.Fatalf("overlayWorkout: %v", err)
	}
	if got.ID != existing.ID || got.UserID != existing.UserID || !got.CreatedAt.Equal(existing.CreatedAt) {
		t.Errorf("identity fields moved: %+v", got)
	}
	if got.IsActive {
		t.Error("explicit is_active=false was not applied")
	}
}

// TestProgressRange verifies the weekly progress window: explicit dates win,
// weeks counts back from now with a default of twelve, and bad input errors.
func TestProgressRange(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{"default", "", "2026-06-09", "2026-09-01", false},
		{"weeks", "weeks=4", "2026-08-04", "2026-09-01", false},
		{"explicit range", "start_date=2026-08-01&end_date=2026-08-15", "2026-08-01", "2026-08-16", false},
		{"zero weeks", "weeks=0", "", "", true},
		{"weeks not a number", "weeks=soon", "", "", true},
		{"half a range", "start_date=2026-08-01", "", "", true},
		{"inverted range", "start_date=2026-08-15&end_date=2026-08-01", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			start, end, err := progressRange(q, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("progressRange error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

// TestPauseSessionRejectsBadSnapshot verifies out-of-range snapshots are
// rejected before any storage access.
func TestPauseSessionRejectsBadSnapshot(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative cursor", `{"current_block_index":-1}`},
		{"unknown version", `{"version":99}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(newFakeStore())

			url := "/api/v1/sessions/" + uuid.NewString() + "/pause"
			req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
		})
	}
}

// TestGetWorkoutInvalidID verifies malformed UUIDs are rejected before any
// storage access.
func TestGetWorkoutInvalidID(t *testing.T) {
	srv := testServer(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
