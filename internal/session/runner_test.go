package session

import (
	"testing"

	"github.com/claude/pitchlog/internal/models"
	"github.com/google/uuid"
)

// testWorkout builds a two-block workout: warm-up with two exercises, then
// passing with one.
func testWorkout() models.WorkoutDetail {
	newExercise := func(blockID uuid.UUID) models.BlockExerciseDetail {
		return models.BlockExerciseDetail{
			BlockExercise: models.BlockExercise{
				ID:         uuid.New(),
				BlockID:    blockID,
				ExerciseID: uuid.New(),
			},
		}
	}

	warmupID, passingID := uuid.New(), uuid.New()
	return models.WorkoutDetail{
		Workout: models.Workout{ID: uuid.New(), DayOfWeek: "MONDAY", Mode: "solo"},
		Blocks: []models.BlockDetail{
			{
				WorkoutBlock: models.WorkoutBlock{ID: warmupID, Title: "Warm-up", Order: 1},
				Exercises:    []models.BlockExerciseDetail{newExercise(warmupID), newExercise(warmupID)},
			},
			{
				WorkoutBlock: models.WorkoutBlock{ID: passingID, Title: "Passing", Order: 2},
				Exercises:    []models.BlockExerciseDetail{newExercise(passingID)},
			},
		},
	}
}

// TestRunnerNavigation verifies the cursor crosses block boundaries in both
// directions and reports done only past the final exercise.
func TestRunnerNavigation(t *testing.T) {
	r := NewRunner(testWorkout())

	if b, e := r.Position(); b != 0 || e != 0 {
		t.Fatalf("start position = (%d, %d), want (0, 0)", b, e)
	}

	if done := r.Advance(); done {
		t.Fatal("advance within block reported done")
	}
	if done := r.Advance(); done {
		t.Fatal("advance across block boundary reported done")
	}
	if b, e := r.Position(); b != 1 || e != 0 {
		t.Fatalf("position = (%d, %d), want (1, 0)", b, e)
	}
	if r.CurrentBlock().Title != "Passing" {
		t.Errorf("current block = %q, want Passing", r.CurrentBlock().Title)
	}

	if done := r.Advance(); !done {
		t.Fatal("advance past final exercise should report done")
	}
	if b, e := r.Position(); b != 1 || e != 0 {
		t.Errorf("done must leave the cursor in place, got (%d, %d)", b, e)
	}

	r.Retreat()
	if b, e := r.Position(); b != 0 || e != 1 {
		t.Errorf("retreat across boundary = (%d, %d), want (0, 1)", b, e)
	}
	r.Retreat()
	r.Retreat() // already at the first exercise, no-op
	if b, e := r.Position(); b != 0 || e != 0 {
		t.Errorf("retreat at start = (%d, %d), want (0, 0)", b, e)
	}
}

// TestRunnerEmptyWorkout verifies an empty workout is immediately done and
// marking a set fails cleanly.
func TestRunnerEmptyWorkout(t *testing.T) {
	r := NewRunner(models.WorkoutDetail{})
	if !r.Advance() {
		t.Error("empty workout should be done on first advance")
	}
	if r.CurrentExercise() != nil {
		t.Error("empty workout has no current exercise")
	}
	if _, err := r.MarkSet(1, models.Measurements{}, ""); err == nil {
		t.Error("MarkSet on empty workout should fail")
	}
}

// TestMarkSetToggle verifies the three-state cycle: complete with
// measurements, un-mark keeping old measurements, re-complete with new ones.
func TestMarkSetToggle(t *testing.T) {
	r := NewRunner(testWorkout())

	ten := 10
	entry, err := r.MarkSet(1, models.Measurements{LeftReps: &ten}, "felt good")
	if err != nil {
		t.Fatalf("MarkSet: %v", err)
	}
	if !entry.Completed || entry.LeftReps == nil || *entry.LeftReps != 10 {
		t.Errorf("first mark = %+v, want completed with measurements", entry)
	}
	if !r.SetCompleted(1) {
		t.Error("set 1 should be completed")
	}

	twelve := 12
	entry, err = r.MarkSet(1, models.Measurements{LeftReps: &twelve}, "")
	if err != nil {
		t.Fatalf("MarkSet: %v", err)
	}
	if entry.Completed {
		t.Error("second mark should un-complete the set")
	}
	if entry.LeftReps == nil || *entry.LeftReps != 10 {
		t.Errorf("un-marking must keep old measurements, got %+v", entry.LeftReps)
	}
	if r.SetCompleted(1) {
		t.Error("set 1 should no longer be completed")
	}

	entry, err = r.MarkSet(1, models.Measurements{LeftReps: &twelve}, "")
	if err != nil {
		t.Fatalf("MarkSet: %v", err)
	}
	if !entry.Completed || *entry.LeftReps != 12 {
		t.Errorf("re-completing should store new measurements, got %+v", entry)
	}
}

// TestMarkSetPerExercise verifies set logs are keyed per exercise, so set 1
// on two different exercises is two independent entries.
func TestMarkSetPerExercise(t *testing.T) {
	r := NewRunner(testWorkout())

	if _, err := r.MarkSet(1, models.Measurements{}, ""); err != nil {
		t.Fatal(err)
	}
	r.Advance()
	if r.SetCompleted(1) {
		t.Error("set 1 on the next exercise should start incomplete")
	}
	r.Retreat()
	if !r.SetCompleted(1) {
		t.Error("returning to the first exercise should keep its completed set")
	}
}

// TestRunnerTimers verifies elapsed time accumulates and the rest countdown
// stops at zero.
func TestRunnerTimers(t *testing.T) {
	r := NewRunner(testWorkout())

	r.Tick(30)
	r.StartRest(60)
	r.Tick(45)
	if r.Elapsed() != 75 {
		t.Errorf("Elapsed = %d, want 75", r.Elapsed())
	}

	snap := r.Snapshot()
	if snap.RestSeconds != 15 || !snap.RestRunning {
		t.Errorf("rest = %d running=%v, want 15 running", snap.RestSeconds, snap.RestRunning)
	}

	r.Tick(30)
	snap = r.Snapshot()
	if snap.RestSeconds != 0 || snap.RestRunning {
		t.Errorf("rest after expiry = %d running=%v, want stopped at 0", snap.RestSeconds, snap.RestRunning)
	}
}

// TestAdvanceResetsRest verifies moving to another exercise cancels a
// running rest timer.
func TestAdvanceResetsRest(t *testing.T) {
	r := NewRunner(testWorkout())
	r.StartRest(60)
	r.Advance()
	snap := r.Snapshot()
	if snap.RestRunning || snap.RestSeconds != 0 {
		t.Errorf("rest after advance = %d running=%v, want cleared", snap.RestSeconds, snap.RestRunning)
	}
}
