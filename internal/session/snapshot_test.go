package session

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/claude/pitchlog/internal/models"
)

// TestSnapshotRoundTrip verifies pause and resume restore the cursor, set
// logs and timers exactly.
func TestSnapshotRoundTrip(t *testing.T) {
	w := testWorkout()
	r := NewRunner(w)

	ten := 10
	if _, err := r.MarkSet(1, models.Measurements{LeftReps: &ten}, "clean"); err != nil {
		t.Fatal(err)
	}
	r.Advance()
	r.Tick(120)
	r.StartRest(60)

	encoded, err := EncodeSnapshot(r.Snapshot())
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}

	decoded, err := DecodeSnapshot(encoded)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	restored := NewRunner(w)
	if err := restored.Restore(decoded); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if b, e := restored.Position(); b != 0 || e != 1 {
		t.Errorf("restored position = (%d, %d), want (0, 1)", b, e)
	}
	if restored.Elapsed() != 120 {
		t.Errorf("restored elapsed = %d, want 120", restored.Elapsed())
	}

	restored.Retreat()
	if !restored.SetCompleted(1) {
		t.Error("restored runner lost the completed set on the first exercise")
	}
}

// TestDecodeSnapshotRejects verifies malformed payloads, wrong versions and
// negative cursors all fail rather than partially restoring.
func TestDecodeSnapshotRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"version": 1, "current_block`},
		{"not json", "hello"},
		{"wrong version", `{"version": 99, "current_block_index": 0, "current_exercise_index": 0}`},
		{"missing version", `{"current_block_index": 0, "current_exercise_index": 0}`},
		{"negative cursor", `{"version": 1, "current_block_index": -1, "current_exercise_index": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSnapshot(tt.raw); err == nil {
				t.Errorf("DecodeSnapshot(%q) succeeded, want error", tt.raw)
			}
		})
	}
}

// TestDecodeSnapshotDefaults verifies a minimal valid snapshot decodes with
// a non-nil set-log map.
func TestDecodeSnapshotDefaults(t *testing.T) {
	s, err := DecodeSnapshot(`{"version": 1, "current_block_index": 0, "current_exercise_index": 0}`)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if s.SetLogs == nil {
		t.Error("SetLogs should default to an empty map")
	}
}

// TestRestoreBoundsCheck verifies a snapshot whose cursor points outside the
// workout's current shape is rejected, covering workouts edited between
// pause and resume.
func TestRestoreBoundsCheck(t *testing.T) {
	w := testWorkout()

	tests := []struct {
		name string
		snap Snapshot
	}{
		{"block out of range", Snapshot{Version: 1, CurrentBlockIndex: 5}},
		{"exercise out of range", Snapshot{Version: 1, CurrentBlockIndex: 1, CurrentExerciseIndex: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(w)
			err := r.Restore(tt.snap)
			if err == nil {
				t.Fatal("Restore succeeded, want out-of-range error")
			}
			if !strings.Contains(err.Error(), "out of range") {
				t.Errorf("error = %v, want out-of-range", err)
			}
		})
	}
}

// TestSnapshotValidate verifies the field checks used before a snapshot is
// stored: current version and non-negative cursor pass, anything else fails.
func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		snap    Snapshot
		wantErr bool
	}{
		{"valid", Snapshot{Version: SnapshotVersion}, false},
		{"zero version", Snapshot{}, true},
		{"future version", Snapshot{Version: SnapshotVersion + 1}, true},
		{"negative block", Snapshot{Version: SnapshotVersion, CurrentBlockIndex: -1}, true},
		{"negative exercise", Snapshot{Version: SnapshotVersion, CurrentExerciseIndex: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSnapshotLogs verifies the snapshot's set state converts into log rows
// carrying the session, block, exercise and measurements, so resume can
// reconcile the database with the paused in-memory state.
func TestSnapshotLogs(t *testing.T) {
	w := testWorkout()
	r := NewRunner(w)
	sessionID := uuid.New()

	ten := 10
	if _, err := r.MarkSet(1, models.Measurements{LeftReps: &ten}, "clean"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.MarkSet(2, models.Measurements{}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := r.MarkSet(2, models.Measurements{}, ""); err != nil { // toggle back off
		t.Fatal(err)
	}

	logs, err := r.Snapshot().Logs(sessionID)
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d log rows, want 2", len(logs))
	}

	first := w.Blocks[0].Exercises[0]
	for _, l := range logs {
		if l.SessionID != sessionID {
			t.Errorf("SessionID = %s, want %s", l.SessionID, sessionID)
		}
		if l.BlockID != first.BlockID || l.ExerciseID != first.ExerciseID {
			t.Errorf("log bound to (%s, %s), want current exercise", l.BlockID, l.ExerciseID)
		}
		switch l.SetNumber {
		case 1:
			if !l.Completed || l.LeftReps == nil || *l.LeftReps != 10 {
				t.Errorf("set 1 = %+v, want completed with measurements", l)
			}
			if l.Notes == nil || *l.Notes != "clean" {
				t.Errorf("set 1 notes = %v, want clean", l.Notes)
			}
		case 2:
			if l.Completed {
				t.Error("set 2 was toggled back off and must not be completed")
			}
		default:
			t.Errorf("unexpected set number %d", l.SetNumber)
		}
	}
}

// TestSnapshotLogsMalformedKey verifies a key that is not blockID/exerciseID
// fails instead of producing rows with zero IDs.
func TestSnapshotLogsMalformedKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"no separator", "not-a-key"},
		{"bad block id", "nope/" + uuid.NewString()},
		{"bad exercise id", uuid.NewString() + "/nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{
				Version: SnapshotVersion,
				SetLogs: map[string][]SetLog{tt.key: {{SetNumber: 1, Completed: true}}},
			}
			if _, err := snap.Logs(uuid.New()); err == nil {
				t.Errorf("Logs with key %q succeeded, want error", tt.key)
			}
		})
	}
}

// TestEncodeSnapshotStampsVersion verifies encoding always writes the
// current version even when the caller left it zero.
func TestEncodeSnapshotStampsVersion(t *testing.T) {
	encoded, err := EncodeSnapshot(Snapshot{})
	if err != nil {
		t.Fatal(err)
	}
	s, err := DecodeSnapshot(encoded)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if s.Version != SnapshotVersion {
		t.Errorf("Version = %d, want %d", s.Version, SnapshotVersion)
	}
}
