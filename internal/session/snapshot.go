package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claude/pitchlog/internal/models"
	"github.com/google/uuid"
)

// SnapshotVersion is the current paused-state format. Snapshots with a
// different version are discarded rather than partially restored.
const SnapshotVersion = 1

// SetLog is one set's state inside a snapshot: whether it was marked
// complete and the measurements captured at that moment.
type SetLog struct {
	SetNumber int  `json:"set_number"`
	Completed bool `json:"completed"`
	models.Measurements
	Notes string `json:"notes,omitempty"`
}

// Snapshot is the full paused-state record for a session. It is written
// wholesale on pause and read wholesale on resume; there is no partial
// update path.
type Snapshot struct {
	Version              int                 `json:"version"`
	CurrentBlockIndex    int                 `json:"current_block_index"`
	CurrentExerciseIndex int                 `json:"current_exercise_index"`
	SetLogs              map[string][]SetLog `json:"set_logs"` // keyed blockID/exerciseID
	ElapsedSeconds       int                 `json:"elapsed_seconds"`
	RestSeconds          int                 `json:"rest_seconds"`
	RestRunning          bool                `json:"rest_running"`
}

// EncodeSnapshot serializes a snapshot for storage on the session row.
func EncodeSnapshot(s Snapshot) (string, error) {
	s.Version = SnapshotVersion
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	return string(data), nil
}

// Validate checks the version and cursor fields. Workout-shape bounds are
// checked separately by Runner.Restore, which knows the actual shape.
func (s Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.CurrentBlockIndex < 0 || s.CurrentExerciseIndex < 0 {
		return fmt.Errorf("snapshot cursor out of range (%d, %d)", s.CurrentBlockIndex, s.CurrentExerciseIndex)
	}
	return nil
}

// DecodeSnapshot parses a stored snapshot. It returns an error for
// malformed payloads and for unknown versions; callers treat any error as
// "start fresh" rather than attempting a best-effort restore.
func DecodeSnapshot(raw string) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	if s.SetLogs == nil {
		s.SetLogs = map[string][]SetLog{}
	}
	return s, nil
}

// Logs converts the snapshot's set state into exercise log rows for the
// given session, for reconciling the database with the paused in-memory
// state on resume. A key that does not parse means the snapshot is corrupt.
func (s Snapshot) Logs(sessionID uuid.UUID) ([]models.ExerciseLog, error) {
	var logs []models.ExerciseLog
	for key, sets := range s.SetLogs {
		blockPart, exercisePart, ok := strings.Cut(key, "/")
		if !ok {
			return nil, fmt.Errorf("malformed set-log key %q", key)
		}
		blockID, err := uuid.Parse(blockPart)
		if err != nil {
			return nil, fmt.Errorf("parsing block id in set-log key %q: %w", key, err)
		}
		exerciseID, err := uuid.Parse(exercisePart)
		if err != nil {
			return nil, fmt.Errorf("parsing exercise id in set-log key %q: %w", key, err)
		}
		for _, set := range sets {
			var notes *string
			if set.Notes != "" {
				n := set.Notes
				notes = &n
			}
			logs = append(logs, models.ExerciseLog{
				SessionID:    sessionID,
				BlockID:      blockID,
				ExerciseID:   exerciseID,
				SetNumber:    set.SetNumber,
				Completed:    set.Completed,
				Measurements: set.Measurements,
				Notes:        notes,
			})
		}
	}
	return logs, nil
}

// logKey builds the per-exercise key used in Snapshot.SetLogs.
func logKey(blockID, exerciseID string) string {
	return blockID + "/" + exerciseID
}
