package session

import (
	"fmt"

	"github.com/claude/pitchlog/internal/models"
)

// Runner is the in-memory cursor over a workout: which block and exercise
// the user is on, and the per-set completion state for every exercise
// visited so far. It is the canonical state machine behind pause/resume;
// a Snapshot is exactly a serialized Runner position.
type Runner struct {
	workout models.WorkoutDetail

	blockIdx    int
	exerciseIdx int
	setLogs     map[string][]SetLog

	elapsedSeconds int
	restSeconds    int
	restRunning    bool
}

// NewRunner positions a runner at the first exercise of the first block.
func NewRunner(w models.WorkoutDetail) *Runner {
	return &Runner{
		workout: w,
		setLogs: map[string][]SetLog{},
	}
}

// Position returns the current (block, exercise) cursor.
func (r *Runner) Position() (blockIdx, exerciseIdx int) {
	return r.blockIdx, r.exerciseIdx
}

// CurrentBlock returns the block under the cursor, or nil for an empty workout.
func (r *Runner) CurrentBlock() *models.BlockDetail {
	if r.blockIdx >= len(r.workout.Blocks) {
		return nil
	}
	return &r.workout.Blocks[r.blockIdx]
}

// CurrentExercise returns the exercise under the cursor, or nil.
func (r *Runner) CurrentExercise() *models.BlockExerciseDetail {
	b := r.CurrentBlock()
	if b == nil || r.exerciseIdx >= len(b.Exercises) {
		return nil
	}
	return &b.Exercises[r.exerciseIdx]
}

// MarkSet toggles completion of a set on the current exercise. Marking an
// incomplete set stores the measurements and completes it; marking an
// already-completed set un-marks it and keeps the old measurements.
// It returns the resulting state of the set.
func (r *Runner) MarkSet(setNumber int, m models.Measurements, notes string) (SetLog, error) {
	ex := r.CurrentExercise()
	if ex == nil {
		return SetLog{}, fmt.Errorf("no exercise at cursor (%d, %d)", r.blockIdx, r.exerciseIdx)
	}
	key := logKey(ex.BlockID.String(), ex.ExerciseID.String())
	logs := r.setLogs[key]
	for i := range logs {
		if logs[i].SetNumber == setNumber {
			if logs[i].Completed {
				logs[i].Completed = false
			} else {
				logs[i].Completed = true
				logs[i].Measurements = m
				logs[i].Notes = notes
			}
			return logs[i], nil
		}
	}
	entry := SetLog{SetNumber: setNumber, Completed: true, Measurements: m, Notes: notes}
	r.setLogs[key] = append(logs, entry)
	return entry, nil
}

// SetCompleted reports whether a set on the current exercise is marked done.
func (r *Runner) SetCompleted(setNumber int) bool {
	ex := r.CurrentExercise()
	if ex == nil {
		return false
	}
	for _, l := range r.setLogs[logKey(ex.BlockID.String(), ex.ExerciseID.String())] {
		if l.SetNumber == setNumber && l.Completed {
			return true
		}
	}
	return false
}

// Advance moves the cursor to the next exercise, crossing into the next
// block when the current one is exhausted. Moving past the final exercise
// of the final block reports done=true and leaves the cursor in place.
// Logged sets for the exercise being left are retained.
func (r *Runner) Advance() (done bool) {
	b := r.CurrentBlock()
	if b == nil {
		return true
	}
	if r.exerciseIdx < len(b.Exercises)-1 {
		r.exerciseIdx++
		r.restSeconds = 0
		r.restRunning = false
		return false
	}
	if r.blockIdx < len(r.workout.Blocks)-1 {
		r.blockIdx++
		r.exerciseIdx = 0
		r.restSeconds = 0
		r.restRunning = false
		return false
	}
	return true
}

// Retreat moves the cursor to the previous exercise, crossing block
// boundaries. At the very first exercise it is a no-op.
func (r *Runner) Retreat() {
	if r.exerciseIdx > 0 {
		r.exerciseIdx--
		return
	}
	if r.blockIdx > 0 {
		r.blockIdx--
		prev := r.workout.Blocks[r.blockIdx]
		r.exerciseIdx = len(prev.Exercises) - 1
		if r.exerciseIdx < 0 {
			r.exerciseIdx = 0
		}
	}
}

// Tick advances the elapsed-workout clock and, when a rest timer is
// running, counts it down.
func (r *Runner) Tick(seconds int) {
	r.elapsedSeconds += seconds
	if r.restRunning {
		r.restSeconds -= seconds
		if r.restSeconds <= 0 {
			r.restSeconds = 0
			r.restRunning = false
		}
	}
}

// StartRest arms the rest countdown.
func (r *Runner) StartRest(seconds int) {
	if seconds <= 0 {
		return
	}
	r.restSeconds = seconds
	r.restRunning = true
}

// Elapsed returns the accumulated workout seconds.
func (r *Runner) Elapsed() int { return r.elapsedSeconds }

// Snapshot captures the runner's full state for pause.
func (r *Runner) Snapshot() Snapshot {
	logs := make(map[string][]SetLog, len(r.setLogs))
	for k, v := range r.setLogs {
		logs[k] = append([]SetLog(nil), v...)
	}
	return Snapshot{
		Version:              SnapshotVersion,
		CurrentBlockIndex:    r.blockIdx,
		CurrentExerciseIndex: r.exerciseIdx,
		SetLogs:              logs,
		ElapsedSeconds:       r.elapsedSeconds,
		RestSeconds:          r.restSeconds,
		RestRunning:          r.restRunning,
	}
}

// Restore rehydrates the runner from a snapshot, bounds-checking the
// cursor against the workout's actual shape. An out-of-range cursor is an
// error; the caller falls back to a fresh start.
func (r *Runner) Restore(s Snapshot) error {
	if s.CurrentBlockIndex >= len(r.workout.Blocks) {
		return fmt.Errorf("snapshot block index %d out of range (%d blocks)", s.CurrentBlockIndex, len(r.workout.Blocks))
	}
	if n := len(r.workout.Blocks[s.CurrentBlockIndex].Exercises); s.CurrentExerciseIndex >= n {
		return fmt.Errorf("snapshot exercise index %d out of range (%d exercises)", s.CurrentExerciseIndex, n)
	}
	r.blockIdx = s.CurrentBlockIndex
	r.exerciseIdx = s.CurrentExerciseIndex
	r.setLogs = map[string][]SetLog{}
	for k, v := range s.SetLogs {
		r.setLogs[k] = append([]SetLog(nil), v...)
	}
	r.elapsedSeconds = s.ElapsedSeconds
	r.restSeconds = s.RestSeconds
	r.restRunning = s.RestRunning
	return nil
}
