package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/pitchlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const workoutCols = `id, user_id, day_of_week, mode, title, description,
	 duration, location, equipment, is_active, created_at`

// ListWorkouts returns a user's active workouts ordered by day of week.
func (db *DB) ListWorkouts(ctx context.Context, userID int) ([]models.Workout, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+workoutCols+` FROM workouts
		 WHERE user_id = $1 AND is_active
		 ORDER BY day_of_week, mode`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkout retrieves a workout by ID. Returns ErrNotFound when missing.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	row := db.q.QueryRow(ctx,
		`SELECT `+workoutCols+` FROM workouts WHERE id = $1`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	return &w, nil
}

// GetWorkoutByDay finds a user's active workout for one day and mode.
// Returns nil (no error) when none is scheduled.
func (db *DB) GetWorkoutByDay(ctx context.Context, userID int, dayOfWeek, mode string) (*models.Workout, error) {
	row := db.q.QueryRow(ctx,
		`SELECT `+workoutCols+` FROM workouts
		 WHERE user_id = $1 AND day_of_week = $2 AND mode = $3 AND is_active
		 LIMIT 1`, userID, dayOfWeek, mode)
	w, err := scanWorkout(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout by day: %w", err)
	}
	return &w, nil
}

// ListWorkoutsByDay returns every active workout for one day and mode,
// oldest first. Appended uploads can stack more than one.
func (db *DB) ListWorkoutsByDay(ctx context.Context, userID int, dayOfWeek, mode string) ([]models.Workout, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+workoutCols+` FROM workouts
		 WHERE user_id = $1 AND day_of_week = $2 AND mode = $3 AND is_active
		 ORDER BY created_at`, userID, dayOfWeek, mode)
	if err != nil {
		return nil, fmt.Errorf("querying workouts by day: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkoutDetail loads a workout with its ordered blocks and exercises.
func (db *DB) GetWorkoutDetail(ctx context.Context, id uuid.UUID) (*models.WorkoutDetail, error) {
	w, err := db.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.WorkoutDetail{Workout: *w}
	blocks, err := db.GetWorkoutBlocks(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, b := range blocks {
		exercises, err := db.GetBlockExercises(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		detail.Blocks = append(detail.Blocks, models.BlockDetail{
			WorkoutBlock: b,
			Exercises:    exercises,
		})
	}
	return detail, nil
}

// CreateWorkout inserts a workout row.
func (db *DB) CreateWorkout(ctx context.Context, w models.Workout) (models.Workout, error) {
	row := db.q.QueryRow(ctx,
		`INSERT INTO workouts (user_id, day_of_week, mode, title, description,
		 duration, location, equipment, is_active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING `+workoutCols,
		w.UserID, w.DayOfWeek, w.Mode, w.Title, w.Description,
		w.Duration, w.Location, w.Equipment, w.IsActive)
	out, err := scanWorkout(row)
	if err != nil {
		return models.Workout{}, fmt.Errorf("inserting workout: %w", err)
	}
	return out, nil
}

// UpdateWorkout overwrites a workout's mutable fields.
func (db *DB) UpdateWorkout(ctx context.Context, w models.Workout) error {
	tag, err := db.q.Exec(ctx,
		`UPDATE workouts SET day_of_week = $2, mode = $3, title = $4,
		 description = $5, duration = $6, location = $7, equipment = $8, is_active = $9
		 WHERE id = $1`,
		w.ID, w.DayOfWeek, w.Mode, w.Title, w.Description,
		w.Duration, w.Location, w.Equipment, w.IsActive)
	if err != nil {
		return fmt.Errorf("updating workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout %s: %w", w.ID, ErrNotFound)
	}
	return nil
}

// DeleteWorkout hard-deletes a workout and everything hanging off it:
// sessions (with their logs), blocks and block exercises. Children go
// first; the schema has no ON DELETE CASCADE.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	steps := []struct {
		desc string
		sql  string
	}{
		{"clearing session cursors", `UPDATE workout_sessions SET current_block_id = NULL WHERE workout_id = $1`},
		{"deleting exercise logs", `DELETE FROM exercise_logs WHERE session_id IN
			(SELECT id FROM workout_sessions WHERE workout_id = $1)`},
		{"deleting sessions", `DELETE FROM workout_sessions WHERE workout_id = $1`},
		{"deleting block exercises", `DELETE FROM block_exercises WHERE block_id IN
			(SELECT id FROM workout_blocks WHERE workout_id = $1)`},
		{"deleting blocks", `DELETE FROM workout_blocks WHERE workout_id = $1`},
		{"deleting workout", `DELETE FROM workouts WHERE id = $1`},
	}
	for _, s := range steps {
		if _, err := db.q.Exec(ctx, s.sql, id); err != nil {
			return fmt.Errorf("%s: %w", s.desc, err)
		}
	}
	return nil
}

// GetWorkoutBlocks returns a workout's blocks in display order.
func (db *DB) GetWorkoutBlocks(ctx context.Context, workoutID uuid.UUID) ([]models.WorkoutBlock, error) {
	rows, err := db.q.Query(ctx,
		`SELECT id, workout_id, title, duration, "order"
		 FROM workout_blocks WHERE workout_id = $1 ORDER BY "order"`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutBlock
	for rows.Next() {
		var b models.WorkoutBlock
		if err := rows.Scan(&b.ID, &b.WorkoutID, &b.Title, &b.Duration, &b.Order); err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// MaxBlockOrder returns the highest block order in a workout, 0 when empty.
func (db *DB) MaxBlockOrder(ctx context.Context, workoutID uuid.UUID) (int, error) {
	var max int
	err := db.q.QueryRow(ctx,
		`SELECT COALESCE(MAX("order"), 0) FROM workout_blocks WHERE workout_id = $1`,
		workoutID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("querying max block order: %w", err)
	}
	return max, nil
}

// CreateBlock inserts a block row.
func (db *DB) CreateBlock(ctx context.Context, b models.WorkoutBlock) (models.WorkoutBlock, error) {
	row := db.q.QueryRow(ctx,
		`INSERT INTO workout_blocks (workout_id, title, duration, "order")
		 VALUES ($1,$2,$3,$4)
		 RETURNING id, workout_id, title, duration, "order"`,
		b.WorkoutID, b.Title, b.Duration, b.Order)
	var out models.WorkoutBlock
	if err := row.Scan(&out.ID, &out.WorkoutID, &out.Title, &out.Duration, &out.Order); err != nil {
		return models.WorkoutBlock{}, fmt.Errorf("inserting block: %w", err)
	}
	return out, nil
}

// UpdateBlock overwrites a block's title, duration and order.
func (db *DB) UpdateBlock(ctx context.Context, b models.WorkoutBlock) error {
	tag, err := db.q.Exec(ctx,
		`UPDATE workout_blocks SET title = $2, duration = $3, "order" = $4 WHERE id = $1`,
		b.ID, b.Title, b.Duration, b.Order)
	if err != nil {
		return fmt.Errorf("updating block: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("block %s: %w", b.ID, ErrNotFound)
	}
	return nil
}

// DeleteBlock removes one block and its exercises.
func (db *DB) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	if _, err := db.q.Exec(ctx,
		`DELETE FROM block_exercises WHERE block_id = $1`, id); err != nil {
		return fmt.Errorf("deleting block exercises: %w", err)
	}
	if _, err := db.q.Exec(ctx,
		`DELETE FROM workout_blocks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting block: %w", err)
	}
	return nil
}

// DeleteWorkoutBlocks removes all blocks (and their exercises) of a workout.
func (db *DB) DeleteWorkoutBlocks(ctx context.Context, workoutID uuid.UUID) error {
	if _, err := db.q.Exec(ctx,
		`DELETE FROM block_exercises WHERE block_id IN
		 (SELECT id FROM workout_blocks WHERE workout_id = $1)`, workoutID); err != nil {
		return fmt.Errorf("deleting block exercises: %w", err)
	}
	if _, err := db.q.Exec(ctx,
		`DELETE FROM workout_blocks WHERE workout_id = $1`, workoutID); err != nil {
		return fmt.Errorf("deleting blocks: %w", err)
	}
	return nil
}

// GetBlockExercises returns a block's exercises in order, joined with
// their catalog entries.
func (db *DB) GetBlockExercises(ctx context.Context, blockID uuid.UUID) ([]models.BlockExerciseDetail, error) {
	rows, err := db.q.Query(ctx,
		`SELECT be.id, be.block_id, be.exercise_id, be."order",
		 be.sets, be.reps, be.rest, be.notes,
		 e.id, e.name, e.category, e.type, e.tracks_left_right, e.tracks_near_far,
		 e.tracks_weight, e.tracks_distance, e.tracks_time, e.tracks_heart_rate,
		 e.description, e.is_custom, e.user_id
		 FROM block_exercises be
		 JOIN exercises e ON e.id = be.exercise_id
		 WHERE be.block_id = $1
		 ORDER BY be."order"`, blockID)
	if err != nil {
		return nil, fmt.Errorf("querying block exercises: %w", err)
	}
	defer rows.Close()

	var result []models.BlockExerciseDetail
	for rows.Next() {
		var d models.BlockExerciseDetail
		if err := rows.Scan(&d.ID, &d.BlockID, &d.ExerciseID, &d.Order,
			&d.Sets, &d.Reps, &d.Rest, &d.Notes,
			&d.Exercise.ID, &d.Exercise.Name, &d.Exercise.Category, &d.Exercise.Type,
			&d.Exercise.TracksLeftRight, &d.Exercise.TracksNearFar, &d.Exercise.TracksWeight,
			&d.Exercise.TracksDistance, &d.Exercise.TracksTime, &d.Exercise.TracksHeartRate,
			&d.Exercise.Description, &d.Exercise.IsCustom, &d.Exercise.UserID); err != nil {
			return nil, fmt.Errorf("scanning block exercise: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// CreateBlockExercise attaches an exercise to a block.
func (db *DB) CreateBlockExercise(ctx context.Context, e models.BlockExercise) (models.BlockExercise, error) {
	row := db.q.QueryRow(ctx,
		`INSERT INTO block_exercises (block_id, exercise_id, "order", sets, reps, rest, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING id, block_id, exercise_id, "order", sets, reps, rest, notes`,
		e.BlockID, e.ExerciseID, e.Order, e.Sets, e.Reps, e.Rest, e.Notes)
	var out models.BlockExercise
	if err := row.Scan(&out.ID, &out.BlockID, &out.ExerciseID, &out.Order,
		&out.Sets, &out.Reps, &out.Rest, &out.Notes); err != nil {
		return models.BlockExercise{}, fmt.Errorf("inserting block exercise: %w", err)
	}
	return out, nil
}

// UpdateBlockExercise overwrites a block exercise's prescription.
func (db *DB) UpdateBlockExercise(ctx context.Context, e models.BlockExercise) error {
	tag, err := db.q.Exec(ctx,
		`UPDATE block_exercises SET exercise_id = $2, "order" = $3,
		 sets = $4, reps = $5, rest = $6, notes = $7
		 WHERE id = $1`,
		e.ID, e.ExerciseID, e.Order, e.Sets, e.Reps, e.Rest, e.Notes)
	if err != nil {
		return fmt.Errorf("updating block exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("block exercise %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

// DeleteBlockExercise removes one exercise from a block.
func (db *DB) DeleteBlockExercise(ctx context.Context, id uuid.UUID) error {
	if _, err := db.q.Exec(ctx,
		`DELETE FROM block_exercises WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting block exercise: %w", err)
	}
	return nil
}

func scanWorkout(row pgx.Row) (models.Workout, error) {
	var w models.Workout
	err := row.Scan(&w.ID, &w.UserID, &w.DayOfWeek, &w.Mode, &w.Title,
		&w.Description, &w.Duration, &w.Location, &w.Equipment,
		&w.IsActive, &w.CreatedAt)
	return w, err
}
