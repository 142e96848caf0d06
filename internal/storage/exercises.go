package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/pitchlog/internal/models"
	"github.com/jackc/pgx/v5"
)

const exerciseCols = `id, name, category, type, tracks_left_right, tracks_near_far,
	 tracks_weight, tracks_distance, tracks_time, tracks_heart_rate,
	 description, is_custom, user_id`

// ListExercises returns the full catalog ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+exerciseCols+` FROM exercises ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// ListExercisesByCategory returns catalog entries in one category.
func (db *DB) ListExercisesByCategory(ctx context.Context, category string) ([]models.Exercise, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+exerciseCols+` FROM exercises WHERE category = $1 ORDER BY name`, category)
	if err != nil {
		return nil, fmt.Errorf("querying exercises by category: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// FindExerciseByName looks up a catalog entry case-insensitively.
// Returns nil when no entry matches.
func (db *DB) FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	row := db.q.QueryRow(ctx,
		`SELECT `+exerciseCols+` FROM exercises WHERE lower(name) = $1`,
		strings.ToLower(name))
	ex, err := scanExercise(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise by name: %w", err)
	}
	return &ex, nil
}

// CreateExercise upserts a catalog entry keyed by case-insensitive name.
// Concurrent uploads racing to create the same name converge on one row;
// the bool reports whether this call actually inserted it.
func (db *DB) CreateExercise(ctx context.Context, ex models.Exercise) (models.Exercise, bool, error) {
	row := db.q.QueryRow(ctx,
		`INSERT INTO exercises (name, category, type, tracks_left_right, tracks_near_far,
		 tracks_weight, tracks_distance, tracks_time, tracks_heart_rate,
		 description, is_custom, user_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 ON CONFLICT (lower(name)) DO UPDATE SET name = exercises.name
		 RETURNING `+exerciseCols+`, (xmax = 0) AS inserted`,
		ex.Name, ex.Category, ex.Type, ex.TracksLeftRight, ex.TracksNearFar,
		ex.TracksWeight, ex.TracksDistance, ex.TracksTime, ex.TracksHeartRate,
		ex.Description, ex.IsCustom, ex.UserID)

	var out models.Exercise
	var inserted bool
	err := row.Scan(&out.ID, &out.Name, &out.Category, &out.Type,
		&out.TracksLeftRight, &out.TracksNearFar, &out.TracksWeight,
		&out.TracksDistance, &out.TracksTime, &out.TracksHeartRate,
		&out.Description, &out.IsCustom, &out.UserID, &inserted)
	if err != nil {
		return models.Exercise{}, false, fmt.Errorf("upserting exercise: %w", err)
	}
	return out, inserted, nil
}

func scanExercise(row pgx.Row) (models.Exercise, error) {
	var ex models.Exercise
	err := row.Scan(&ex.ID, &ex.Name, &ex.Category, &ex.Type,
		&ex.TracksLeftRight, &ex.TracksNearFar, &ex.TracksWeight,
		&ex.TracksDistance, &ex.TracksTime, &ex.TracksHeartRate,
		&ex.Description, &ex.IsCustom, &ex.UserID)
	return ex, err
}

func scanExercises(rows pgx.Rows) ([]models.Exercise, error) {
	var result []models.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}
