package storage

import (
	"context"
	"fmt"

	"github.com/claude/pitchlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const logCols = `id, session_id, block_id, exercise_id, set_number, completed,
	 left_reps, right_reps, left_near_reps, left_far_reps, right_near_reps,
	 right_far_reps, weight, distance, duration_sec, heart_rate, notes, created_at`

// RecordSet upserts one set log, keyed by (session, block, exercise, set
// number). Recording the same set twice flips completed back off while
// keeping the row, so re-recording preserves the set's identity.
func (db *DB) RecordSet(ctx context.Context, l models.ExerciseLog) (models.ExerciseLog, error) {
	row := db.q.QueryRow(ctx,
		`INSERT INTO exercise_logs (session_id, block_id, exercise_id, set_number, completed,
		   left_reps, right_reps, left_near_reps, left_far_reps, right_near_reps,
		   right_far_reps, weight, distance, duration_sec, heart_rate, notes)
		 VALUES ($1,$2,$3,$4,TRUE,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		 ON CONFLICT (session_id, block_id, exercise_id, set_number) DO UPDATE SET
		   completed = NOT exercise_logs.completed,
		   left_reps = CASE WHEN exercise_logs.completed THEN exercise_logs.left_reps ELSE EXCLUDED.left_reps END,
		   right_reps = CASE WHEN exercise_logs.completed THEN exercise_logs.right_reps ELSE EXCLUDED.right_reps END,
		   left_near_reps = CASE WHEN exercise_logs.completed THEN exercise_logs.left_near_reps ELSE EXCLUDED.left_near_reps END,
		   left_far_reps = CASE WHEN exercise_logs.completed THEN exercise_logs.left_far_reps ELSE EXCLUDED.left_far_reps END,
		   right_near_reps = CASE WHEN exercise_logs.completed THEN exercise_logs.right_near_reps ELSE EXCLUDED.right_near_reps END,
		   right_far_reps = CASE WHEN exercise_logs.completed THEN exercise_logs.right_far_reps ELSE EXCLUDED.right_far_reps END,
		   weight = CASE WHEN exercise_logs.completed THEN exercise_logs.weight ELSE EXCLUDED.weight END,
		   distance = CASE WHEN exercise_logs.completed THEN exercise_logs.distance ELSE EXCLUDED.distance END,
		   duration_sec = CASE WHEN exercise_logs.completed THEN exercise_logs.duration_sec ELSE EXCLUDED.duration_sec END,
		   heart_rate = CASE WHEN exercise_logs.completed THEN exercise_logs.heart_rate ELSE EXCLUDED.heart_rate END,
		   notes = CASE WHEN exercise_logs.completed THEN exercise_logs.notes ELSE EXCLUDED.notes END
		 RETURNING `+logCols,
		l.SessionID, l.BlockID, l.ExerciseID, l.SetNumber,
		l.LeftReps, l.RightReps, l.LeftNearReps, l.LeftFarReps, l.RightNearReps,
		l.RightFarReps, l.Weight, l.Distance, l.DurationSec, l.HeartRate, l.Notes)
	out, err := scanLog(row)
	if err != nil {
		return models.ExerciseLog{}, fmt.Errorf("recording set: %w", err)
	}
	return out, nil
}

// ListSessionLogs returns every log row for a session in block/set order.
func (db *DB) ListSessionLogs(ctx context.Context, sessionID uuid.UUID) ([]models.ExerciseLog, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+logCols+` FROM exercise_logs
		 WHERE session_id = $1
		 ORDER BY created_at, set_number`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session logs: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// ReplaceSessionLogs rewrites the session's logs from a snapshot, used when
// resuming a paused session whose in-memory state is authoritative.
func (db *DB) ReplaceSessionLogs(ctx context.Context, sessionID uuid.UUID, logs []models.ExerciseLog) error {
	if _, err := db.q.Exec(ctx,
		`DELETE FROM exercise_logs WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clearing session logs: %w", err)
	}
	for _, l := range logs {
		_, err := db.q.Exec(ctx,
			`INSERT INTO exercise_logs (session_id, block_id, exercise_id, set_number, completed,
			   left_reps, right_reps, left_near_reps, left_far_reps, right_near_reps,
			   right_far_reps, weight, distance, duration_sec, heart_rate, notes)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			sessionID, l.BlockID, l.ExerciseID, l.SetNumber, l.Completed,
			l.LeftReps, l.RightReps, l.LeftNearReps, l.LeftFarReps, l.RightNearReps,
			l.RightFarReps, l.Weight, l.Distance, l.DurationSec, l.HeartRate, l.Notes)
		if err != nil {
			return fmt.Errorf("inserting log for set %d: %w", l.SetNumber, err)
		}
	}
	return nil
}

func scanLog(row pgx.Row) (models.ExerciseLog, error) {
	var l models.ExerciseLog
	err := row.Scan(&l.ID, &l.SessionID, &l.BlockID, &l.ExerciseID, &l.SetNumber, &l.Completed,
		&l.LeftReps, &l.RightReps, &l.LeftNearReps, &l.LeftFarReps, &l.RightNearReps,
		&l.RightFarReps, &l.Weight, &l.Distance, &l.DurationSec, &l.HeartRate, &l.Notes, &l.CreatedAt)
	return l, err
}
