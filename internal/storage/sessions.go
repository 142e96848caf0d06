package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/pitchlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionCols = `id, user_id, workout_id, started_at, completed_at,
	 status, mode, current_block_id, notes, paused_at, paused_state`

// ListSessions returns a user's sessions, newest first.
func (db *DB) ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+sessionCols+` FROM workout_sessions
		 WHERE user_id = $1 ORDER BY started_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// GetSession retrieves one session. Returns ErrNotFound when missing.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	row := db.q.QueryRow(ctx,
		`SELECT `+sessionCols+` FROM workout_sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// GetActiveSession returns the user's in-progress session, or nil.
func (db *DB) GetActiveSession(ctx context.Context, userID int) (*models.WorkoutSession, error) {
	row := db.q.QueryRow(ctx,
		`SELECT `+sessionCols+` FROM workout_sessions
		 WHERE user_id = $1 AND status = $2
		 ORDER BY started_at DESC LIMIT 1`,
		userID, models.SessionInProgress)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active session: %w", err)
	}
	return &s, nil
}

// ListPausedSessions returns paused sessions, most recently paused first.
func (db *DB) ListPausedSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+sessionCols+` FROM workout_sessions
		 WHERE user_id = $1 AND status = $2
		 ORDER BY paused_at DESC`,
		userID, models.SessionPaused)
	if err != nil {
		return nil, fmt.Errorf("querying paused sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// CreateSession starts a new session row in in_progress state.
func (db *DB) CreateSession(ctx context.Context, s models.WorkoutSession) (models.WorkoutSession, error) {
	row := db.q.QueryRow(ctx,
		`INSERT INTO workout_sessions (user_id, workout_id, started_at, status, mode, notes)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING `+sessionCols,
		s.UserID, s.WorkoutID, s.StartedAt, s.Status, s.Mode, s.Notes)
	out, err := scanSession(row)
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("inserting session: %w", err)
	}
	return out, nil
}

// PauseSession transitions in_progress → paused, storing the snapshot
// wholesale on the session row.
func (db *DB) PauseSession(ctx context.Context, id uuid.UUID, snapshot string, currentBlockID *uuid.UUID) (*models.WorkoutSession, error) {
	row := db.q.QueryRow(ctx,
		`UPDATE workout_sessions
		 SET status = $2, paused_at = NOW(), paused_state = $3, current_block_id = $4
		 WHERE id = $1 AND status = $5
		 RETURNING `+sessionCols,
		id, models.SessionPaused, snapshot, currentBlockID, models.SessionInProgress)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("pausable session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("pausing session: %w", err)
	}
	return &s, nil
}

// ResumeSession transitions paused → in_progress and clears the pause
// metadata. The caller reads the snapshot before calling this.
func (db *DB) ResumeSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	row := db.q.QueryRow(ctx,
		`UPDATE workout_sessions
		 SET status = $2, paused_at = NULL, paused_state = NULL
		 WHERE id = $1 AND status = $3
		 RETURNING `+sessionCols,
		id, models.SessionInProgress, models.SessionPaused)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("paused session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("resuming session: %w", err)
	}
	return &s, nil
}

// CompleteSession transitions a non-completed session to completed.
func (db *DB) CompleteSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	row := db.q.QueryRow(ctx,
		`UPDATE workout_sessions
		 SET status = $2, completed_at = NOW(), paused_at = NULL, paused_state = NULL
		 WHERE id = $1 AND status != $2
		 RETURNING `+sessionCols,
		id, models.SessionCompleted)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("completable session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("completing session: %w", err)
	}
	return &s, nil
}

// DeleteSession removes a session and its logs, children first.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := db.q.Exec(ctx,
		`DELETE FROM exercise_logs WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("deleting session logs: %w", err)
	}
	if _, err := db.q.Exec(ctx,
		`DELETE FROM workout_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (models.WorkoutSession, error) {
	var s models.WorkoutSession
	err := row.Scan(&s.ID, &s.UserID, &s.WorkoutID, &s.StartedAt, &s.CompletedAt,
		&s.Status, &s.Mode, &s.CurrentBlockID, &s.Notes, &s.PausedAt, &s.PausedState)
	return s, err
}

func scanSessions(rows pgx.Rows) ([]models.WorkoutSession, error) {
	var result []models.WorkoutSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
