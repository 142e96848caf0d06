package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/claude/pitchlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// SessionStats is the live dashboard summary, computed from completed
// sessions and their logs on every call.
type SessionStats struct {
	TotalSessions    int `json:"total_sessions"`
	CurrentStreak    int `json:"current_streak"`
	ThisWeekSessions int `json:"this_week_sessions"`
	AverageAccuracy  int `json:"average_accuracy"`
}

// GetSessionStats computes the dashboard summary for a user.
//
// The streak counts consecutive calendar days with at least one completed
// session, anchored at today, or at yesterday when today has none yet. The
// weekly count starts on Monday. Accuracy treats near reps as on target and
// far reps as missed, averaged per logged set.
func (db *DB) GetSessionStats(ctx context.Context, userID int, now time.Time) (SessionStats, error) {
	rows, err := db.q.Query(ctx,
		`SELECT completed_at FROM workout_sessions
		 WHERE user_id = $1 AND status = $2 AND completed_at IS NOT NULL
		 ORDER BY completed_at DESC`,
		userID, models.SessionCompleted)
	if err != nil {
		return SessionStats{}, fmt.Errorf("querying completed sessions: %w", err)
	}
	defer rows.Close()

	var completed []time.Time
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return SessionStats{}, fmt.Errorf("scanning completion time: %w", err)
		}
		completed = append(completed, at.In(now.Location()))
	}
	if err := rows.Err(); err != nil {
		return SessionStats{}, fmt.Errorf("reading completed sessions: %w", err)
	}

	stats := SessionStats{
		TotalSessions: len(completed),
		CurrentStreak: streakDays(completed, now),
	}

	monday := startOfWeek(now)
	for _, at := range completed {
		if !at.Before(monday) {
			stats.ThisWeekSessions++
		}
	}

	stats.AverageAccuracy, err = db.averageAccuracy(ctx, userID)
	if err != nil {
		return SessionStats{}, err
	}
	return stats, nil
}

func (db *DB) averageAccuracy(ctx context.Context, userID int) (int, error) {
	rows, err := db.q.Query(ctx,
		`SELECT l.left_near_reps, l.left_far_reps, l.right_near_reps, l.right_far_reps
		 FROM exercise_logs l
		 JOIN workout_sessions s ON s.id = l.session_id
		 WHERE s.user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("querying accuracy logs: %w", err)
	}
	defer rows.Close()

	var total float64
	var count int
	for rows.Next() {
		var leftNear, leftFar, rightNear, rightFar *int
		if err := rows.Scan(&leftNear, &leftFar, &rightNear, &rightFar); err != nil {
			return 0, fmt.Errorf("scanning accuracy log: %w", err)
		}
		onTarget := intOrZero(leftNear) + intOrZero(rightNear)
		attempts := onTarget + intOrZero(leftFar) + intOrZero(rightFar)
		if attempts > 0 {
			total += float64(onTarget) / float64(attempts) * 100
			count++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("reading accuracy logs: %w", err)
	}
	if count == 0 {
		return 0, nil
	}
	return int(math.Round(total / float64(count))), nil
}

// streakDays counts consecutive days with a completion, walking backwards
// from today, or from yesterday when today is still empty.
func streakDays(completed []time.Time, now time.Time) int {
	if len(completed) == 0 {
		return 0
	}
	days := make(map[time.Time]bool, len(completed))
	for _, at := range completed {
		days[startOfDay(at)] = true
	}

	check := startOfDay(now)
	if !days[check] {
		check = check.AddDate(0, 0, -1)
	}
	streak := 0
	for days[check] {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// GetUserStats reads the denormalized rollup row, or nil before the first
// refresh.
func (db *DB) GetUserStats(ctx context.Context, userID int) (*models.UserStats, error) {
	row := db.q.QueryRow(ctx,
		`SELECT id, user_id, total_workouts, current_streak, longest_streak,
		   last_workout_date, total_shots_left, total_shots_right,
		   on_target_left, on_target_right, total_passes_left, total_passes_right,
		   total_distance, updated_at
		 FROM user_stats WHERE user_id = $1`, userID)
	var s models.UserStats
	err := row.Scan(&s.ID, &s.UserID, &s.TotalWorkouts, &s.CurrentStreak, &s.LongestStreak,
		&s.LastWorkoutDate, &s.TotalShotsLeft, &s.TotalShotsRight,
		&s.OnTargetLeft, &s.OnTargetRight, &s.TotalPassesLeft, &s.TotalPassesRight,
		&s.TotalDistance, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user stats: %w", err)
	}
	return &s, nil
}

// RefreshUserStats recomputes the rollup row from sessions and logs and
// upserts it. Called after each session completion.
func (db *DB) RefreshUserStats(ctx context.Context, userID int, now time.Time) error {
	stats, err := db.GetSessionStats(ctx, userID, now)
	if err != nil {
		return err
	}

	var longest int
	var lastWorkout *time.Time
	row := db.q.QueryRow(ctx,
		`SELECT COALESCE(longest_streak, 0) FROM user_stats WHERE user_id = $1`, userID)
	if err := row.Scan(&longest); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("querying longest streak: %w", err)
	}
	if stats.CurrentStreak > longest {
		longest = stats.CurrentStreak
	}

	row = db.q.QueryRow(ctx,
		`SELECT MAX(completed_at) FROM workout_sessions
		 WHERE user_id = $1 AND status = $2`,
		userID, models.SessionCompleted)
	if err := row.Scan(&lastWorkout); err != nil {
		return fmt.Errorf("querying last workout date: %w", err)
	}

	row = db.q.QueryRow(ctx,
		`SELECT
		   COALESCE(SUM(COALESCE(l.left_near_reps, 0) + COALESCE(l.left_far_reps, 0)), 0),
		   COALESCE(SUM(COALESCE(l.right_near_reps, 0) + COALESCE(l.right_far_reps, 0)), 0),
		   COALESCE(SUM(l.left_near_reps), 0),
		   COALESCE(SUM(l.right_near_reps), 0),
		   COALESCE(SUM(l.left_reps), 0),
		   COALESCE(SUM(l.right_reps), 0),
		   COALESCE(SUM(l.distance), 0)
		 FROM exercise_logs l
		 JOIN workout_sessions s ON s.id = l.session_id
		 WHERE s.user_id = $1 AND l.completed`, userID)
	var shotsLeft, shotsRight, onLeft, onRight, passesLeft, passesRight int
	var distance float64
	if err := row.Scan(&shotsLeft, &shotsRight, &onLeft, &onRight,
		&passesLeft, &passesRight, &distance); err != nil {
		return fmt.Errorf("querying log totals: %w", err)
	}

	_, err = db.q.Exec(ctx,
		`INSERT INTO user_stats (user_id, total_workouts, current_streak, longest_streak,
		   last_workout_date, total_shots_left, total_shots_right,
		   on_target_left, on_target_right, total_passes_left, total_passes_right,
		   total_distance, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW())
		 ON CONFLICT (user_id) DO UPDATE SET
		   total_workouts = EXCLUDED.total_workouts,
		   current_streak = EXCLUDED.current_streak,
		   longest_streak = EXCLUDED.longest_streak,
		   last_workout_date = EXCLUDED.last_workout_date,
		   total_shots_left = EXCLUDED.total_shots_left,
		   total_shots_right = EXCLUDED.total_shots_right,
		   on_target_left = EXCLUDED.on_target_left,
		   on_target_right = EXCLUDED.on_target_right,
		   total_passes_left = EXCLUDED.total_passes_left,
		   total_passes_right = EXCLUDED.total_passes_right,
		   total_distance = EXCLUDED.total_distance,
		   updated_at = NOW()`,
		userID, stats.TotalSessions, stats.CurrentStreak, longest, lastWorkout,
		shotsLeft, shotsRight, onLeft, onRight, passesLeft, passesRight, distance)
	if err != nil {
		return fmt.Errorf("upserting user stats: %w", err)
	}
	return nil
}
