package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/pitchlog/internal/models"
)

// ProgressEntry is one completed set with its catalog context, dated by the
// session it was logged in.
type ProgressEntry struct {
	Category     string `json:"category"`
	ExerciseName string `json:"exercise_name"`
	SetNumber    int    `json:"set_number"`
	models.Measurements
	Date time.Time `json:"date"`
}

// WeeklyProgress groups completed sets by the Monday their session's week
// started on, keyed "2006-01-02".
type WeeklyProgress struct {
	Weeks     map[string][]ProgressEntry `json:"weekly_data"`
	StartDate time.Time                  `json:"start_date"`
	EndDate   time.Time                  `json:"end_date"`
}

// GetWeeklyProgress returns every completed set logged in sessions started
// within [start, end], grouped by week.
func (db *DB) GetWeeklyProgress(ctx context.Context, userID int, start, end time.Time) (WeeklyProgress, error) {
	rows, err := db.q.Query(ctx,
		`SELECT e.category, e.name, l.set_number,
		   l.left_reps, l.right_reps, l.left_near_reps, l.left_far_reps,
		   l.right_near_reps, l.right_far_reps, l.weight, l.distance,
		   l.duration_sec, l.heart_rate, s.started_at
		 FROM exercise_logs l
		 JOIN exercises e ON e.id = l.exercise_id
		 JOIN workout_sessions s ON s.id = l.session_id
		 WHERE s.user_id = $1 AND l.completed
		   AND s.started_at >= $2 AND s.started_at <= $3
		 ORDER BY s.started_at`,
		userID, start, end)
	if err != nil {
		return WeeklyProgress{}, fmt.Errorf("querying weekly progress: %w", err)
	}
	defer rows.Close()

	var entries []ProgressEntry
	for rows.Next() {
		var e ProgressEntry
		if err := rows.Scan(&e.Category, &e.ExerciseName, &e.SetNumber,
			&e.LeftReps, &e.RightReps, &e.LeftNearReps, &e.LeftFarReps,
			&e.RightNearReps, &e.RightFarReps, &e.Weight, &e.Distance,
			&e.DurationSec, &e.HeartRate, &e.Date); err != nil {
			return WeeklyProgress{}, fmt.Errorf("scanning progress entry: %w", err)
		}
		e.Date = e.Date.In(start.Location())
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return WeeklyProgress{}, fmt.Errorf("reading weekly progress: %w", err)
	}

	return WeeklyProgress{
		Weeks:     groupByWeek(entries),
		StartDate: start,
		EndDate:   end,
	}, nil
}

// groupByWeek buckets entries under the Monday of each entry's week.
func groupByWeek(entries []ProgressEntry) map[string][]ProgressEntry {
	weeks := make(map[string][]ProgressEntry)
	for _, e := range entries {
		key := startOfWeek(e.Date).Format("2006-01-02")
		weeks[key] = append(weeks[key], e)
	}
	return weeks
}
