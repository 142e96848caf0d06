package mcp

import (
	"context"
	"time"

	"github.com/claude/pitchlog/internal/models"
	"github.com/claude/pitchlog/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	ListWorkouts(ctx context.Context, userID int) ([]models.Workout, error)
	GetWorkoutDetail(ctx context.Context, id uuid.UUID) (*models.WorkoutDetail, error)
	GetWorkoutByDay(ctx context.Context, userID int, dayOfWeek, mode string) (*models.Workout, error)
	ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error)
	GetSessionStats(ctx context.Context, userID int, now time.Time) (storage.SessionStats, error)
	ListCheckIns(ctx context.Context, userID int) ([]models.CheckIn, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
