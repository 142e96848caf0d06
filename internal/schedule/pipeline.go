package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claude/pitchlog/internal/models"
	"github.com/google/uuid"
)

// ErrNoBlocks is returned when uploaded text parses to zero workout blocks.
// No writes happen in that case; the caller surfaces it as a validation
// error with format guidance.
var ErrNoBlocks = errors.New("no workout blocks found in schedule text")

// Store is the persistence surface the pipeline drives. *storage.DB
// satisfies it; tests use an in-memory fake.
type Store interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	// CreateExercise upserts by case-insensitive name. The bool reports
	// whether a new row was created (false: an existing row was returned).
	CreateExercise(ctx context.Context, ex models.Exercise) (models.Exercise, bool, error)

	GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	ListWorkoutsByDay(ctx context.Context, userID int, dayOfWeek, mode string) ([]models.Workout, error)
	CreateWorkout(ctx context.Context, w models.Workout) (models.Workout, error)
	UpdateWorkout(ctx context.Context, w models.Workout) error
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
	DeleteWorkoutBlocks(ctx context.Context, workoutID uuid.UUID) error
	MaxBlockOrder(ctx context.Context, workoutID uuid.UUID) (int, error)
	CreateBlock(ctx context.Context, b models.WorkoutBlock) (models.WorkoutBlock, error)
	CreateBlockExercise(ctx context.Context, e models.BlockExercise) (models.BlockExercise, error)

	// InTx runs fn against a transactional view of the store.
	InTx(ctx context.Context, fn func(Store) error) error
}

// Result reports what an upload created, including the names of catalog
// entries that did not exist before. The UI discloses new exercises to the
// user instead of growing the catalog silently.
type Result struct {
	WorkoutsCreated  int      `json:"workouts_created"`
	BlocksCreated    int      `json:"blocks_created"`
	ExercisesCreated int      `json:"exercises_created"`
	NewExerciseNames []string `json:"new_exercise_names"`
}

// Pipeline realizes parsed schedules as durable records.
type Pipeline struct {
	store Store
	log   *slog.Logger
}

// NewPipeline creates a pipeline over the given store.
func NewPipeline(store Store, log *slog.Logger) *Pipeline {
	return &Pipeline{store: store, log: log}
}

// ApplyWeek parses whole-week text and persists one workout per parsed day
// for the given training mode. In overwrite mode, existing workouts for
// exactly the parsed days and that mode are deleted first; other days and
// the other mode are untouched. Each workout's writes run in one
// transaction.
func (p *Pipeline) ApplyWeek(ctx context.Context, userID int, text, mode string, overwrite bool) (*Result, error) {
	catalog, err := p.store.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}

	days := ParseWeek(text, catalog)
	if len(days) == 0 {
		return nil, ErrNoBlocks
	}

	result := &Result{}
	created, err := p.resolveExercises(ctx, userID, daysExercises(days), result)
	if err != nil {
		return nil, err
	}

	for _, day := range days {
		err := p.store.InTx(ctx, func(tx Store) error {
			if overwrite {
				existing, err := tx.ListWorkoutsByDay(ctx, userID, day.DayOfWeek, mode)
				if err != nil {
					return fmt.Errorf("finding workouts for %s: %w", day.DayOfWeek, err)
				}
				// Append uploads can stack several workouts on one day;
				// overwrite clears them all, not just the first.
				for _, w := range existing {
					if err := tx.DeleteWorkout(ctx, w.ID); err != nil {
						return fmt.Errorf("deleting workout for %s: %w", day.DayOfWeek, err)
					}
				}
			}

			title := day.Title
			if title == "" {
				title = day.DayOfWeek + " Workout"
			}
			workout, err := tx.CreateWorkout(ctx, models.Workout{
				UserID:    userID,
				DayOfWeek: day.DayOfWeek,
				Mode:      mode,
				Title:     title,
				Duration:  day.Duration,
				Location:  day.Location,
				Equipment: day.Equipment,
				IsActive:  true,
			})
			if err != nil {
				return fmt.Errorf("creating workout for %s: %w", day.DayOfWeek, err)
			}

			if err := p.insertBlocks(ctx, tx, workout.ID, day.Blocks, 0, created, result); err != nil {
				return err
			}
			result.WorkoutsCreated++
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	p.log.Info("week schedule applied",
		"workouts", result.WorkoutsCreated,
		"blocks", result.BlocksCreated,
		"new_exercises", len(result.NewExerciseNames),
		"mode", mode,
		"overwrite", overwrite,
	)
	return result, nil
}

// ApplyDay parses single-day text and applies it to an existing workout.
// Overwrite replaces the workout's blocks; append inserts the parsed blocks
// after the current maximum order. Parsed header fields update the workout
// only where the text actually provided them.
func (p *Pipeline) ApplyDay(ctx context.Context, userID int, workoutID uuid.UUID, text string, overwrite bool) (*Result, error) {
	workout, err := p.store.GetWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	catalog, err := p.store.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}

	day := ParseDay(text, catalog)
	if len(day.Blocks) == 0 {
		return nil, ErrNoBlocks
	}

	result := &Result{}
	var all []Exercise
	for _, b := range day.Blocks {
		all = append(all, b.Exercises...)
	}
	created, err := p.resolveExercises(ctx, userID, all, result)
	if err != nil {
		return nil, err
	}

	err = p.store.InTx(ctx, func(tx Store) error {
		updated := *workout
		if day.Title != "" {
			updated.Title = day.Title
		}
		if day.DayOfWeek != "" {
			updated.DayOfWeek = day.DayOfWeek
		}
		if day.Duration != "" {
			updated.Duration = day.Duration
		}
		if day.Location != "" {
			updated.Location = day.Location
		}
		if day.Equipment != "" {
			updated.Equipment = day.Equipment
		}
		if err := tx.UpdateWorkout(ctx, updated); err != nil {
			return fmt.Errorf("updating workout: %w", err)
		}

		startOrder := 0
		if overwrite {
			if err := tx.DeleteWorkoutBlocks(ctx, workoutID); err != nil {
				return fmt.Errorf("deleting blocks: %w", err)
			}
		} else {
			max, err := tx.MaxBlockOrder(ctx, workoutID)
			if err != nil {
				return fmt.Errorf("reading block order: %w", err)
			}
			startOrder = max
		}

		return p.insertBlocks(ctx, tx, workoutID, day.Blocks, startOrder, created, result)
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("day schedule applied",
		"workout_id", workoutID,
		"blocks", result.BlocksCreated,
		"new_exercises", len(result.NewExerciseNames),
		"overwrite", overwrite,
	)
	return result, nil
}

// resolveExercises upserts every placeholder referenced by the parse,
// de-duplicating within this upload so the same new name in three blocks
// binds to one catalog row. Upserts are race-tolerant against concurrent
// uploads via the case-insensitive unique index.
func (p *Pipeline) resolveExercises(ctx context.Context, userID int, exercises []Exercise, result *Result) (map[string]models.Exercise, error) {
	created := map[string]models.Exercise{}
	for _, ex := range exercises {
		if ex.Ref.ID != uuid.Nil {
			continue
		}
		key := strings.ToLower(ex.Ref.Name)
		if _, ok := created[key]; ok {
			continue
		}
		spec := ex.Ref
		spec.UserID = &userID
		row, isNew, err := p.store.CreateExercise(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("creating exercise %q: %w", ex.Ref.Name, err)
		}
		created[key] = row
		if isNew {
			result.ExercisesCreated++
			result.NewExerciseNames = append(result.NewExerciseNames, row.Name)
		}
	}
	return created, nil
}

func (p *Pipeline) insertBlocks(ctx context.Context, tx Store, workoutID uuid.UUID, blocks []Block, startOrder int, created map[string]models.Exercise, result *Result) error {
	for i, b := range blocks {
		block, err := tx.CreateBlock(ctx, models.WorkoutBlock{
			WorkoutID: workoutID,
			Title:     b.Title,
			Duration:  b.Duration,
			Order:     startOrder + i + 1,
		})
		if err != nil {
			return fmt.Errorf("creating block %q: %w", b.Title, err)
		}
		result.BlocksCreated++

		for j, ex := range b.Exercises {
			exerciseID := ex.Ref.ID
			if exerciseID == uuid.Nil {
				exerciseID = created[strings.ToLower(ex.Ref.Name)].ID
			}
			if _, err := tx.CreateBlockExercise(ctx, models.BlockExercise{
				BlockID:    block.ID,
				ExerciseID: exerciseID,
				Order:      j + 1,
				Sets:       ex.Sets,
				Reps:       ex.Reps,
				Rest:       ex.Rest,
				Notes:      ex.Notes,
			}); err != nil {
				return fmt.Errorf("creating block exercise %q: %w", ex.Ref.Name, err)
			}
		}
	}
	return nil
}

func daysExercises(days []Day) []Exercise {
	var all []Exercise
	for _, d := range days {
		for _, b := range d.Blocks {
			all = append(all, b.Exercises...)
		}
	}
	return all
}
