package models

import (
	"time"

	"github.com/google/uuid"
)

// Training modes. A workout is scheduled either for solo training or for a
// session with a training partner.
const (
	ModeSolo   = "solo"
	ModeFriend = "friend"
)

// Session statuses.
const (
	SessionInProgress = "in_progress"
	SessionPaused     = "paused"
	SessionCompleted  = "completed"
)

// Exercise is a catalog entry. The capability flags control which
// measurements the UI offers when logging a set of this exercise.
type Exercise struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Type            string    `json:"type"`
	TracksLeftRight bool      `json:"tracks_left_right"`
	TracksNearFar   bool      `json:"tracks_near_far"`
	TracksWeight    bool      `json:"tracks_weight"`
	TracksDistance  bool      `json:"tracks_distance"`
	TracksTime      bool      `json:"tracks_time"`
	TracksHeartRate bool      `json:"tracks_heart_rate"`
	Description     *string   `json:"description,omitempty"`
	IsCustom        bool      `json:"is_custom"`
	UserID          *int      `json:"user_id,omitempty"`
}

// Workout is one scheduled training session for a day of week and a mode.
type Workout struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"user_id"`
	DayOfWeek   string    `json:"day_of_week"` // uppercase, e.g. "MONDAY"
	Mode        string    `json:"mode"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Duration    string    `json:"duration"`
	Location    string    `json:"location"`
	Equipment   string    `json:"equipment"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkoutBlock is an ordered named phase of a workout.
type WorkoutBlock struct {
	ID        uuid.UUID `json:"id"`
	WorkoutID uuid.UUID `json:"workout_id"`
	Title     string    `json:"title"`
	Duration  string    `json:"duration"`
	Order     int       `json:"order"`
}

// BlockExercise attaches an exercise to a block with its prescription.
// Sets, reps and rest are free text ("3", "10 L | 10 R", "60s").
type BlockExercise struct {
	ID         uuid.UUID `json:"id"`
	BlockID    uuid.UUID `json:"block_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	Order      int       `json:"order"`
	Sets       string    `json:"sets"`
	Reps       string    `json:"reps"`
	Rest       string    `json:"rest"`
	Notes      string    `json:"notes"`
}

// BlockExerciseDetail is a BlockExercise joined with its catalog entry.
type BlockExerciseDetail struct {
	BlockExercise
	Exercise Exercise `json:"exercise"`
}

// BlockDetail is a block with its ordered exercises.
type BlockDetail struct {
	WorkoutBlock
	Exercises []BlockExerciseDetail `json:"exercises"`
}

// WorkoutDetail is a workout with its ordered blocks and exercises.
type WorkoutDetail struct {
	Workout
	Blocks []BlockDetail `json:"blocks"`
}

// WorkoutSession is one attempt at performing a workout.
type WorkoutSession struct {
	ID             uuid.UUID  `json:"id"`
	UserID         int        `json:"user_id"`
	WorkoutID      uuid.UUID  `json:"workout_id"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Status         string     `json:"status"`
	Mode           string     `json:"mode"`
	CurrentBlockID *uuid.UUID `json:"current_block_id,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	PausedAt       *time.Time `json:"paused_at,omitempty"`
	PausedState    *string    `json:"paused_state,omitempty"`
}

// ExerciseLog records one set within a session. Completed rows are the
// durable history; toggling a set off flips Completed rather than deleting
// the row, so the set number keeps a stable identity within the session.
type ExerciseLog struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	BlockID    uuid.UUID `json:"block_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	SetNumber  int       `json:"set_number"`
	Completed  bool      `json:"completed"`
	Measurements
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Measurements holds the capability-gated values for one set. Only the
// fields matching the exercise's tracking flags are expected to be set.
type Measurements struct {
	LeftReps      *int     `json:"left_reps,omitempty"`
	RightReps     *int     `json:"right_reps,omitempty"`
	LeftNearReps  *int     `json:"left_near_reps,omitempty"`
	LeftFarReps   *int     `json:"left_far_reps,omitempty"`
	RightNearReps *int     `json:"right_near_reps,omitempty"`
	RightFarReps  *int     `json:"right_far_reps,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Distance      *float64 `json:"distance,omitempty"`
	DurationSec   *int     `json:"duration_sec,omitempty"`
	HeartRate     *int     `json:"heart_rate,omitempty"`
}

// CheckIn is a periodic broad self-assessment snapshot, numbered per user.
type CheckIn struct {
	ID            uuid.UUID `json:"id"`
	UserID        int       `json:"user_id"`
	CheckInNumber int       `json:"check_in_number"`
	CheckInDate   time.Time `json:"check_in_date"`

	PassingAccuracyLeft  *int `json:"passing_accuracy_left,omitempty"`
	PassingAccuracyRight *int `json:"passing_accuracy_right,omitempty"`

	FinishingNearLeft  *int `json:"finishing_near_left,omitempty"`
	FinishingFarLeft   *int `json:"finishing_far_left,omitempty"`
	FinishingNearRight *int `json:"finishing_near_right,omitempty"`
	FinishingFarRight  *int `json:"finishing_far_right,omitempty"`

	FirstTouchLeft    *int `json:"first_touch_left,omitempty"`
	FirstTouchRight   *int `json:"first_touch_right,omitempty"`
	ComfortLevelLeft  *int `json:"comfort_level_left,omitempty"`
	ComfortLevelRight *int `json:"comfort_level_right,omitempty"`

	SkillMoveFakeShotLeft  *int `json:"skill_move_fake_shot_left,omitempty"`
	SkillMoveFakeShotRight *int `json:"skill_move_fake_shot_right,omitempty"`
	SkillMoveCroquetaLeft  *int `json:"skill_move_croqueta_left,omitempty"`
	SkillMoveCroquetaRight *int `json:"skill_move_croqueta_right,omitempty"`
	SkillMoveFlipFlapLeft  *int `json:"skill_move_flip_flap_left,omitempty"`
	SkillMoveFlipFlapRight *int `json:"skill_move_flip_flap_right,omitempty"`

	GameRealismSuccess *int     `json:"game_realism_success,omitempty"`
	EnduranceJog1km    *float64 `json:"endurance_jog_1km,omitempty"`
	EnduranceJog2km    *float64 `json:"endurance_jog_2km,omitempty"`
	EnduranceJog3km    *float64 `json:"endurance_jog_3km,omitempty"`
	EnduranceJog4km    *float64 `json:"endurance_jog_4km,omitempty"`
	EnduranceJog5km    *float64 `json:"endurance_jog_5km,omitempty"`
	EnduranceAvgHR     *int     `json:"endurance_avg_hr,omitempty"`
	HIITDistance       *int     `json:"hiit_distance,omitempty"`
	MaxSprintTime      *float64 `json:"max_sprint_time,omitempty"`

	FatiguedFinishingNearLeft  *int `json:"fatigued_finishing_near_left,omitempty"`
	FatiguedFinishingFarLeft   *int `json:"fatigued_finishing_far_left,omitempty"`
	FatiguedFinishingNearRight *int `json:"fatigued_finishing_near_right,omitempty"`
	FatiguedFinishingFarRight  *int `json:"fatigued_finishing_far_right,omitempty"`

	SquatWeight *float64 `json:"squat_weight,omitempty"`
	BenchWeight *float64 `json:"bench_weight,omitempty"`
	RDLWeight   *float64 `json:"rdl_weight,omitempty"`
	PullUps     *int     `json:"pull_ups,omitempty"`

	Weight        *float64 `json:"weight,omitempty"`
	ProteinIntake *int     `json:"protein_intake,omitempty"`
	SleepHours    *float64 `json:"sleep_hours,omitempty"`
	EnergyLevel   *int     `json:"energy_level,omitempty"`

	LeftFootConfidence *int    `json:"left_foot_confidence,omitempty"`
	OverallConfidence  *int    `json:"overall_confidence,omitempty"`
	MotivationCheck    *string `json:"motivation_check,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStats is the denormalized rollup. It is recomputed from sessions and
// logs after each completion; the dashboard reads live computations instead.
type UserStats struct {
	ID               uuid.UUID  `json:"id"`
	UserID           int        `json:"user_id"`
	TotalWorkouts    int        `json:"total_workouts"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastWorkoutDate  *time.Time `json:"last_workout_date,omitempty"`
	TotalShotsLeft   int        `json:"total_shots_left"`
	TotalShotsRight  int        `json:"total_shots_right"`
	OnTargetLeft     int        `json:"on_target_left"`
	OnTargetRight    int        `json:"on_target_right"`
	TotalPassesLeft  int        `json:"total_passes_left"`
	TotalPassesRight int        `json:"total_passes_right"`
	TotalDistance    float64    `json:"total_distance"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
