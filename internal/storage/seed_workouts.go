package storage

import (
	"context"
	"fmt"

	"github.com/claude/pitchlog/internal/models"
)

type exerciseTemplate struct {
	name  string
	sets  string
	reps  string
	rest  string
	notes string
}

type blockTemplate struct {
	title     string
	duration  string
	exercises []exerciseTemplate
}

type workoutTemplate struct {
	dayOfWeek string
	mode      string
	title     string
	duration  string
	location  string
	equipment string
	blocks    []blockTemplate
}

// workoutTemplates is the built-in weekly plan used to populate an empty
// account. Every exercise name must resolve against the exercise catalog.
var workoutTemplates = []workoutTemplate{
	{
		dayOfWeek: "MONDAY",
		mode:      models.ModeSolo,
		title:     "Passing + Lower Strength + Plyo",
		duration:  "~1h45min",
		location:  "Pitch → Gym",
		equipment: "Ball, cones, wall, gym access",
		blocks: []blockTemplate{
			{
				title:    "Warm-up",
				duration: "10 min",
				exercises: []exerciseTemplate{
					{name: "2 laps jog around pitch", sets: "1", reps: "2 laps"},
					{name: "Leg swings (front/back)", sets: "1", reps: "10/leg"},
					{name: "Leg swings (side/side)", sets: "1", reps: "10/leg"},
					{name: "Walking lunges with twist", sets: "1", reps: "8/leg"},
					{name: "High knees", sets: "1", reps: "20 m"},
					{name: "Butt kicks", sets: "1", reps: "20 m"},
					{name: "Light ball touches", sets: "1", reps: "1-2 min"},
				},
			},
			{
				title:    "Passing Block",
				duration: "20 min",
				exercises: []exerciseTemplate{
					{name: "Wall passes 5m", sets: "2 L | 2 R", reps: "25", rest: "30-60s"},
					{name: "Driven passes 20m", sets: "3 L | 3 R", reps: "8", rest: "30-60s"},
					{name: "Cone dribble → pass", sets: "3 L | 2 R", reps: "10", rest: "30-60s"},
				},
			},
			{
				title:    "Gym Lower Strength",
				duration: "50 min",
				exercises: []exerciseTemplate{
					{name: "Squat", sets: "4", reps: "6", rest: "3 min", notes: "75-80% effort"},
					{name: "Bulgarian Split Squat", sets: "3", reps: "8/leg", rest: "90s"},
					{name: "RDL", sets: "3", reps: "8", rest: "90s"},
					{name: "Calf Raise", sets: "3", reps: "15", rest: "60s"},
					{name: "Nordic Curl", sets: "2", reps: "6-8", rest: "90s"},
				},
			},
			{
				title:    "Plyo",
				duration: "15 min",
				exercises: []exerciseTemplate{
					{name: "Box Jumps", sets: "4", reps: "6", rest: "90s"},
					{name: "Lateral Bounds", sets: "3", reps: "10/side", rest: "60s"},
				},
			},
			{
				title:    "Core",
				duration: "5 min",
				exercises: []exerciseTemplate{
					{name: "Plank", sets: "3", reps: "to failure", rest: "30s"},
				},
			},
			{
				title:    "Cooldown",
				duration: "5 min",
				exercises: []exerciseTemplate{
					{name: "1 lap walk/jog", sets: "1", reps: "1 lap"},
					{name: "Static stretches", sets: "1", reps: "5 min"},
				},
			},
		},
	},
	{
		dayOfWeek: "TUESDAY",
		mode:      models.ModeSolo,
		title:     "Dribbling + Finishing + HIIT",
		duration:  "~2h",
		location:  "Pitch",
		equipment: "Ball, cones, goal or wall",
		blocks: []blockTemplate{
			{
				title:    "Warm-up",
				duration: "10 min",
				exercises: []exerciseTemplate{
					{name: "2 laps jog around pitch", sets: "1", reps: "2 laps"},
					{name: "Dynamic stretching", sets: "1", reps: "5 min"},
				},
			},
			{
				title:    "Dribbling Block",
				duration: "20 min",
				exercises: []exerciseTemplate{
					{name: "Cone slalom", sets: "3 L | 2 R", reps: "60s", rest: "60s"},
					{name: "Dribble + skill move → finish", sets: "3 L | 2 R", reps: "10", rest: "60s"},
				},
			},
			{
				title:    "Technical Circuit",
				duration: "60 min",
				exercises: []exerciseTemplate{
					{name: "Ball mastery", sets: "1", reps: "10 min"},
					{name: "Passing accuracy (wall)", sets: "3 L | 2 R", reps: "25", rest: "60s"},
					{name: "Dribble + finish", sets: "2", reps: "8 L | 8 R", rest: "60s"},
					{name: "Shooting placement", sets: "2", reps: "10", rest: "60s"},
				},
			},
			{
				title:    "Conditioning — HIIT",
				duration: "30 min",
				exercises: []exerciseTemplate{
					{name: "4×4 min HIIT", sets: "4", reps: "4 min", rest: "3 min"},
				},
			},
			{
				title:    "Cooldown",
				duration: "10 min",
				exercises: []exerciseTemplate{
					{name: "1 lap walk/jog", sets: "1", reps: "1 lap"},
					{name: "Static stretches", sets: "1", reps: "5 min"},
				},
			},
		},
	},
	{
		dayOfWeek: "WEDNESDAY",
		mode:      models.ModeSolo,
		title:     "Touches + Recovery Jog + Mobility",
		duration:  "~1h20min",
		location:  "Pitch or wall",
		equipment: "Ball, wall, foam roller",
		blocks: []blockTemplate{
			{
				title:    "Wall Touches",
				duration: "15 min",
				exercises: []exerciseTemplate{
					{name: "Wall passes 5m", sets: "1 L | 1 R", reps: "50"},
					{name: "Two-touch passes", sets: "1 L | 1 R", reps: "50"},
					{name: "Two-touch passes both feet", sets: "1", reps: "50"},
				},
			},
			{
				title:    "Juggling",
				duration: "20 min",
				exercises: []exerciseTemplate{
					{name: "Wall juggling L", sets: "1", reps: "20", rest: "30-45s"},
					{name: "Wall juggling R", sets: "1", reps: "20", rest: "30-45s"},
					{name: "Wall juggling alternating feet", sets: "1", reps: "20", rest: "30-45s"},
					{name: "Wall juggling 2-touch alternating", sets: "1", reps: "20", rest: "30-45s"},
				},
			},
			{
				title:    "Recovery Jog",
				duration: "20-25 min",
				exercises: []exerciseTemplate{
					{name: "Recovery Jog", sets: "1", reps: "20-25 min", notes: "conversational pace"},
				},
			},
			{
				title:    "Mobility Circuit",
				duration: "20 min",
				exercises: []exerciseTemplate{
					{name: "Hip 90/90", sets: "1", reps: "30s/side"},
					{name: "Cossack Squats", sets: "1", reps: "8/side"},
					{name: "World's Greatest Stretch", sets: "1", reps: "6/side"},
					{name: "Ankle rocks", sets: "1", reps: "12/side"},
					{name: "Cat-Cow + T-spine rotations", sets: "1", reps: "8"},
					{name: "Foam roll quads", sets: "1", reps: "60-90s"},
				},
			},
		},
	},
	{
		dayOfWeek: "THURSDAY",
		mode:      models.ModeSolo,
		title:     "Shooting + Speed/Agility",
		duration:  "~1h45min",
		location:  "Pitch",
		equipment: "Ball, cones, ladder, goal",
		blocks: []blockTemplate{
			{
				title:    "Warm-up",
				duration: "10 min",
				exercises: []exerciseTemplate{
					{name: "2 laps jog around pitch", sets: "1", reps: "2 laps"},
					{name: "Leg swings (front/back)", sets: "1", reps: "10/leg"},
					{name: "Leg swings (side/side)", sets: "1", reps: "10/leg"},
					{name: "Walking lunges with twist", sets: "1", reps: "8/leg"},
					{name: "High knees", sets: "1", reps: "20 m"},
					{name: "Butt kicks", sets: "1", reps: "20 m"},
					{name: "Light ball touches", sets: "1", reps: "1-2 min"},
				},
			},
			{
				title:    "Shooting Block",
				duration: "40 min",
				exercises: []exerciseTemplate{
					{name: "Inside-foot shots", sets: "1 far + 1 near, each side", reps: "10", rest: "60s"},
					{name: "Laces drives", sets: "3 L | 2 R", reps: "6", rest: "60s"},
					{name: "Volleys", sets: "1 L | 1 R", reps: "5", rest: "60s"},
				},
			},
			{
				title:    "Speed & Agility",
				duration: "30 min",
				exercises: []exerciseTemplate{
					{name: "Ladder drills", sets: "1", reps: "5 min"},
					{name: "5–10–5 shuttle", sets: "6", reps: "1", rest: "60s"},
					{name: "Flying 30m", sets: "6", reps: "1", rest: "90s"},
					{name: "10m accel starts", sets: "6", reps: "1", rest: "60s"},
				},
			},
			{
				title:    "Fatigued Shooting Block",
				duration: "20 min",
				exercises: []exerciseTemplate{
					{name: "Inside-foot shots", sets: "2", reps: "10", rest: "60s", notes: "under fatigue"},
				},
			},
			{
				title:    "Cooldown",
				duration: "5 min",
				exercises: []exerciseTemplate{
					{name: "1 lap walk/jog", sets: "1", reps: "1 lap"},
					{name: "Static stretches", sets: "1", reps: "5 min"},
				},
			},
		},
	},
}

// SeedWorkouts populates the built-in weekly plan for a user who has no
// workouts yet. Users with any workout, active or not, are left alone so
// the seed never clobbers uploads. Returns the number of workouts created.
func (db *DB) SeedWorkouts(ctx context.Context, userID int) (int, error) {
	var exists bool
	err := db.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM workouts WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("checking for existing workouts: %w", err)
	}
	if exists {
		return 0, nil
	}

	created := 0
	for _, tpl := range workoutTemplates {
		w, err := db.CreateWorkout(ctx, models.Workout{
			UserID:    userID,
			DayOfWeek: tpl.dayOfWeek,
			Mode:      tpl.mode,
			Title:     tpl.title,
			Duration:  tpl.duration,
			Location:  tpl.location,
			Equipment: tpl.equipment,
			IsActive:  true,
		})
		if err != nil {
			return created, fmt.Errorf("seeding workout %s: %w", tpl.dayOfWeek, err)
		}
		for bi, bt := range tpl.blocks {
			block, err := db.CreateBlock(ctx, models.WorkoutBlock{
				WorkoutID: w.ID,
				Title:     bt.title,
				Duration:  bt.duration,
				Order:     bi + 1,
			})
			if err != nil {
				return created, fmt.Errorf("seeding block %q: %w", bt.title, err)
			}
			for ei, et := range bt.exercises {
				ex, err := db.FindExerciseByName(ctx, et.name)
				if err != nil {
					return created, err
				}
				if ex == nil {
					return created, fmt.Errorf("template references unknown exercise %q", et.name)
				}
				_, err = db.CreateBlockExercise(ctx, models.BlockExercise{
					BlockID:    block.ID,
					ExerciseID: ex.ID,
					Order:      ei + 1,
					Sets:       et.sets,
					Reps:       et.reps,
					Rest:       et.rest,
					Notes:      et.notes,
				})
				if err != nil {
					return created, fmt.Errorf("seeding exercise %q: %w", et.name, err)
				}
			}
		}
		created++
	}
	return created, nil
}
