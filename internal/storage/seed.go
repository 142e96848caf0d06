package storage

import (
	"context"
	"fmt"
)

type seedEntry struct {
	name      string
	category  string
	typ       string
	leftRight bool
	nearFar   bool
	weight    bool
	distance  bool
	time      bool
	heartRate bool
}

// exerciseLibrary is the built-in catalog. Entries are global (no owner)
// and never custom; parsed schedules add custom entries alongside these.
var exerciseLibrary = []seedEntry{
	// Warm-up
	{name: "2 laps jog around pitch", category: "Warm-up", typ: "cardio", distance: true, time: true},
	{name: "Leg swings (front/back)", category: "Warm-up", typ: "mobility", leftRight: true},
	{name: "Leg swings (side/side)", category: "Warm-up", typ: "mobility", leftRight: true},
	{name: "Walking lunges with twist", category: "Warm-up", typ: "mobility", leftRight: true},
	{name: "High knees", category: "Warm-up", typ: "cardio", distance: true},
	{name: "Butt kicks", category: "Warm-up", typ: "cardio", distance: true},
	{name: "Light ball touches", category: "Warm-up", typ: "technical"},
	{name: "Light dribbling & passing", category: "Warm-up", typ: "technical"},
	{name: "Gentle dribbling", category: "Warm-up", typ: "technical"},
	{name: "Short passes", category: "Warm-up", typ: "technical", leftRight: true},
	{name: "Dynamic stretching", category: "Warm-up", typ: "mobility"},
	{name: "Jump rope", category: "Warm-up", typ: "cardio", time: true},

	// Passing
	{name: "Wall passes 5m", category: "Passing", typ: "technical", leftRight: true},
	{name: "Wall passes 10m", category: "Passing", typ: "technical", leftRight: true},
	{name: "Partner short passes 5m", category: "Passing", typ: "technical", leftRight: true},
	{name: "Partner short passes 10m", category: "Passing", typ: "technical", leftRight: true},
	{name: "Driven passes 20m", category: "Passing", typ: "technical", leftRight: true},
	{name: "Long driven passes", category: "Passing", typ: "technical", leftRight: true},
	{name: "One-touch passes", category: "Passing", typ: "technical", leftRight: true},
	{name: "Two-touch passes", category: "Passing", typ: "technical", leftRight: true},
	{name: "Two-touch passes advanced", category: "Passing", typ: "technical", leftRight: true},
	{name: "Two-touch passes both feet", category: "Passing", typ: "technical"},
	{name: "Passing accuracy (wall)", category: "Passing", typ: "technical", leftRight: true},
	{name: "Passing accuracy (partner)", category: "Passing", typ: "technical", leftRight: true},

	// Dribbling
	{name: "Cone slalom", category: "Dribbling", typ: "technical", leftRight: true, time: true},
	{name: "Cone slalom (tight)", category: "Dribbling", typ: "technical", leftRight: true, time: true},
	{name: "Cone dribble → pass", category: "Dribbling", typ: "technical", leftRight: true},
	{name: "Cone dribble → pass to partner → return pass", category: "Dribbling", typ: "technical", leftRight: true},
	{name: "Dribble + skill move → finish", category: "Dribbling", typ: "technical", leftRight: true},
	{name: "Dribble + skill move past passive partner → finish", category: "Dribbling", typ: "technical", leftRight: true},
	{name: "Dribble + finish", category: "Dribbling", typ: "technical", leftRight: true},
	{name: "Open dribble + skill → finish", category: "Dribbling", typ: "technical", leftRight: true},
	{name: "Open dribble + skill move past partner → finish", category: "Dribbling", typ: "technical", leftRight: true},

	// Ball mastery
	{name: "Ball mastery", category: "Ball Mastery", typ: "technical", time: true},
	{name: "Toe taps", category: "Ball Mastery", typ: "technical", time: true},
	{name: "Sole rolls", category: "Ball Mastery", typ: "technical", time: true},
	{name: "Inside-outside touches", category: "Ball Mastery", typ: "technical", leftRight: true, time: true},
	{name: "V-pulls", category: "Ball Mastery", typ: "technical", time: true},

	// Shooting
	{name: "Inside-foot shots", category: "Shooting", typ: "technical", leftRight: true, nearFar: true},
	{name: "Laces drives", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Volleys", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Volleys L only", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Volleys R only", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Volleys alternating", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Volleys 2-touch L", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Volleys 2-touch R", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Partner toss volleys", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Shooting placement", category: "Shooting", typ: "technical", leftRight: true, nearFar: true},
	{name: "Cut-in shots", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Cut-in shot", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Cut-in finishes", category: "Shooting", typ: "technical", leftRight: true},
	{name: "First-touch → shot", category: "Shooting", typ: "technical", leftRight: true},
	{name: "First-touch → shot from partner pass", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Sprint 20m → shoot", category: "Shooting", typ: "technical", leftRight: true},
	{name: "Sprint 20m → partner pass → finish", category: "Shooting", typ: "technical", leftRight: true},

	// 1v1 skills
	{name: "Fake shot + ball roll", category: "1v1 Skills", typ: "technical", leftRight: true},
	{name: "Body feint + La Croqueta", category: "1v1 Skills", typ: "technical", leftRight: true},
	{name: "Flip Flap", category: "1v1 Skills", typ: "technical", leftRight: true},
	{name: "Cruyff turn", category: "1v1 Skills", typ: "technical", leftRight: true},

	// Combination play
	{name: "Give-and-go → finish", category: "Combination Play", typ: "technical", leftRight: true},
	{name: "Wall give-and-go → finish", category: "Combination Play", typ: "technical", leftRight: true},
	{name: "Partner give-and-go → finish", category: "Combination Play", typ: "technical", leftRight: true},
	{name: "Layoff + 1st-time shot", category: "Combination Play", typ: "technical", leftRight: true},
	{name: "Partner layoff + 1st-time shot", category: "Combination Play", typ: "technical", leftRight: true},
	{name: "Long pass → control → return", category: "Combination Play", typ: "technical", leftRight: true},

	// Juggling
	{name: "Wall juggling", category: "Juggling", typ: "technical", leftRight: true},
	{name: "Wall juggling L", category: "Juggling", typ: "technical", leftRight: true},
	{name: "Wall juggling R", category: "Juggling", typ: "technical", leftRight: true},
	{name: "Wall juggling alternating feet", category: "Juggling", typ: "technical", leftRight: true},
	{name: "Wall juggling 2-touch alternating", category: "Juggling", typ: "technical", leftRight: true},
	{name: "Partner juggling", category: "Juggling", typ: "technical", leftRight: true},
	{name: "Freestyle juggling", category: "Juggling", typ: "technical"},
	{name: "Partner volleys", category: "Juggling", typ: "technical", leftRight: true},

	// Lower strength
	{name: "Squat", category: "Lower Strength", typ: "strength", weight: true},
	{name: "Bulgarian Split Squat", category: "Lower Strength", typ: "strength", weight: true, leftRight: true},
	{name: "RDL", category: "Lower Strength", typ: "strength", weight: true},
	{name: "Calf Raise", category: "Lower Strength", typ: "strength", weight: true},
	{name: "Nordic Curl", category: "Lower Strength", typ: "strength"},
	{name: "Front Squat", category: "Lower Strength", typ: "strength", weight: true},
	{name: "Goblet Squat", category: "Lower Strength", typ: "strength", weight: true},
	{name: "Leg Press", category: "Lower Strength", typ: "strength", weight: true},
	{name: "Walking Lunges", category: "Lower Strength", typ: "strength", weight: true, distance: true},
	{name: "Step-ups", category: "Lower Strength", typ: "strength", weight: true, leftRight: true},

	// Upper strength
	{name: "Bench Press", category: "Upper Strength", typ: "strength", weight: true},
	{name: "Pull-ups", category: "Upper Strength", typ: "strength"},
	{name: "OHP", category: "Upper Strength", typ: "strength", weight: true},
	{name: "Overhead Press", category: "Upper Strength", typ: "strength", weight: true},
	{name: "Barbell Row", category: "Upper Strength", typ: "strength", weight: true},
	{name: "Dumbbell Row", category: "Upper Strength", typ: "strength", weight: true, leftRight: true},
	{name: "Push-ups", category: "Upper Strength", typ: "strength"},
	{name: "Dips", category: "Upper Strength", typ: "strength"},

	// Plyo
	{name: "Box Jumps", category: "Plyo", typ: "power"},
	{name: "Lateral Bounds", category: "Plyo", typ: "power", leftRight: true},
	{name: "Broad Jumps", category: "Plyo", typ: "power", distance: true},
	{name: "Single-leg Hops", category: "Plyo", typ: "power", leftRight: true},
	{name: "Depth Jumps", category: "Plyo", typ: "power"},
	{name: "Skater Jumps", category: "Plyo", typ: "power"},

	// Core
	{name: "Plank", category: "Core", typ: "core", time: true},
	{name: "Copenhagen plank", category: "Core", typ: "core", leftRight: true, time: true},
	{name: "Bird dog", category: "Core", typ: "core"},
	{name: "Dead Bug", category: "Core", typ: "core"},
	{name: "Russian Twists", category: "Core", typ: "core"},
	{name: "Ab Wheel", category: "Core", typ: "core"},

	// Speed & agility
	{name: "Ladder drills", category: "Speed & Agility", typ: "agility", time: true},
	{name: "5–10–5 shuttle", category: "Speed & Agility", typ: "agility"},
	{name: "Flying 30m", category: "Speed & Agility", typ: "speed", time: true},
	{name: "10m accel starts", category: "Speed & Agility", typ: "speed", time: true},
	{name: "20m sprint", category: "Speed & Agility", typ: "speed", time: true},
	{name: "Cone Drills", category: "Speed & Agility", typ: "agility", time: true},

	// Conditioning
	{name: "4×4 min HIIT", category: "Conditioning", typ: "cardio", distance: true, heartRate: true},
	{name: "Recovery Jog", category: "Conditioning", typ: "cardio", distance: true, heartRate: true, time: true},
	{name: "Endurance Run", category: "Conditioning", typ: "cardio", distance: true, heartRate: true, time: true},

	// Mobility & recovery
	{name: "Hip 90/90", category: "Mobility", typ: "mobility", leftRight: true, time: true},
	{name: "Cossack Squats", category: "Mobility", typ: "mobility", leftRight: true},
	{name: "World's Greatest Stretch", category: "Mobility", typ: "mobility", leftRight: true},
	{name: "Ankle rocks", category: "Mobility", typ: "mobility", leftRight: true},
	{name: "Cat-Cow + T-spine rotations", category: "Mobility", typ: "mobility"},
	{name: "Foam roll legs", category: "Mobility", typ: "recovery", time: true},
	{name: "Foam roll quads", category: "Mobility", typ: "recovery", time: true},
	{name: "Foam roll hamstrings", category: "Mobility", typ: "recovery", time: true},
	{name: "Foam roll calves", category: "Mobility", typ: "recovery", time: true},
	{name: "Foam roll adductors", category: "Mobility", typ: "recovery", time: true},

	// Cooldown
	{name: "1 lap walk/jog", category: "Cooldown", typ: "recovery", distance: true, time: true},
	{name: "Hamstring stretch", category: "Cooldown", typ: "recovery", time: true},
	{name: "Quad stretch", category: "Cooldown", typ: "recovery", leftRight: true, time: true},
	{name: "Calf stretch", category: "Cooldown", typ: "recovery", leftRight: true, time: true},
	{name: "Hip flexor lunge stretch", category: "Cooldown", typ: "recovery", leftRight: true, time: true},
	{name: "Groin/adductor stretch", category: "Cooldown", typ: "recovery", time: true},
	{name: "Static stretches", category: "Cooldown", typ: "recovery", time: true},
}

// SeedExercises inserts the built-in catalog, skipping names that already
// exist. Safe to run on every startup.
func (db *DB) SeedExercises(ctx context.Context) (int, error) {
	inserted := 0
	for _, e := range exerciseLibrary {
		tag, err := db.q.Exec(ctx,
			`INSERT INTO exercises (name, category, type, tracks_left_right, tracks_near_far,
			   tracks_weight, tracks_distance, tracks_time, tracks_heart_rate, is_custom)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,FALSE)
			 ON CONFLICT (lower(name)) DO NOTHING`,
			e.name, e.category, e.typ, e.leftRight, e.nearFar,
			e.weight, e.distance, e.time, e.heartRate)
		if err != nil {
			return inserted, fmt.Errorf("seeding exercise %q: %w", e.name, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
