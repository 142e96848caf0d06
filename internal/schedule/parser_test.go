package schedule

import (
	"testing"

	"github.com/claude/pitchlog/internal/models"
	"github.com/google/uuid"
)

func testCatalog() []models.Exercise {
	return []models.Exercise{
		{ID: uuid.New(), Name: "Wall passes 5m", Category: "Passing", Type: "Technical", TracksLeftRight: true},
		{ID: uuid.New(), Name: "Jog", Category: "Warm-up", Type: "Warm-up"},
		{ID: uuid.New(), Name: "Gentle dribbling", Category: "Warm-up", Type: "Warm-up"},
	}
}

// TestParseDay verifies a full day parses into header fields, ordered blocks
// and exercise prescriptions, with catalog names resolved case-insensitively.
func TestParseDay(t *testing.T) {
	text := `**MONDAY — Speed & Agility (45 min)**
**Location:** Garden → Pitch
**Equipment:** Ball, cones, wall

1. **Warm-up (10 min)**
- Jog: 2x10, rest 60s
- Gentle dribbling (2 min)

2. **Passing (20 min)** *(rest 90s between sets)*
- wall passes 5m: 3x10, 10 L | 10 R, rest 60s
`
	day := ParseDay(text, testCatalog())

	if day.DayOfWeek != "MONDAY" {
		t.Errorf("DayOfWeek = %q, want MONDAY", day.DayOfWeek)
	}
	if day.Title != "Speed & Agility" {
		t.Errorf("Title = %q, want Speed & Agility", day.Title)
	}
	if day.Duration != "45 min" {
		t.Errorf("Duration = %q, want 45 min", day.Duration)
	}
	if day.Location != "Garden , Pitch" {
		t.Errorf("Location = %q, want arrow normalized to comma", day.Location)
	}
	if day.Equipment != "Ball, cones, wall" {
		t.Errorf("Equipment = %q", day.Equipment)
	}

	if len(day.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(day.Blocks))
	}

	warmup := day.Blocks[0]
	if warmup.Title != "Warm-up" || warmup.Duration != "10 min" {
		t.Errorf("block 0 = %q (%q), want Warm-up (10 min)", warmup.Title, warmup.Duration)
	}
	if len(warmup.Exercises) != 2 {
		t.Fatalf("warm-up has %d exercises, want 2", len(warmup.Exercises))
	}
	jog := warmup.Exercises[0]
	if jog.Ref.ID == uuid.Nil {
		t.Error("Jog should resolve to the catalog entry")
	}
	if jog.Sets != "2" || jog.Reps != "10" || jog.Rest != "60s" {
		t.Errorf("jog prescription = sets %q reps %q rest %q", jog.Sets, jog.Reps, jog.Rest)
	}

	passing := day.Blocks[1]
	if len(passing.Exercises) != 1 {
		t.Fatalf("passing has %d exercises, want 1", len(passing.Exercises))
	}
	wall := passing.Exercises[0]
	if wall.Ref.ID == uuid.Nil {
		t.Error("lowercased name should still resolve to the catalog entry")
	}
	if wall.Reps != "10 L | 10 R" {
		t.Errorf("Reps = %q, want left/right split to win over plain reps", wall.Reps)
	}
}

// TestParseDayUnknownExercise verifies an unmatched name synthesizes a
// placeholder with inferred capability flags.
func TestParseDayUnknownExercise(t *testing.T) {
	text := `1. Strength (15 min)
- Goblet squat: 3x8, rest 90s
- Crossbar challenge: 2x5, 5 L | 5 R
`
	day := ParseDay(text, testCatalog())
	if len(day.Blocks) != 1 || len(day.Blocks[0].Exercises) != 2 {
		t.Fatalf("unexpected parse shape: %+v", day)
	}

	squat := day.Blocks[0].Exercises[0]
	if squat.Ref.ID != uuid.Nil {
		t.Error("unknown exercise should be a placeholder, not a catalog hit")
	}
	if !squat.Ref.IsCustom {
		t.Error("placeholder should be marked custom")
	}
	if !squat.Ref.TracksWeight {
		t.Error("squat should infer weight tracking from its name")
	}

	crossbar := day.Blocks[0].Exercises[1]
	if !crossbar.Ref.TracksLeftRight {
		t.Error("left/right reps should infer left-right tracking")
	}
	if crossbar.Ref.TracksWeight {
		t.Error("crossbar challenge should not infer weight tracking")
	}
}

// TestParseDayNoBlocks verifies prose without numbered blocks parses to zero
// blocks and that exercise lines outside any block are dropped.
func TestParseDayNoBlocks(t *testing.T) {
	day := ParseDay("some notes about training\n- Jog: 2x10\n", testCatalog())
	if len(day.Blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(day.Blocks))
	}
}

// TestParseDayCommentLines verifies // lines are skipped.
func TestParseDayCommentLines(t *testing.T) {
	text := `1. Warm-up (5 min)
// remember to stretch first
- Jog: 2x10
`
	day := ParseDay(text, testCatalog())
	if len(day.Blocks) != 1 || len(day.Blocks[0].Exercises) != 1 {
		t.Fatalf("comments should not affect the parse: %+v", day)
	}
}

// TestParseWeek verifies day-boundary segmentation across the supported
// header styles and that block-less days are dropped.
func TestParseWeek(t *testing.T) {
	text := `## Monday
MONDAY — Passing (45 min)
1. Warm-up (10 min)
- Jog: 2x10

- **Tuesday — Shooting (30 min)**
1. Finishing (20 min)
- Wall passes 5m: 3x10

WEDNESDAY
Rest day, no training.
`
	days := ParseWeek(text, testCatalog())
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2 (rest day has no blocks)", len(days))
	}
	if days[0].DayOfWeek != "MONDAY" || days[1].DayOfWeek != "TUESDAY" {
		t.Errorf("days = %s, %s; want MONDAY, TUESDAY", days[0].DayOfWeek, days[1].DayOfWeek)
	}
	if days[0].Title != "Passing" {
		t.Errorf("Monday title = %q, want Passing", days[0].Title)
	}
}

// TestParseWeekEmpty verifies unstructured text yields no days.
func TestParseWeekEmpty(t *testing.T) {
	for _, text := range []string{"", "just some notes", "- Jog: 2x10"} {
		if days := ParseWeek(text, nil); len(days) != 0 {
			t.Errorf("ParseWeek(%q) = %d days, want 0", text, len(days))
		}
	}
}
