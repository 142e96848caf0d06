// Package schedule turns free-text weekly training schedules into workout,
// block and exercise records. One parser serves both the single-day editor
// flow and the whole-week bulk upload; parsing is a pure function over the
// text and the current exercise catalog.
package schedule

import (
	"regexp"
	"strings"

	"github.com/claude/pitchlog/internal/models"
)

var (
	// dayHeaderRe matches: **MONDAY — Speed & Agility (45 min)**
	// The bold markers and leading dash are optional; hyphen works too.
	dayHeaderRe = regexp.MustCompile(`(?i)^-?\s*(?:\*\*)?([A-Z]+)\s*[—–-]\s*(.+?)\s*\((.+?)\)`)

	// locationRe matches: **Location:** Garden → Pitch
	locationRe = regexp.MustCompile(`(?i)(?:\*\*)?Location:(?:\*\*)?\s*(.+)`)

	// equipmentRe matches: **Equipment:** Ball, cones, wall
	equipmentRe = regexp.MustCompile(`(?i)(?:\*\*)?Equipment:(?:\*\*)?\s*(.+)`)

	// blockRe matches: 1. **Warm-up (10 min)** *(rest 60s between sets)*
	blockRe = regexp.MustCompile(`^\d+\.\s*(?:\*\*)?(.+?)\s*\((.+?)\)(?:\*\*)?\s*(?:\*\((.+?)\)\*)?`)

	// exerciseColonRe matches: - Wall passes 5m: 3x10, 10 L | 10 R, rest 60s
	exerciseColonRe = regexp.MustCompile(`^-\s*(.+?):\s*(.+)`)

	// exerciseBareRe matches: - Gentle dribbling (2 min)
	exerciseBareRe = regexp.MustCompile(`^-\s*(.+?)(?:\s*\((.+?)\))?$`)

	// Detail extractions, applied independently to the text after the colon.
	setsRepsRe  = regexp.MustCompile(`(\d+)\s*[x×]\s*(\d+)`)
	leftRightRe = regexp.MustCompile(`(\d+)\s*L\s*\|\s*(\d+)\s*R`)
	restRe      = regexp.MustCompile(`(?i)rest\s*(\d+[\w\s]+)`)

	// dayBoundaryRes split whole-week input into per-day chunks:
	// "## Monday", "- **Monday ...", or a line that is only a day name.
	dayBoundaryRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^##\s+(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)`),
		regexp.MustCompile(`(?i)^-\s*\*\*(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)`),
		regexp.MustCompile(`(?i)^(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)$`),
	}
)

// weightKeywords mark exercise names that imply weight tracking when a new
// catalog entry has to be synthesized.
var weightKeywords = []string{"press", "squat", "deadlift", "row", "curl", "pull-up"}

// Exercise is one parsed exercise line. Ref is the resolved catalog entry;
// a zero Ref.ID means Ref is a synthesized placeholder that still needs to
// be created before persistence.
type Exercise struct {
	Ref   models.Exercise
	Sets  string
	Reps  string
	Rest  string
	Notes string
}

// Block is one parsed named phase with its ordered exercises.
type Block struct {
	Title     string
	Duration  string
	Exercises []Exercise
}

// Day is the parse result for one day's worth of text.
type Day struct {
	DayOfWeek string // uppercase, empty if no day header matched
	Title     string
	Duration  string
	Location  string
	Equipment string
	Blocks    []Block
}

// ParseDay parses a single day's schedule text. Lines are matched against
// the rules in order; the first match wins and unrecognized lines are
// skipped. A result with zero blocks is valid parser output — rejecting it
// is the persistence pipeline's job.
func ParseDay(text string, catalog []models.Exercise) Day {
	var day Day
	var current *Block
	byName := catalogIndex(catalog)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if m := dayHeaderRe.FindStringSubmatch(line); m != nil && isDayName(m[1]) {
			day.DayOfWeek = strings.ToUpper(m[1])
			day.Title = strings.TrimSpace(m[2])
			day.Duration = strings.TrimSpace(m[3])
			continue
		}

		if m := locationRe.FindStringSubmatch(line); m != nil {
			loc := strings.ReplaceAll(m[1], "→", ",")
			loc = strings.ReplaceAll(loc, "->", ",")
			day.Location = strings.TrimSpace(loc)
			continue
		}

		if m := equipmentRe.FindStringSubmatch(line); m != nil {
			day.Equipment = strings.TrimSpace(m[1])
			continue
		}

		if m := blockRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				day.Blocks = append(day.Blocks, *current)
			}
			current = &Block{
				Title:    strings.TrimSpace(m[1]),
				Duration: strings.TrimSpace(m[2]),
			}
			continue
		}

		if m := exerciseColonRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				continue
			}
			name := strings.TrimSpace(m[1])
			details := strings.TrimSpace(m[2])

			var sets, reps, rest string
			if sr := setsRepsRe.FindStringSubmatch(details); sr != nil {
				sets, reps = sr[1], sr[2]
			}
			hasLR := false
			if lr := leftRightRe.FindStringSubmatch(details); lr != nil {
				reps = lr[1] + " L | " + lr[2] + " R"
				hasLR = true
			}
			if rm := restRe.FindStringSubmatch(details); rm != nil {
				rest = strings.TrimSpace(rm[1])
			}

			current.Exercises = append(current.Exercises, Exercise{
				Ref:   resolveExercise(byName, name, hasLR),
				Sets:  sets,
				Reps:  reps,
				Rest:  rest,
				Notes: details,
			})
			continue
		}

		if m := exerciseBareRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				continue
			}
			name := strings.TrimSpace(m[1])
			current.Exercises = append(current.Exercises, Exercise{
				Ref:   resolveExercise(byName, name, false),
				Notes: strings.TrimSpace(m[2]),
			})
		}
	}

	if current != nil {
		day.Blocks = append(day.Blocks, *current)
	}
	return day
}

// ParseWeek segments whole-week input on day-boundary lines and parses each
// chunk with the day rules. Days that parse to zero blocks are dropped; a
// fully empty result means the text had no recognizable schedule.
func ParseWeek(text string, catalog []models.Exercise) []Day {
	var days []Day
	var chunk strings.Builder
	currentDay := ""

	flush := func() {
		if currentDay == "" || strings.TrimSpace(chunk.String()) == "" {
			return
		}
		day := ParseDay(chunk.String(), catalog)
		day.DayOfWeek = currentDay
		if len(day.Blocks) > 0 {
			days = append(days, day)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if name, ok := matchDayBoundary(line); ok {
			flush()
			currentDay = name
			chunk.Reset()
			chunk.WriteString(line + "\n") // keep the header for title/duration extraction
			continue
		}
		if currentDay != "" {
			chunk.WriteString(line + "\n")
		}
	}
	flush()

	return days
}

func matchDayBoundary(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, re := range dayBoundaryRes {
		if m := re.FindStringSubmatch(trimmed); m != nil {
			return strings.ToUpper(m[1]), true
		}
	}
	return "", false
}

func isDayName(s string) bool {
	switch strings.ToUpper(s) {
	case "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY":
		return true
	}
	return false
}

func catalogIndex(catalog []models.Exercise) map[string]models.Exercise {
	idx := make(map[string]models.Exercise, len(catalog))
	for _, ex := range catalog {
		idx[strings.ToLower(ex.Name)] = ex
	}
	return idx
}

// resolveExercise binds a name to the catalog case-insensitively, or
// synthesizes a placeholder with inferred capability flags.
func resolveExercise(byName map[string]models.Exercise, name string, hasLeftRight bool) models.Exercise {
	if ex, ok := byName[strings.ToLower(name)]; ok {
		return ex
	}
	return models.Exercise{
		Name:            name,
		Category:        "Custom",
		Type:            "Custom",
		TracksLeftRight: hasLeftRight,
		TracksWeight:    inferWeight(name),
		IsCustom:        true,
	}
}

func inferWeight(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range weightKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
