package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/pitchlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

var weekDays = []string{
	"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
}

// weeklyPlan renders the full week of scheduled workouts, Monday first.
// Days without a scheduled workout appear with a null plan so the shape is
// stable across weeks.
func (h *handlers) weeklyPlan(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	type dayPlan struct {
		Day  string                `json:"day"`
		Plan *models.WorkoutDetail `json:"plan"`
	}

	plan := make([]dayPlan, 0, len(weekDays))
	for _, day := range weekDays {
		entry := dayPlan{Day: day}
		workout, err := h.ds.GetWorkoutByDay(ctx, uid, day, models.ModeSolo)
		if err != nil {
			return nil, err
		}
		if workout != nil {
			detail, err := h.ds.GetWorkoutDetail(ctx, workout.ID)
			if err != nil {
				return nil, err
			}
			entry.Plan = detail
		}
		plan = append(plan, entry)
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
