package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/claude/pitchlog/internal/schedule"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("List the scheduled workouts. Each entry includes day of week, mode (solo or friend), title, duration, location, and equipment."),
	mcp.WithString("day", mcp.Description("Filter by day of week (e.g. MONDAY). Returns the full workout detail for that day.")),
	mcp.WithString("mode", mcp.Description("Training mode filter, used with day. Defaults to solo."), mcp.Enum("solo", "friend")),
)

var toolGetWorkoutDetail = mcp.NewTool("get_workout_detail",
	mcp.WithDescription("Get one workout with its ordered blocks and exercises, including sets/reps/rest prescriptions."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Workout UUID")),
)

var toolGetSessionStats = mcp.NewTool("get_session_stats",
	mcp.WithDescription("Training dashboard summary: total completed sessions, current daily streak, sessions this week (from Monday), and average finishing accuracy from near/far shot logs."),
)

var toolGetRecentSessions = mcp.NewTool("get_recent_sessions",
	mcp.WithDescription("Recent training sessions, newest first, including status (in_progress, paused, completed) and timing."),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return. Defaults to 10.")),
)

var toolGetCheckIns = mcp.NewTool("get_check_ins",
	mcp.WithDescription("Periodic skill check-ins, newest first: passing/finishing accuracy per foot, skill moves, endurance splits, strength lifts, and confidence scores."),
	mcp.WithNumber("limit", mcp.Description("Maximum check-ins to return. Defaults to 5.")),
)

var toolParseSchedule = mcp.NewTool("parse_schedule",
	mcp.WithDescription("Dry-run parse of pasted schedule text. Returns the recognized days, blocks, and exercises without writing anything, so a schedule can be checked before uploading."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Schedule text: day headers like 'MONDAY — Speed & Agility (45 min)', numbered blocks, dashed exercises")),
)

// --- Tool handlers ---

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	if day := req.GetString("day", ""); day != "" {
		mode := req.GetString("mode", "solo")
		workout, err := h.ds.GetWorkoutByDay(ctx, uid, strings.ToUpper(day), mode)
		if err != nil {
			h.log.Error("mcp get_workouts", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		if workout == nil {
			return mcp.NewToolResultText("no workout scheduled for " + strings.ToUpper(day)), nil
		}
		detail, err := h.ds.GetWorkoutDetail(ctx, workout.ID)
		if err != nil {
			h.log.Error("mcp get_workouts", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		return toolJSON(detail)
	}

	workouts, err := h.ds.ListWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(workouts)
}

func (h *handlers) getWorkoutDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("workout_id is not a valid UUID"), nil
	}

	detail, err := h.ds.GetWorkoutDetail(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout_detail", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(detail)
}

func (h *handlers) getSessionStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetSessionStats(ctx, UserIDFromContext(ctx), time.Now())
	if err != nil {
		h.log.Error("mcp get_session_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(stats)
}

func (h *handlers) getRecentSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	sessions, err := h.ds.ListSessions(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_recent_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return toolJSON(sessions)
}

func (h *handlers) getCheckIns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 5)
	checkIns, err := h.ds.ListCheckIns(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_check_ins", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if limit > 0 && len(checkIns) > limit {
		checkIns = checkIns[:limit]
	}
	return toolJSON(checkIns)
}

func (h *handlers) parseSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	catalog, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp parse_schedule", "error", err)
		return mcp.NewToolResultError("catalog query failed: " + err.Error()), nil
	}

	days := schedule.ParseWeek(text, catalog)
	if len(days) == 0 {
		return mcp.NewToolResultText("no workout days recognized; expected day headers like 'MONDAY — Title (45 min)' followed by numbered blocks"), nil
	}
	return toolJSON(days)
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
