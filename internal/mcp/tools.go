package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/claude/fitscribe/internal/fit"
	"github.com/claude/fitscribe/internal/ingest/ocrtext"
	"github.com/claude/fitscribe/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolParseWorkout = mcp.NewTool("parse_workout",
	mcp.WithDescription("Parse OCR'd workout text into a structured workout document (title, blocks, supersets, exercises). Nothing is stored."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Raw workout text, e.g. from a screenshot OCR")),
	mcp.WithString("source", mcp.Description("Free-form source tag (e.g. 'instagram', 'whiteboard photo')")),
)

var toolExportWorkoutFIT = mcp.NewTool("export_workout_fit",
	mcp.WithDescription("Compile a workout to a Garmin FIT workout file. Pass either raw text or the ID of a stored workout. Returns the file as base64 plus the suggested filename."),
	mcp.WithString("text", mcp.Description("Raw workout text to parse and export")),
	mcp.WithString("id", mcp.Description("UUID of a stored workout to export instead of raw text")),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List recently ingested workouts, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts to return. Defaults to 20.")),
)

var toolLookupExercise = mcp.NewTool("lookup_exercise",
	mcp.WithDescription("Resolve an exercise name to its Garmin FIT exercise category and canonical display name."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name (e.g. 'goblet squat', 'kb swing')")),
)

// --- Tool handlers ---

func (h *handlers) parseWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}
	source := req.GetString("source", "mcp")

	workout := ocrtext.Parse(text, source)

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) exportWorkoutFIT(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	idStr := req.GetString("id", "")

	var workout *models.Workout
	switch {
	case idStr != "":
		id, err := uuid.Parse(idStr)
		if err != nil {
			return mcp.NewToolResultError("invalid workout id: " + err.Error()), nil
		}
		row, err := h.ds.GetWorkout(ctx, id)
		if err != nil {
			h.log.Error("mcp export_workout_fit", "error", err)
			return mcp.NewToolResultError("workout not found: " + err.Error()), nil
		}
		workout = &models.Workout{}
		if err := json.Unmarshal(row.Document, workout); err != nil {
			return mcp.NewToolResultError("corrupt workout document: " + err.Error()), nil
		}
	case text != "":
		workout = ocrtext.Parse(text, "mcp")
	default:
		return mcp.NewToolResultError("either text or id is required"), nil
	}

	steps, err := fit.Compile(workout, h.lookup)
	if err != nil {
		if errors.Is(err, fit.ErrNoExercises) {
			return mcp.NewToolResultError("workout has no exercises"), nil
		}
		return mcp.NewToolResultError("compile failed: " + err.Error()), nil
	}

	data, err := fit.Encode(workout.Title, steps, time.Now())
	if err != nil {
		return mcp.NewToolResultError("encode failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"filename":   fit.Filename(workout.Title),
		"size_bytes": len(data),
		"step_count": len(steps),
		"fit_base64": base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)

	rows, err := h.ds.ListWorkouts(ctx, limit)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) lookupExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	res := h.lookup.Resolve(name)

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
