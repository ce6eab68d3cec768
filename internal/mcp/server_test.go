package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/claude/fitscribe/internal/exercises"
	"github.com/claude/fitscribe/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// fakeDataSource serves canned workout rows for tool handler tests.
type fakeDataSource struct {
	rows []models.WorkoutRow
}

func (f *fakeDataSource) ListWorkouts(ctx context.Context, limit int) ([]models.WorkoutRow, error) {
	if limit > 0 && limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func (f *fakeDataSource) GetWorkout(ctx context.Context, id uuid.UUID) (*models.WorkoutRow, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, fmt.Errorf("workout %s not found", id)
}

func testHandlers(ds DataSource) *handlers {
	return &handlers{
		ds:     ds,
		lookup: exercises.NewCatalog(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultJSON decodes the single text content of a tool result into v.
func resultJSON(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
	if len(res.Content) != 1 {
		t.Fatalf("content items = %d, want 1", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	if err := json.Unmarshal([]byte(tc.Text), v); err != nil {
		t.Fatalf("decoding tool result: %v", err)
	}
}

// TestParseWorkoutTool verifies parse_workout returns a structured document
// without touching the data source.
func TestParseWorkoutTool(t *testing.T) {
	h := testHandlers(&fakeDataSource{})

	res, err := h.parseWorkout(context.Background(), callRequest(map[string]any{
		"text": "Leg Day\nSTRENGTH\nA1: Back Squat 3x10",
	}))
	if err != nil {
		t.Fatal(err)
	}

	var w models.Workout
	resultJSON(t, res, &w)
	if w.Title != "Leg Day" {
		t.Errorf("title = %q, want Leg Day", w.Title)
	}
	if len(w.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(w.Blocks))
	}
}

// TestParseWorkoutToolMissingText verifies the required-parameter error path.
func TestParseWorkoutToolMissingText(t *testing.T) {
	h := testHandlers(&fakeDataSource{})

	res, err := h.parseWorkout(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error for missing text")
	}
}

// TestExportWorkoutFITFromText verifies text input produces a base64 FIT
// payload with a filename.
func TestExportWorkoutFITFromText(t *testing.T) {
	h := testHandlers(&fakeDataSource{})

	res, err := h.exportWorkoutFIT(context.Background(), callRequest(map[string]any{
		"text": "Leg Day\nSTRENGTH\nA1: Back Squat 3x10",
	}))
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Filename  string `json:"filename"`
		SizeBytes int    `json:"size_bytes"`
		StepCount int    `json:"step_count"`
		FITBase64 string `json:"fit_base64"`
	}
	resultJSON(t, res, &out)

	if out.Filename != "Leg_Day.fit" {
		t.Errorf("filename = %q, want Leg_Day.fit", out.Filename)
	}
	if out.StepCount == 0 {
		t.Error("step_count = 0, want > 0")
	}
	data, err := base64.StdEncoding.DecodeString(out.FITBase64)
	if err != nil {
		t.Fatalf("fit_base64 is not valid base64: %v", err)
	}
	if len(data) != out.SizeBytes {
		t.Errorf("decoded size = %d, want %d", len(data), out.SizeBytes)
	}
	if len(data) < 14 || string(data[8:12]) != ".FIT" {
		t.Error("payload is not a FIT file")
	}
}

// TestExportWorkoutFITFromID verifies a stored workout document round-trips
// through the data source.
func TestExportWorkoutFITFromID(t *testing.T) {
	w := models.Workout{
		Title: "Stored",
		Blocks: []models.Block{{
			Label: "Strength",
			Exercises: []models.Exercise{
				{Name: "Deadlift", Sets: 3, Reps: 5, Type: models.TypeStrength},
			},
		}},
	}
	doc, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.New()
	h := testHandlers(&fakeDataSource{rows: []models.WorkoutRow{
		{ID: id, Title: "Stored", Document: doc},
	}})

	res, err := h.exportWorkoutFIT(context.Background(), callRequest(map[string]any{
		"id": id.String(),
	}))
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Filename string `json:"filename"`
	}
	resultJSON(t, res, &out)
	if out.Filename != "Stored.fit" {
		t.Errorf("filename = %q, want Stored.fit", out.Filename)
	}
}

// TestExportWorkoutFITNoInput verifies the error when neither text nor id is given.
func TestExportWorkoutFITNoInput(t *testing.T) {
	h := testHandlers(&fakeDataSource{})

	res, err := h.exportWorkoutFIT(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error when neither text nor id is provided")
	}
}

// TestExportWorkoutFITNoExercises verifies junk text yields a tool error, not
// an empty file.
func TestExportWorkoutFITNoExercises(t *testing.T) {
	h := testHandlers(&fakeDataSource{})

	res, err := h.exportWorkoutFIT(context.Background(), callRequest(map[string]any{
		"text": "like comment subscribe",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error for text with no exercises")
	}
}

// TestListWorkoutsTool verifies the list tool passes the limit through.
func TestListWorkoutsTool(t *testing.T) {
	rows := []models.WorkoutRow{
		{ID: uuid.New(), Title: "A", Document: json.RawMessage(`{}`)},
		{ID: uuid.New(), Title: "B", Document: json.RawMessage(`{}`)},
		{ID: uuid.New(), Title: "C", Document: json.RawMessage(`{}`)},
	}
	h := testHandlers(&fakeDataSource{rows: rows})

	res, err := h.listWorkouts(context.Background(), callRequest(map[string]any{
		"limit": 2,
	}))
	if err != nil {
		t.Fatal(err)
	}

	var got []models.WorkoutRow
	resultJSON(t, res, &got)
	if len(got) != 2 {
		t.Errorf("workouts = %d, want 2", len(got))
	}
}

// TestLookupExerciseTool verifies name resolution through the catalog.
func TestLookupExerciseTool(t *testing.T) {
	h := testHandlers(&fakeDataSource{})

	res, err := h.lookupExercise(context.Background(), callRequest(map[string]any{
		"name": "goblet squat",
	}))
	if err != nil {
		t.Fatal(err)
	}

	var got exercises.Resolution
	resultJSON(t, res, &got)
	if got.CategoryName != "squat" {
		t.Errorf("category = %q, want squat", got.CategoryName)
	}
}
