package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/fitscribe/internal/exercises"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	// nil DB is fine for handlers that never reach storage.
	return New(nil, nil, exercises.NewCatalog(), "test-key", log)
}

// TestHandleExport verifies the stateless text-to-FIT endpoint returns a
// valid download with a derived filename.
func TestHandleExport(t *testing.T) {
	s := testServer(t)

	body := strings.NewReader("Leg Day\nSTRENGTH\nA1: Back Squat 3x10\nA2: Bench Press x8")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/export", body)
	req.Header.Set("X-API-Key", "test-key")
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("content-type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="Leg_Day.fit"`) {
		t.Errorf("content-disposition = %q, want Leg_Day.fit", cd)
	}

	data := rec.Body.Bytes()
	if len(data) < 14 || string(data[8:12]) != ".FIT" {
		t.Errorf("response is not a FIT file (len %d)", len(data))
	}
}

// TestHandleExportNoExercises verifies text with no recognizable exercises
// yields 422 rather than an empty FIT file.
func TestHandleExportNoExercises(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/export", strings.NewReader("like comment subscribe\n123"))
	req.Header.Set("X-API-Key", "test-key")
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

// TestHandleExportRequiresKey verifies the export endpoint sits behind API
// key auth.
func TestHandleExportRequiresKey(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/export", strings.NewReader("STRENGTH\nSquats x10"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/export", strings.NewReader("STRENGTH\nSquats x10"))
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key status = %d, want 403", rec.Code)
	}
}

// TestHandleGetWorkoutBadID verifies a malformed UUID is rejected before any
// storage access.
func TestHandleGetWorkoutBadID(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// TestHandleWorkoutFITBadID verifies the same guard on the FIT download route.
func TestHandleWorkoutFITBadID(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts/not-a-uuid/fit", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
