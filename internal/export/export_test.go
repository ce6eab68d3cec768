package export

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/fitscribe/internal/exercises"
)

const sampleWorkout = `Leg Day
STRENGTH
A1: Back Squat 3x10
A2: Walking Lunges x12
`

func testExporter(t *testing.T, inDir, outDir string, dryRun, force bool) (*Exporter, *StateDB) {
	t.Helper()
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { state.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(state, exercises.NewCatalog(), inDir, outDir, dryRun, force, log), state
}

// TestRunExportsAndSkips verifies a file converts on the first run and is
// skipped unchanged on the second.
func TestRunExportsAndSkips(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(inDir, "legday.txt"), []byte(sampleWorkout), 0o644); err != nil {
		t.Fatal(err)
	}

	ex, state := testExporter(t, inDir, outDir, false, false)

	stats, err := ex.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesExported != 1 || stats.FilesErrored != 0 {
		t.Fatalf("first run stats = %+v, want 1 exported", stats)
	}

	outPath := filepath.Join(outDir, "Leg_Day.fit")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if len(data) < 14 || string(data[8:12]) != ".FIT" {
		t.Error("output is not a FIT file")
	}

	// Second run with the same state skips the unchanged file.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ex2 := New(state, exercises.NewCatalog(), inDir, outDir, false, false, log)
	stats, err = ex2.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesSkipped != 1 || stats.FilesExported != 0 {
		t.Errorf("second run stats = %+v, want 1 skipped", stats)
	}
}

// TestRunForce verifies -force re-converts files the state db already knows.
func TestRunForce(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(inDir, "legday.txt"), []byte(sampleWorkout), 0o644); err != nil {
		t.Fatal(err)
	}

	ex, state := testExporter(t, inDir, outDir, false, false)
	if _, err := ex.Run(); err != nil {
		t.Fatal(err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	forced := New(state, exercises.NewCatalog(), inDir, outDir, false, true, log)
	stats, err := forced.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesExported != 1 {
		t.Errorf("forced run stats = %+v, want 1 exported", stats)
	}
}

// TestRunDryRun verifies dry-run writes nothing and records nothing.
func TestRunDryRun(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(filepath.Join(inDir, "legday.txt"), []byte(sampleWorkout), 0o644); err != nil {
		t.Fatal(err)
	}

	ex, state := testExporter(t, inDir, outDir, true, false)
	stats, err := ex.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesExported != 1 {
		t.Errorf("dry-run stats = %+v, want 1 exported", stats)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("dry-run created the output directory")
	}

	done, err := state.IsExported("legday.txt", int64(len(sampleWorkout)), mustHash(t, filepath.Join(inDir, "legday.txt")))
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("dry-run recorded state")
	}
}

// TestRunErrorsOnJunk verifies a file with no recognizable exercises counts
// as an error without aborting the run.
func TestRunErrorsOnJunk(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(inDir, "junk.txt"), []byte("like comment subscribe\n123\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(inDir, "good.txt"), []byte(sampleWorkout), 0o644); err != nil {
		t.Fatal(err)
	}

	ex, _ := testExporter(t, inDir, outDir, false, false)
	stats, err := ex.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesErrored != 1 {
		t.Errorf("errored = %d, want 1", stats.FilesErrored)
	}
	if stats.FilesExported != 1 {
		t.Errorf("exported = %d, want 1", stats.FilesExported)
	}
}

// TestRunIgnoresOtherExtensions verifies non-.txt files are not counted.
func TestRunIgnoresOtherExtensions(t *testing.T) {
	inDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(inDir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ex, _ := testExporter(t, inDir, t.TempDir(), false, false)
	stats, err := ex.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesTotal != 0 {
		t.Errorf("total = %d, want 0", stats.FilesTotal)
	}
}

// TestStateDBRoundTrip verifies the mark/check cycle and hash sensitivity.
func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	if err := state.MarkExported("a.txt", 10, "hash1"); err != nil {
		t.Fatal(err)
	}

	done, err := state.IsExported("a.txt", 10, "hash1")
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("expected a.txt to be recorded")
	}

	// A changed hash means the file must be converted again.
	done, err = state.IsExported("a.txt", 10, "hash2")
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("changed hash should not count as exported")
	}
}

func mustHash(t *testing.T, path string) string {
	t.Helper()
	h, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return h
}
