// Package export converts directories of workout text files into FIT files,
// tracking completed conversions in a local SQLite database.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/fitscribe/internal/exercises"
	"github.com/claude/fitscribe/internal/fit"
	"github.com/claude/fitscribe/internal/ingest/ocrtext"
)

// Stats summarizes one export run.
type Stats struct {
	FilesTotal    int
	FilesExported int
	FilesSkipped  int
	FilesErrored  int
	StepsWritten  int
}

// Exporter walks a directory of workout text files and writes FIT files.
type Exporter struct {
	state  *StateDB
	lookup exercises.Lookup
	inDir  string
	outDir string
	dryRun bool
	force  bool
	log    *slog.Logger
}

// New creates an Exporter. With dryRun set, files are parsed and compiled but
// nothing is written or recorded. With force set, the state database is
// ignored and every file is converted again.
func New(state *StateDB, lookup exercises.Lookup, inDir, outDir string, dryRun, force bool, log *slog.Logger) *Exporter {
	return &Exporter{
		state:  state,
		lookup: lookup,
		inDir:  inDir,
		outDir: outDir,
		dryRun: dryRun,
		force:  force,
		log:    log,
	}
}

// Run converts every .txt file under the input directory. Per-file failures
// are logged and counted; only setup failures abort the run.
func (e *Exporter) Run() (*Stats, error) {
	stats := &Stats{}

	if !e.dryRun {
		if err := os.MkdirAll(e.outDir, 0o755); err != nil {
			return stats, fmt.Errorf("creating output dir %s: %w", e.outDir, err)
		}
	}

	err := filepath.WalkDir(e.inDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		stats.FilesTotal++

		if err := e.exportFile(path, stats); err != nil {
			stats.FilesErrored++
			e.log.Error("export failed", "file", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walking %s: %w", e.inDir, err)
	}

	return stats, nil
}

func (e *Exporter) exportFile(path string, stats *Stats) error {
	relPath, err := filepath.Rel(e.inDir, path)
	if err != nil {
		relPath = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	if !e.force {
		done, err := e.state.IsExported(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("state lookup: %w", err)
		}
		if done {
			stats.FilesSkipped++
			e.log.Debug("already exported", "file", relPath)
			return nil
		}
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading: %w", err)
	}

	workout := ocrtext.Parse(string(text), "file:"+relPath)
	steps, err := fit.Compile(workout, e.lookup)
	if err != nil {
		if errors.Is(err, fit.ErrNoExercises) {
			return fmt.Errorf("no exercises recognized in %s", relPath)
		}
		return fmt.Errorf("compiling: %w", err)
	}

	data, err := fit.Encode(workout.Title, steps, time.Now())
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	outName := fit.Filename(workout.Title)
	if e.dryRun {
		e.log.Info("would export", "file", relPath, "out", outName, "steps", len(steps))
		stats.FilesExported++
		stats.StepsWritten += len(steps)
		return nil
	}

	outPath := filepath.Join(e.outDir, outName)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	if err := e.state.MarkExported(relPath, info.Size(), hash); err != nil {
		return fmt.Errorf("recording state: %w", err)
	}

	stats.FilesExported++
	stats.StepsWritten += len(steps)
	e.log.Info("exported", "file", relPath, "out", outName, "steps", len(steps), "bytes", len(data))
	return nil
}
