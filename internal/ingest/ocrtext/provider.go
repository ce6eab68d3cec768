package ocrtext

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/claude/fitscribe/internal/ingest"
	"github.com/claude/fitscribe/internal/models"
	"github.com/claude/fitscribe/internal/storage"
	"github.com/google/uuid"
)

// Provider processes OCR'd workout text and stores the parsed document.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new OCR-text ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses raw workout text and stores the resulting document.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, source string) (*ingest.Result, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading workout text: %w", err)
	}

	w := Parse(string(text), source)

	doc, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encoding workout document: %w", err)
	}

	row := models.WorkoutRow{
		ID:        uuid.New(),
		Source:    source,
		Title:     w.Title,
		Document:  doc,
		CreatedAt: time.Now().UTC(),
	}
	inserted, err := p.db.InsertWorkout(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("storing workout: %w", err)
	}

	result := &ingest.Result{
		WorkoutID: row.ID,
		Title:     w.Title,
		Inserted:  inserted,
	}
	for _, b := range w.Blocks {
		result.BlocksParsed++
		result.ExercisesParsed += len(b.Exercises)
		result.SupersetsParsed += len(b.Supersets)
		for _, ss := range b.Supersets {
			result.ExercisesParsed += len(ss.Exercises)
		}
	}
	if result.ExercisesParsed == 0 {
		result.Message = "no exercises recognized"
	}

	p.log.Info("workout ingested",
		"id", row.ID,
		"title", w.Title,
		"blocks", result.BlocksParsed,
		"exercises", result.ExercisesParsed,
	)
	return result, nil
}
