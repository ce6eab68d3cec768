package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/fitscribe/internal/exercises"
	"github.com/claude/fitscribe/internal/export"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	inDir := flag.String("in", "", "directory of workout .txt files")
	outDir := flag.String("out", "fit", "output directory for .fit files")
	dryRun := flag.Bool("dry-run", false, "parse and compile but don't write files")
	force := flag.Bool("force", false, "re-convert files even if already exported")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitscribe-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *inDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: fitscribe-export -in <dir> [-out <dir>] [-dry-run] [-force]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*inDir)
	if err != nil || !info.IsDir() {
		log.Error("input directory not found", "path", *inDir)
		os.Exit(1)
	}

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	stateDir := filepath.Join(homeDir, ".fitscribe-export")

	state, err := export.OpenStateDB(stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode — files will be parsed and compiled but not written")
	}

	exporter := export.New(state, exercises.NewCatalog(), *inDir, *outDir, *dryRun, *force, log)
	stats, err := exporter.Run()
	if err != nil {
		log.Error("export failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("export complete")
}

func printStats(stats *export.Stats) {
	fmt.Println()
	fmt.Println("=== Export Summary ===")
	fmt.Printf("  Files total:     %d\n", stats.FilesTotal)
	fmt.Printf("  Files exported:  %d\n", stats.FilesExported)
	fmt.Printf("  Files skipped:   %d (already exported)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:   %d\n", stats.FilesErrored)
	fmt.Printf("  Steps written:   %d\n", stats.StepsWritten)
	fmt.Println()
}
