package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitscribe/internal/config"
	"github.com/claude/fitscribe/internal/exercises"
	"github.com/claude/fitscribe/internal/mcp"
	"github.com/claude/fitscribe/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local database mode)")
	remoteURL := flag.String("remote", "", "fitscribe server URL (remote mode, e.g. https://fitscribe.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitscribe-mcp", Version)
		return
	}

	// stdio transport owns stdout; log to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	switch {
	case *remoteURL != "":
		ds = mcp.NewHTTPClient(*remoteURL)
		log.Info("remote mode", "url", *remoteURL)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("local database mode")
	default:
		fmt.Fprintf(os.Stderr, "Usage: fitscribe-mcp (-config <file> | -remote <URL>)\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := mcp.New(ds, exercises.NewCatalog(), Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
