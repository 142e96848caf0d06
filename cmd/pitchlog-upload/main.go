package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/pitchlog/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "PitchLog server URL (e.g. https://pitchlog.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("PITCHLOG_API_KEY"), "API key for schedule uploads (default $PITCHLOG_API_KEY)")
	dir := flag.String("dir", "", "directory of schedule files (.md or .txt)")
	mode := flag.String("mode", "solo", "training mode for uploaded schedules (solo or friend)")
	overwrite := flag.Bool("overwrite", false, "replace existing workouts for the uploaded days")
	dryRun := flag.Bool("dry-run", false, "report what would be uploaded without sending")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("pitchlog-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dir == "" {
		fmt.Fprintf(os.Stderr, "Usage: pitchlog-upload -server <URL> -dir <schedule dir> [-mode solo|friend] [-overwrite] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	info, err := os.Stat(*dir)
	if err != nil || !info.IsDir() {
		log.Error("schedule directory not found", "path", *dir)
		os.Exit(1)
	}

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	stateDir := filepath.Join(homeDir, ".pitchlog-upload")
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		log.Error("failed to create state directory", "path", stateDir, "error", err)
		os.Exit(1)
	}

	state, err := upload.OpenStateDB(filepath.Join(stateDir, "state.db"))
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode — files will be checked but not sent")
	}

	// Run upload
	client := upload.NewClient(*serverURL, *apiKey)
	uploader := upload.NewUploader(client, state, *dir, *mode, *overwrite, *dryRun, log)
	stats, err := uploader.Run(context.Background())
	if err != nil {
		log.Error("upload failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("upload complete")
}

func printStats(stats upload.Stats) {
	fmt.Println()
	fmt.Println("=== Upload Summary ===")
	fmt.Printf("  Files total:      %d\n", stats.FilesTotal)
	fmt.Printf("  Files uploaded:   %d\n", stats.Uploaded)
	fmt.Printf("  Files skipped:    %d (already uploaded)\n", stats.Skipped)
	fmt.Printf("  Files errored:    %d\n", stats.Errored)
	fmt.Println()
	fmt.Printf("  Workouts created:  %d\n", stats.WorkoutsCreated)
	fmt.Printf("  Blocks created:    %d\n", stats.BlocksCreated)
	fmt.Printf("  New exercises:     %d\n", stats.ExercisesCreated)
	fmt.Println()
}
