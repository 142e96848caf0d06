package upload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stats summarizes a single uploader run.
type Stats struct {
	FilesTotal       int
	Uploaded         int
	Skipped          int
	Errored          int
	WorkoutsCreated  int
	BlocksCreated    int
	ExercisesCreated int
}

// Uploader walks a directory of schedule text files and sends each new or
// changed file to the server, tracking progress in a local state database.
type Uploader struct {
	client    *Client
	state     *StateDB
	dir       string
	mode      string
	overwrite bool
	dryRun    bool
	log       *slog.Logger

	stats Stats
}

// NewUploader wires an uploader over a directory of schedule files.
func NewUploader(client *Client, state *StateDB, dir, mode string, overwrite, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client:    client,
		state:     state,
		dir:       dir,
		mode:      mode,
		overwrite: overwrite,
		dryRun:    dryRun,
		log:       log,
	}
}

// Run uploads every eligible file under the directory and returns run stats.
// Individual file failures are logged and counted; they do not stop the run.
func (u *Uploader) Run(ctx context.Context) (Stats, error) {
	files, err := u.findScheduleFiles()
	if err != nil {
		return u.stats, err
	}
	u.stats.FilesTotal = len(files)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return u.stats, err
		}
		if err := u.uploadFile(ctx, path); err != nil {
			u.stats.Errored++
			u.log.Error("upload failed", "file", path, "error", err)
		}
	}
	return u.stats, nil
}

// findScheduleFiles collects .md and .txt files under the directory, sorted
// for deterministic ordering across runs.
func (u *Uploader) findScheduleFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(u.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".txt":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", u.dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func (u *Uploader) uploadFile(ctx context.Context, path string) error {
	hash, err := HashFile(path)
	if err != nil {
		return err
	}

	uploaded, err := u.state.IsUploaded(path, hash)
	if err != nil {
		return err
	}
	if uploaded {
		u.stats.Skipped++
		u.log.Debug("already uploaded", "file", path)
		return nil
	}

	if u.dryRun {
		u.stats.Uploaded++
		u.log.Info("would upload", "file", path)
		return nil
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := u.client.SendSchedule(ctx, string(text), u.mode, u.overwrite)
	if err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			// Not schedule text. Remember it so the next run skips it
			// instead of re-sending a file that will never parse.
			u.stats.Skipped++
			u.log.Warn("skipping unparseable file", "file", path, "error", formatErr)
			return u.markDone(path, hash, 0)
		}
		return err
	}

	u.stats.Uploaded++
	u.stats.WorkoutsCreated += result.WorkoutsCreated
	u.stats.BlocksCreated += result.BlocksCreated
	u.stats.ExercisesCreated += result.ExercisesCreated
	u.log.Info("uploaded schedule",
		"file", path,
		"workouts", result.WorkoutsCreated,
		"blocks", result.BlocksCreated,
		"new_exercises", result.ExercisesCreated)

	return u.markDone(path, hash, result.WorkoutsCreated)
}

func (u *Uploader) markDone(path, hash string, workoutsCreated int) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stating %s: %w", path, err)
	}
	return u.state.MarkUploaded(path, info.Size(), hash, workoutsCreated)
}
