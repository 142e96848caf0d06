package upload

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite"
)

// StateDB tracks which schedule files have already been uploaded so repeated
// runs over the same directory only send new or changed files.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (creating if needed) the local upload-state database.
func OpenStateDB(path string) (*StateDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS uploaded_schedules (
			path TEXT NOT NULL,
			size INTEGER NOT NULL,
			hash TEXT NOT NULL,
			workouts_created INTEGER NOT NULL DEFAULT 0,
			uploaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (path, hash)
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsUploaded reports whether a file with this path and content hash has
// already been sent. A changed file hashes differently and uploads again.
func (s *StateDB) IsUploaded(path, hash string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM uploaded_schedules WHERE path = ? AND hash = ?`,
		path, hash,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying state: %w", err)
	}
	return n > 0, nil
}

// MarkUploaded records a successful upload.
func (s *StateDB) MarkUploaded(path string, size int64, hash string, workoutsCreated int) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO uploaded_schedules (path, size, hash, workouts_created) VALUES (?, ?, ?, ?)`,
		path, size, hash, workoutsCreated,
	)
	if err != nil {
		return fmt.Errorf("recording upload: %w", err)
	}
	return nil
}

func (s *StateDB) Close() error {
	return s.db.Close()
}

// HashFile returns the hex SHA-256 of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
