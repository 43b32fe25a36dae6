package leaderboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Repository reads and writes the raw leaderboard file
type Repository struct {
	path string
}

// NewRepository creates a repository for the file at path
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the file location
func (r *Repository) Path() string {
	return r.path
}

// Read returns the file content. A missing file yields fs.ErrNotExist.
func (r *Repository) Read() ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard file: %w", err)
	}
	return data, nil
}

// Exists reports whether the leaderboard file is present
func (r *Repository) Exists() (bool, error) {
	_, err := os.Stat(r.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat leaderboard file: %w", err)
}

// Write replaces the file atomically: the data goes to a temp file in the same
// directory which is then renamed over the target.
func (r *Repository) Write(data []byte) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace leaderboard file: %w", err)
	}
	committed = true
	return nil
}

// Remove deletes the file. It reports false without error when nothing was there.
func (r *Repository) Remove() (bool, error) {
	err := os.Remove(r.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to remove leaderboard file: %w", err)
}
