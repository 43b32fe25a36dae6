package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/mcdev12/reaction/go/internal/models"
	"github.com/rs/zerolog/log"
)

// FileRepository defines what the store needs from the persistence layer
type FileRepository interface {
	Path() string
	Read() ([]byte, error)
	Write(data []byte) error
	Remove() (bool, error)
	Exists() (bool, error)
}

// Store owns the leaderboard file and keeps it sorted and bounded.
// Read-modify-write operations are serialized so a background refresh
// cannot interleave with a save.
type Store struct {
	repo FileRepository
	mu   sync.Mutex
}

// NewStore creates a store backed by repo
func NewStore(repo FileRepository) *Store {
	return &Store{repo: repo}
}

// Open creates a store for the leaderboard file at path
func Open(path string) *Store {
	return NewStore(NewRepository(path))
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.repo.Path()
}

// Load returns the persisted leaderboard, or an empty one when no file exists.
// A file that cannot be decoded yields ErrCorruptLeaderboard.
func (s *Store) Load() (models.Leaderboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (models.Leaderboard, error) {
	data, err := s.repo.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Leaderboard{}, nil
		}
		return nil, err
	}
	board, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.repo.Path(), err)
	}
	return board, nil
}

// Save inserts entry, keeps the best models.MaxEntries and rewrites the file.
// The entry is validated and its score rounded before anything is written.
func (s *Store) Save(entry models.ScoreEntry) (models.Leaderboard, error) {
	entry, err := models.NewScoreEntry(entry.Name, entry.Score)
	if err != nil {
		return nil, fmt.Errorf("invalid score entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	next := current.Insert(entry)
	if err := s.write(next); err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", s.repo.Path()).
		Str("name", entry.Name).
		Float64("score", entry.Score).
		Int("entries", len(next)).
		Msg("saved score")
	return next, nil
}

// Replace overwrites the file with board without merging local entries
func (s *Store) Replace(board models.Leaderboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(board.Normalize())
}

// Seed writes board only when no leaderboard file exists yet.
// It reports whether the file was written.
func (s *Store) Seed(board models.Leaderboard) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repo.Exists()
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := s.write(board.Normalize()); err != nil {
		return false, err
	}
	return true, nil
}

// Merge unions board with the local entries and rewrites the file
func (s *Store) Merge(board models.Leaderboard) (models.Leaderboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	merged := current.Union(board)
	if err := s.write(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Reset deletes the leaderboard file. It reports whether a file was removed;
// resetting an absent leaderboard is not an error.
func (s *Store) Reset() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.repo.Remove()
	if err != nil {
		return false, err
	}
	log.Debug().Str("path", s.repo.Path()).Bool("removed", removed).Msg("reset leaderboard")
	return removed, nil
}

// Exists reports whether a leaderboard file is present
func (s *Store) Exists() (bool, error) {
	return s.repo.Exists()
}

// AverageScore returns the mean persisted score, false when there are no scores
func (s *Store) AverageScore() (float64, bool, error) {
	board, err := s.Load()
	if err != nil {
		return 0, false, err
	}
	avg, ok := board.Average()
	return avg, ok, nil
}

// BestScore returns the lowest persisted score, false when there are no scores
func (s *Store) BestScore() (float64, bool, error) {
	board, err := s.Load()
	if err != nil {
		return 0, false, err
	}
	best, ok := board.Best()
	return best, ok, nil
}

func (s *Store) write(board models.Leaderboard) error {
	data, err := Encode(board)
	if err != nil {
		return err
	}
	if err := s.repo.Write(data); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}

// Decode parses the JSON array form of a leaderboard and normalizes it
func Decode(data []byte) (models.Leaderboard, error) {
	var board models.Leaderboard
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLeaderboard, err)
	}
	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLeaderboard, err)
	}
	return board.Normalize(), nil
}

// Encode serializes a leaderboard as a JSON array
func Encode(board models.Leaderboard) ([]byte, error) {
	if board == nil {
		board = models.Leaderboard{}
	}
	data, err := json.Marshal(board)
	if err != nil {
		return nil, fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	return data, nil
}
