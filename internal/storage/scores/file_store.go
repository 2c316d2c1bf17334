package scores

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/dopewars/internal/domain"
)

// DefaultFile is where scores are kept when no path is configured.
const DefaultFile = "./data/scores.json"

// FileStore keeps the table in a JSON file rewritten atomically on every add.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates the parent directory of path if needed.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create scores dir")
	}

	return &FileStore{path: path}, nil
}

type fileState struct {
	Scores []domain.ScoreRecord `json:"scores"`
}

func (s *FileStore) load() ([]domain.ScoreRecord, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "read scores")
	}

	if len(payload) == 0 {
		return nil, nil
	}

	var state fileState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, errors.Wrap(err, "decode scores")
	}

	return state.Scores, nil
}

func (s *FileStore) save(records []domain.ScoreRecord) error {
	payload, err := json.MarshalIndent(fileState{Scores: records}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode scores")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return errors.Wrap(err, "write scores temp file")
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "persist scores")
	}

	return nil
}

// Top implements Store.
func (s *FileStore) Top(_ context.Context) ([]domain.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	return domain.NewLeaderboard(records).Records(), nil
}

// Add implements Store.
func (s *FileStore) Add(_ context.Context, rec domain.ScoreRecord) ([]domain.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	board := domain.NewLeaderboard(records)
	board.Add(rec)
	top := board.Records()

	if err := s.save(top); err != nil {
		return nil, err
	}

	return top, nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
