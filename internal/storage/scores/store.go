// Package scores persists the high score table.
package scores

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"go.uber.org/zap"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store keeps the best domain.MaxScores results, highest first.
type Store interface {
	// Top returns the current table.
	Top(ctx context.Context) ([]domain.ScoreRecord, error)
	// Add records a result and returns the updated table.
	Add(ctx context.Context, rec domain.ScoreRecord) ([]domain.ScoreRecord, error)
	Close() error
}

// Open returns the store for the configured backend.
func Open(backend, path string, l *zap.Logger) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(path)
	case BackendSQLite:
		return OpenSQLStore(path, l)
	default:
		return nil, errors.Errorf("unknown scores backend %q", backend)
	}
}
