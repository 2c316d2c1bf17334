// Package journal is the append-only record of everything that happens in a
// game, stored in a write-ahead log.
package journal

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/gowal"
)

const (
	DefaultDir   = "./wal/journal"
	segmentLimit = 100
	maxSegments  = 10

	eventKeyPrefix = "event_"
)

// WALStore persists game events in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed journal.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "journal_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init journal WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Append writes the event and returns its index.
func (s *WALStore) Append(event domain.GameEvent) (uint64, error) {
	if s == nil || s.wal == nil {
		return 0, errors.New("journal is not initialized")
	}
	if event.GameID == "" {
		return 0, fmt.Errorf("game event id is required")
	}
	if event.Kind == "" {
		return 0, fmt.Errorf("game event kind is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return 0, errors.Wrap(err, "marshal game event")
	}

	key := eventKeyPrefix + string(event.Kind)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	if err := s.wal.Write(nextIndex, key, payload); err != nil {
		return 0, errors.Wrap(err, "write game event")
	}

	return nextIndex, nil
}

// EventsAfter returns all events written after the provided WAL index.
func (s *WALStore) EventsAfter(index uint64) ([]domain.GameEventRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("journal is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]domain.GameEventRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, eventKeyPrefix) {
			continue
		}

		var event domain.GameEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "decode game event")
		}
		records = append(records, domain.GameEventRecord{Index: idx, Event: event})
	}

	return records, nil
}

// GameEvents returns the events of a single game in write order.
func (s *WALStore) GameEvents(gameID string) ([]domain.GameEventRecord, error) {
	all, err := s.EventsAfter(0)
	if err != nil {
		return nil, err
	}

	out := make([]domain.GameEventRecord, 0, len(all))
	for _, r := range all {
		if r.Event.GameID == gameID {
			out = append(out, r)
		}
	}
	return out, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("journal is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
