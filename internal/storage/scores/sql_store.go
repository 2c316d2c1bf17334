package scores

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/pkg/retrier"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DefaultDB is the SQLite database used when no path is configured.
const DefaultDB = "./data/scores.db"

// SQLStore keeps the table in a SQLite database.
type SQLStore struct {
	db    *sqlx.DB
	retry *retrier.Retrier
	l     *zap.Logger
}

type scoreRow struct {
	ID       int64  `db:"id"`
	Score    int    `db:"score"`
	Name     string `db:"name"`
	Turns    int    `db:"turns"`
	GameID   string `db:"game_id"`
	PlayedAt int64  `db:"played_at"`
}

func (r scoreRow) record() domain.ScoreRecord {
	rec := domain.ScoreRecord{
		Score:  r.Score,
		Name:   r.Name,
		Turns:  r.Turns,
		GameID: r.GameID,
	}
	if r.PlayedAt != 0 {
		rec.PlayedAt = time.Unix(0, r.PlayedAt).UTC()
	}
	return rec
}

// OpenSQLStore opens or creates the database at path.
func OpenSQLStore(path string, l *zap.Logger) (*SQLStore, error) {
	if path == "" {
		path = DefaultDB
	}
	if l == nil {
		l = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create scores dir")
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrap(err, "open scores db")
	}

	s := &SQLStore{
		db: db,
		retry: retrier.New(
			retrier.WithMaxRetries(3),
			retrier.WithInitialInterval(50*time.Millisecond),
			retrier.WithMaxInterval(time.Second),
			retrier.WithRetryIf(isBusy),
		),
		l: l,
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate scores db")
	}

	return s, nil
}

func (s *SQLStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		score INTEGER NOT NULL,
		name TEXT NOT NULL,
		turns INTEGER NOT NULL,
		game_id TEXT NOT NULL DEFAULT '',
		played_at INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Top implements Store.
func (s *SQLStore) Top(ctx context.Context) ([]domain.ScoreRecord, error) {
	var rows []scoreRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, score, name, turns, game_id, played_at FROM scores ORDER BY score DESC, id ASC LIMIT ?`,
		domain.MaxScores)
	if err != nil {
		return nil, errors.Wrap(err, "select scores")
	}

	out := make([]domain.ScoreRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

// Add implements Store. Rows that fall off the table are deleted in the same
// transaction as the insert.
func (s *SQLStore) Add(ctx context.Context, rec domain.ScoreRecord) ([]domain.ScoreRecord, error) {
	var playedAt int64
	if !rec.PlayedAt.IsZero() {
		playedAt = rec.PlayedAt.UnixNano()
	}

	err := s.retry.Do(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scores (score, name, turns, game_id, played_at) VALUES (?, ?, ?, ?, ?)`,
			rec.Score, rec.Name, rec.Turns, rec.GameID, playedAt); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM scores WHERE id NOT IN (SELECT id FROM scores ORDER BY score DESC, id ASC LIMIT ?)`,
			domain.MaxScores); err != nil {
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, errors.Wrap(err, "insert score")
	}

	s.l.Info("score saved", zap.String("name", rec.Name), zap.Int("score", rec.Score))
	return s.Top(ctx)
}

// Close implements Store.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code() & 0xff
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}
