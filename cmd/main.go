// Command dopewars runs the terminal commodity trading game.
//
// Usage:
//
//	dopewars --config game.yaml
//	dopewars -days 30 -cash 500 -scores-backend sqlite -scores ./data/scores.db
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vadiminshakov/dopewars/config"
	"github.com/vadiminshakov/dopewars/internal/metrics"
	"github.com/vadiminshakov/dopewars/internal/storage/journal"
	"github.com/vadiminshakov/dopewars/internal/storage/scores"
	"github.com/vadiminshakov/dopewars/internal/tui"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(conf.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, err := scores.Open(conf.ScoresBackend, conf.ScoresPath, logger)
	if err != nil {
		logger.Fatal("failed to open scores", zap.Error(err))
	}
	defer store.Close()

	var events tui.Journal
	if conf.JournalDir != "" {
		wal, err := journal.NewWALStore(conf.JournalDir)
		if err != nil {
			logger.Fatal("failed to open journal", zap.Error(err))
		}
		defer wal.Close()
		events = wal
	}

	m := metrics.New()
	defer func() {
		if err := m.WriteFile(conf.MetricsPath); err != nil {
			logger.Error("failed to write metrics", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", zap.Int("days", conf.Days), zap.String("scores_backend", conf.ScoresBackend))
	if err := tui.New(conf, store, events, m, logger).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("game loop failed", zap.Error(err))
		log.Print(err)
	}
}

// newLogger writes JSON logs to path so the terminal is left to the game.
func newLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	return cfg.Build()
}
