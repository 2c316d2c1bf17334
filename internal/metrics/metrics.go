// Package metrics provides Prometheus instrumentation for game sessions.
package metrics

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vadiminshakov/dopewars/internal/domain"
)

const namespace = "dopewars"

// Metrics holds the game collectors on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	// Trades counts completed trades by side.
	Trades *prometheus.CounterVec
	// Volume counts traded units by side and commodity.
	Volume *prometheus.CounterVec
	// Encounters counts encounters by kind and result.
	Encounters *prometheus.CounterVec
	// BankOps counts deposits and withdrawals by result.
	BankOps *prometheus.CounterVec
	// Interest is the total interest credited by all banks.
	Interest prometheus.Counter
	// Games counts finished games by reason.
	Games *prometheus.CounterVec
	// FinalScores is the distribution of final scores.
	FinalScores prometheus.Histogram
	// Day is the current day of the running game.
	Day prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		Trades: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_total",
			Help:      "Total number of trades executed",
		}, []string{"side"}),
		Volume: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trade_units_total",
			Help:      "Units traded",
		}, []string{"side", "commodity"}),
		Encounters: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encounters_total",
			Help:      "Encounters by kind and result",
		}, []string{"kind", "result"}),
		BankOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bank_operations_total",
			Help:      "Deposits and withdrawals by result",
		}, []string{"op", "result"}),
		Interest: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interest_paid_total",
			Help:      "Interest credited by all banks",
		}),
		Games: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Finished games by reason",
		}, []string{"reason"}),
		FinalScores: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Final score distribution",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 7),
		}),
		Day: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "day",
			Help:      "Current day of the running game",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// TradeDone records a completed buy or sell.
func (m *Metrics) TradeDone(side, commodity string, qty int) {
	m.Trades.WithLabelValues(side).Inc()
	m.Volume.WithLabelValues(side, commodity).Add(float64(qty))
}

// EncounterResolved records an encounter that fired.
func (m *Metrics) EncounterResolved(out domain.EncounterOutcome) {
	if !out.Happened() {
		return
	}
	m.Encounters.WithLabelValues(out.Kind.String(), encounterResult(out)).Inc()
}

func encounterResult(out domain.EncounterOutcome) string {
	switch {
	case out.Defended:
		return "defended"
	case out.EndsGame:
		return "busted"
	case out.Amount > 0:
		return "lost"
	default:
		return "harmless"
	}
}

// BankOperation records a deposit or withdrawal attempt.
func (m *Metrics) BankOperation(op string, accepted bool) {
	result := "accepted"
	if !accepted {
		result = "refused"
	}
	m.BankOps.WithLabelValues(op, result).Inc()
}

// InterestPaid adds credited interest.
func (m *Metrics) InterestPaid(amount int) {
	if amount > 0 {
		m.Interest.Add(float64(amount))
	}
}

// DayStarted sets the current day.
func (m *Metrics) DayStarted(day int) {
	m.Day.Set(float64(day))
}

// GameFinished records the end of a game.
func (m *Metrics) GameFinished(reason string, score int) {
	m.Games.WithLabelValues(reason).Inc()
	m.FinalScores.Observe(float64(score))
}

// WriteFile dumps all metrics in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create metrics dir")
	}
	return errors.Wrap(prometheus.WriteToTextfile(path, m.reg), "write metrics")
}
