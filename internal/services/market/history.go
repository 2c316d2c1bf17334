package market

import (
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/pkg/indicators"
)

const (
	trendPeriod = 3
	// a price this far from the EMA, in percent, counts as cheap or dear
	trendBandPercent = 10
)

// Trend today's price compared to what the player has seen before.
type Trend string

const (
	TrendUnknown Trend = "unknown"
	TrendCheap   Trend = "cheap"
	TrendDear    Trend = "dear"
	TrendFlat    Trend = "flat"
)

// History remembers every price the player has been offered, per commodity.
type History struct {
	prices map[string][]int
}

// NewHistory creates an empty price history.
func NewHistory() *History {
	return &History{prices: make(map[string][]int)}
}

// Record appends today's offer prices.
func (h *History) Record(offers []domain.Commodity) {
	for _, c := range offers {
		h.prices[c.Name] = append(h.prices[c.Name], c.Price)
	}
}

// Prices returns the recorded series for name.
func (h *History) Prices(name string) []int {
	return append([]int(nil), h.prices[name]...)
}

// Trend compares price with the EMA of the prices recorded before it. The
// current price must not have been recorded yet.
func (h *History) Trend(name string, price int) Trend {
	ema, err := indicators.LastEMA(h.prices[name], trendPeriod)
	if err != nil {
		return TrendUnknown
	}

	p := float64(price) * 100
	switch {
	case p < ema*(100-trendBandPercent):
		return TrendCheap
	case p > ema*(100+trendBandPercent):
		return TrendDear
	default:
		return TrendFlat
	}
}
