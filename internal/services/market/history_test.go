package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vadiminshakov/dopewars/internal/domain"
)

func TestHistory_Trend(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, TrendUnknown, h.Trend("Soma", 100))

	for _, p := range []int{100, 100, 100} {
		h.Record([]domain.Commodity{{Name: "Soma", Price: p}})
	}
	assert.Equal(t, []int{100, 100, 100}, h.Prices("Soma"))

	assert.Equal(t, TrendFlat, h.Trend("Soma", 105))
	assert.Equal(t, TrendCheap, h.Trend("Soma", 80))
	assert.Equal(t, TrendDear, h.Trend("Soma", 130))
	assert.Equal(t, TrendUnknown, h.Trend("Weed", 130))
}
