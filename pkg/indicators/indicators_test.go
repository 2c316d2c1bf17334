package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEMA_NotEnoughData(t *testing.T) {
	_, err := CalculateEMA([]int{1, 2}, 3)
	require.Error(t, err)

	_, err = CalculateEMA([]int{1, 2}, 0)
	require.Error(t, err)
}

func TestLastEMA_ConstantSeries(t *testing.T) {
	v, err := LastEMA([]int{100, 100, 100, 100, 100}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, v, 0.0001)
}

func TestLastEMA_FollowsTrend(t *testing.T) {
	rising, err := LastEMA([]int{100, 110, 120, 130, 140, 150}, 3)
	require.NoError(t, err)
	assert.Greater(t, rising, 120.0)
	assert.Less(t, rising, 150.0)
}
