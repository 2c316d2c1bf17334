// Package indicators provides moving-average helpers over integer price series.
package indicators

import (
	"fmt"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
)

// CalculateEMA calculates the Exponential Moving Average for the given period.
// The result skips the warmup window, so it holds len(prices)-period+1 values.
func CalculateEMA(prices []int, period int) ([]float64, error) {
	if period < 1 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period {
		return nil, fmt.Errorf("not enough data points: need %d, got %d", period, len(prices))
	}

	ema := trend.NewEmaWithPeriod[float64](period)
	inputChan := helper.SliceToChan(intsToFloat64(prices))
	outputChan := ema.Compute(inputChan)

	return helper.ChanToSlice(outputChan), nil
}

// LastEMA returns the most recent EMA value.
func LastEMA(prices []int, period int) (float64, error) {
	values, err := CalculateEMA(prices, period)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("no EMA values for %d data points", len(prices))
	}
	return values[len(values)-1], nil
}

// intsToFloat64 converts a slice of prices to []float64.
func intsToFloat64(values []int) []float64 {
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = float64(v)
	}
	return result
}
