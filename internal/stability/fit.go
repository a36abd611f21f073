package stability

import (
	"errors"

	"shelflife"
)

// Typed failures of the numeric pipeline. All are recoverable at the
// boundary: callers surface them as distinct messages, never as a default
// shelf-life number.
var (
	ErrInsufficientData = errors.New("at least 3 distinct time points are required for a trend fit")
	ErrDegenerateInput  = errors.New("all time points are identical; trend is undefined")
	ErrFlatTrend        = errors.New("zero slope; no finite crossing time")
)

// MinDistinctTimes is the minimum number of distinct study time points for
// a fit to be considered meaningful.
const MinDistinctTimes = 3

// StatisticalSupportThreshold is the R² value at or above which the
// long-term trend counts as statistically supported.
const StatisticalSupportThreshold = 0.95

// DistinctTimes counts distinct time values in the series.
func DistinctTimes(series shelflife.StabilitySeries) int {
	seen := make(map[float64]struct{}, len(series))
	for _, p := range series {
		seen[p.TimeMonths] = struct{}{}
	}
	return len(seen)
}

// Fit computes the ordinary least-squares line of value over time.
// It is a pure function of the series; R² = 1 - SS_res/SS_tot.
// A series whose time values are all identical yields ErrDegenerateInput.
func Fit(series shelflife.StabilitySeries) (shelflife.FitResult, error) {
	if len(series) < 2 {
		return shelflife.FitResult{}, ErrInsufficientData
	}

	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range series {
		sumX += p.TimeMonths
		sumY += p.Value
		sumXY += p.TimeMonths * p.Value
		sumXX += p.TimeMonths * p.TimeMonths
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return shelflife.FitResult{}, ErrDegenerateInput
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for _, p := range series {
		pred := intercept + slope*p.TimeMonths
		ssRes += (p.Value - pred) * (p.Value - pred)
		ssTot += (p.Value - meanY) * (p.Value - meanY)
	}

	// A constant series is fit perfectly by its own mean.
	rSquared := 1.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	return shelflife.FitResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rSquared,
	}, nil
}
