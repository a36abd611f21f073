package stability

import "shelflife"

// EstimateCrossing returns the time (months) at which the fitted line
// crosses the specification threshold. A flat fit has no finite crossing
// time and yields ErrFlatTrend; the caller must not present a numeric
// answer in that case.
func EstimateCrossing(fit shelflife.FitResult, limit shelflife.SpecificationLimit) (float64, error) {
	if fit.Slope == 0 {
		return 0, ErrFlatTrend
	}
	return (limit.Threshold - fit.Intercept) / fit.Slope, nil
}

// BaseDuration returns X: the longest observed time point whose measured
// value still passes the limit under the declared failure direction.
// Returns 0 when no point passes. X anchors the decision engine and is
// deliberately observation-derived, not model-derived.
func BaseDuration(series shelflife.StabilitySeries, limit shelflife.SpecificationLimit) float64 {
	var x float64
	for _, p := range series {
		if passes(p.Value, limit) && p.TimeMonths > x {
			x = p.TimeMonths
		}
	}
	return x
}

// passes reports whether a measured value satisfies the limit.
func passes(value float64, limit shelflife.SpecificationLimit) bool {
	if limit.Direction == shelflife.DirectionIncreasing {
		return value <= limit.Threshold
	}
	return value >= limit.Threshold
}
