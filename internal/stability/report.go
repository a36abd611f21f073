package stability

import (
	"errors"
	"math"

	"shelflife"
)

// BuildReport merges the fitter, crossing estimator and decision engine
// outputs into the record handed to export collaborators. It performs no
// computation beyond field composition and display rounding (two decimals
// for month values and R²).
//
// A flat trend and an already-out-of-spec fit are carried as explicit
// statuses; no crossing number is reported for either.
func BuildReport(attribute string, fit shelflife.FitResult, crossingMonths float64, crossingErr error, decision shelflife.DecisionResult) shelflife.ShelfLifeReport {
	r := shelflife.ShelfLifeReport{
		Attribute:         attribute,
		Slope:             fit.Slope,
		Intercept:         fit.Intercept,
		RSquared:          round2(fit.RSquared),
		BaseDuration:      round2(decision.BaseDuration),
		ProposedShelfLife: round2(decision.ProposedShelfLife),
		Category:          decision.Category,
		Rationale:         decision.Rationale,
	}

	switch {
	case errors.Is(crossingErr, ErrFlatTrend):
		r.CrossingStatus = shelflife.CrossingFlatTrend
	case crossingMonths <= 0 || crossingMonths < decision.BaseDuration:
		r.CrossingStatus = shelflife.CrossingAlreadyOutOfSpec
	default:
		t := round2(crossingMonths)
		r.CrossingStatus = shelflife.CrossingOK
		r.CrossingMonths = &t
	}

	return r
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
