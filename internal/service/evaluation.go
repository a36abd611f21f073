package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"shelflife"
	"shelflife/internal/repository"
	"shelflife/internal/stability"
)

// ErrInvalidInput marks evaluation failures caused by the submitted study
// rather than by the service. Handlers map it to a 400 response.
var ErrInvalidInput = errors.New("invalid evaluation input")

var (
	errInvalidDirection = errors.New("invalid failure direction: must be DECREASING or INCREASING")
	errNegativeTime     = errors.New("time points must be non-negative")
	errNonFiniteValue   = errors.New("measurement values must be finite")
)

// EvaluationService runs the numeric/decision pipeline for one submitted
// stability study and persists the resulting report. Every submission
// produces a brand-new report; nothing is cached between requests.
type EvaluationService struct {
	reportRepo repository.ReportRepo
	table      stability.PolicyTable
}

func NewEvaluationService(reportRepo repository.ReportRepo, table stability.PolicyTable) *EvaluationService {
	return &EvaluationService{reportRepo: reportRepo, table: table}
}

// Evaluate validates the input, fits the long-term trend, locates the
// specification crossing, derives the base duration and applies the
// extrapolation decision. The completed report is stored and returned.
//
// A flat trend is not an evaluation failure: the decision engine still
// runs, and the report carries the FLAT_TREND crossing status.
func (s *EvaluationService) Evaluate(ctx context.Context, in EvaluationInput) (shelflife.ShelfLifeReport, error) {
	if err := validateInput(in); err != nil {
		return shelflife.ShelfLifeReport{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	series := sortedCopy(in.Series)

	fit, err := stability.Fit(series)
	if err != nil {
		return shelflife.ShelfLifeReport{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	crossing, crossingErr := stability.EstimateCrossing(fit, in.Limit)

	x := stability.BaseDuration(series, in.Limit)

	// StatisticallySupported may be asserted by the caller or derived
	// from the fit quality; never the other way around.
	flags := in.Flags
	if fit.RSquared >= stability.StatisticalSupportThreshold {
		flags.StatisticallySupported = true
	}

	decision := stability.Decide(x, flags, s.table)

	report := stability.BuildReport(in.Attribute, fit, crossing, crossingErr, decision)
	report.ID = uuid.NewString()
	report.EvaluatedAt = time.Now().UTC()

	if err := s.reportRepo.Save(ctx, report); err != nil {
		return shelflife.ShelfLifeReport{}, fmt.Errorf("save report: %w", err)
	}

	return report, nil
}

func validateInput(in EvaluationInput) error {
	switch in.Limit.Direction {
	case shelflife.DirectionDecreasing, shelflife.DirectionIncreasing:
	default:
		return errInvalidDirection
	}

	if stability.DistinctTimes(in.Series) < stability.MinDistinctTimes {
		return stability.ErrInsufficientData
	}

	for _, p := range in.Series {
		if p.TimeMonths < 0 {
			return errNegativeTime
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return errNonFiniteValue
		}
	}
	return nil
}

// sortedCopy returns the series ordered by time without mutating the input.
func sortedCopy(series shelflife.StabilitySeries) shelflife.StabilitySeries {
	out := make(shelflife.StabilitySeries, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeMonths < out[j].TimeMonths
	})
	return out
}
