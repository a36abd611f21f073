package stability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shelflife"
)

func limitBelow(threshold float64) shelflife.SpecificationLimit {
	return shelflife.SpecificationLimit{Threshold: threshold, Direction: shelflife.DirectionDecreasing}
}

func TestEstimateCrossing(t *testing.T) {
	series := shelflife.StabilitySeries{
		{TimeMonths: 0, Value: 100},
		{TimeMonths: 1, Value: 99},
		{TimeMonths: 3, Value: 97},
		{TimeMonths: 6, Value: 94},
		{TimeMonths: 12, Value: 89},
	}
	fit, err := Fit(series)
	assert.NoError(t, err)

	months, err := EstimateCrossing(fit, limitBelow(85))
	assert.NoError(t, err)
	assert.InDelta(t, 16.16, months, 0.05)

	// Feeding the crossing time back through the line reproduces the limit.
	assert.InDelta(t, 85, fit.Intercept+fit.Slope*months, 1e-9)
}

func TestEstimateCrossing_FlatTrend(t *testing.T) {
	flat := shelflife.StabilitySeries{
		{TimeMonths: 0, Value: 100},
		{TimeMonths: 6, Value: 100},
		{TimeMonths: 12, Value: 100},
	}
	fit, err := Fit(flat)
	assert.NoError(t, err)
	assert.Zero(t, fit.Slope)

	_, err = EstimateCrossing(fit, limitBelow(95))
	assert.ErrorIs(t, err, ErrFlatTrend)
}

func TestEstimateCrossing_AlreadyBelowLimit(t *testing.T) {
	// Intercept below the limit with a falling slope: the line crosses
	// before t=0 and the caller must treat the result as a status, not a
	// shelf-life.
	fit := shelflife.FitResult{Slope: -1, Intercept: 80}
	months, err := EstimateCrossing(fit, limitBelow(85))
	assert.NoError(t, err)
	assert.Less(t, months, 0.0)
}

func TestBaseDuration(t *testing.T) {
	series := shelflife.StabilitySeries{
		{TimeMonths: 0, Value: 100},
		{TimeMonths: 6, Value: 94},
		{TimeMonths: 12, Value: 89},
		{TimeMonths: 18, Value: 84},
	}

	tests := []struct {
		name  string
		limit shelflife.SpecificationLimit
		want  float64
	}{
		{
			name:  "decreasing attribute, last point out of spec",
			limit: shelflife.SpecificationLimit{Threshold: 85, Direction: shelflife.DirectionDecreasing},
			want:  12,
		},
		{
			name:  "decreasing attribute, all points pass",
			limit: shelflife.SpecificationLimit{Threshold: 80, Direction: shelflife.DirectionDecreasing},
			want:  18,
		},
		{
			name:  "decreasing attribute, nothing passes",
			limit: shelflife.SpecificationLimit{Threshold: 101, Direction: shelflife.DirectionDecreasing},
			want:  0,
		},
		{
			name:  "increasing attribute fails above the limit",
			limit: shelflife.SpecificationLimit{Threshold: 94, Direction: shelflife.DirectionIncreasing},
			want:  18,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseDuration(series, tt.limit))
		})
	}
}

func TestBaseDuration_UnorderedSeries(t *testing.T) {
	// X is the maximum passing time regardless of input ordering.
	series := shelflife.StabilitySeries{
		{TimeMonths: 12, Value: 89},
		{TimeMonths: 0, Value: 100},
		{TimeMonths: 6, Value: 94},
	}
	assert.Equal(t, 12.0, BaseDuration(series, limitBelow(85)))
}
