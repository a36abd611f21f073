package shelflife

import "time"

// FailureDirection states how an attribute fails against its limit.
type FailureDirection string

const (
	DirectionDecreasing FailureDirection = "DECREASING" // fails by falling below the limit
	DirectionIncreasing FailureDirection = "INCREASING" // fails by rising above the limit
)

// StabilityPoint is a single stability measurement: attribute value at a
// study time point (months from batch release).
type StabilityPoint struct {
	TimeMonths float64 `json:"time_months"`
	Value      float64 `json:"value"`
}

// StabilitySeries is a time-ordered sequence of stability measurements.
// Typical study checkpoints are 0,1,3,6,9,12,18,24,36,48 months, but any
// non-negative times are accepted.
type StabilitySeries []StabilityPoint

// SpecificationLimit is the registered acceptance threshold for an attribute.
type SpecificationLimit struct {
	Threshold float64          `json:"threshold"`
	Direction FailureDirection `json:"direction"` // DECREASING | INCREASING
}

// FitResult holds the least-squares trend of value over time.
// Computed once per series and never mutated.
type FitResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

// ConditionFlags describes the study design and outcome inputs to the
// extrapolation decision. The flags are supplied by the caller; only
// StatisticallySupported may be derived (from R² >= 0.95) when not asserted.
type ConditionFlags struct {
	SignificantChangeAccelerated  bool `json:"significant_change_accelerated"`
	SignificantChangeIntermediate bool `json:"significant_change_intermediate"`
	StoredRefrigerated            bool `json:"stored_refrigerated"`
	StoredFrozen                  bool `json:"stored_frozen"`
	StatisticallySupported        bool `json:"statistically_supported"`
	SupportingDataAvailable       bool `json:"supporting_data_available"`
	LowVariabilityTrend           bool `json:"low_variability_trend"`
}

// DecisionCategory is the closed set of extrapolation policies.
type DecisionCategory string

const (
	CategoryNoExtrapolationFrozen         DecisionCategory = "NO_EXTRAPOLATION_FROZEN"
	CategoryNoExtrapolationBothConditions DecisionCategory = "NO_EXTRAPOLATION_BOTH_CONDITIONS"
	CategoryNoExtrapolationIntermediate   DecisionCategory = "NO_EXTRAPOLATION_INTERMEDIATE"
	CategoryAcceleratedFullSupport        DecisionCategory = "ACCELERATED_FULL_SUPPORT"
	CategoryAcceleratedPartialSupport     DecisionCategory = "ACCELERATED_PARTIAL_SUPPORT"
	CategoryNoExtrapolationAccelerated    DecisionCategory = "NO_EXTRAPOLATION_ACCELERATED"
	CategoryLowVariability                DecisionCategory = "LOW_VARIABILITY_EXTRAPOLATION"
	CategoryFullSupport                   DecisionCategory = "FULL_SUPPORT_EXTRAPOLATION"
	CategoryPartialSupport                DecisionCategory = "PARTIAL_SUPPORT_EXTRAPOLATION"
	CategoryNoExtrapolationInsufficient   DecisionCategory = "NO_EXTRAPOLATION_INSUFFICIENT"
)

// DecisionResult is the outcome of the extrapolation decision engine.
// ProposedShelfLife >= BaseDuration always holds.
type DecisionResult struct {
	BaseDuration      float64          `json:"base_duration_months"`
	ProposedShelfLife float64          `json:"proposed_shelf_life_months"`
	Category          DecisionCategory `json:"category"`
	Rationale         string           `json:"rationale"`
}

// CrossingStatus reports the crossing-estimator outcome carried by a report.
type CrossingStatus string

const (
	CrossingOK               CrossingStatus = "OK"
	CrossingFlatTrend        CrossingStatus = "FLAT_TREND"          // zero slope, no finite crossing time
	CrossingAlreadyOutOfSpec CrossingStatus = "ALREADY_OUT_OF_SPEC" // fitted line fails within the observed range
)

// ShelfLifeReport is the immutable record handed to display and export
// collaborators. Month values and R² are rounded to two decimals.
type ShelfLifeReport struct {
	ID          string    `json:"id"`
	Attribute   string    `json:"attribute"`
	EvaluatedAt time.Time `json:"evaluated_at"`

	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`

	CrossingStatus CrossingStatus `json:"crossing_status"`
	CrossingMonths *float64       `json:"estimated_crossing_months,omitempty"`

	BaseDuration      float64          `json:"base_duration_months"`
	ProposedShelfLife float64          `json:"proposed_shelf_life_months"`
	Category          DecisionCategory `json:"decision_category"`
	Rationale         string           `json:"rationale"`
}

// User is an authenticated operator of the service.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never exposed
}
