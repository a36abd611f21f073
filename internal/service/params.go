package service

import (
	"time"

	"shelflife"
)

// EvaluationInput is one evaluation request: a stability series with its
// specification limit and the study-condition flags. Supplied by the form
// or CSV-ingestion collaborator upstream of the service.
type EvaluationInput struct {
	// Attribute is the quality attribute name, e.g. "Assay".
	Attribute string
	// Series may arrive unordered; the service sorts a copy.
	Series shelflife.StabilitySeries
	Limit  shelflife.SpecificationLimit
	// Flags.StatisticallySupported may be left unset and derived from R².
	Flags shelflife.ConditionFlags
}

// ReportFilter supports report history filtering by time range and
// decision category.
type ReportFilter struct {
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	Category string    // "" or one of the shelflife.DecisionCategory values
}
