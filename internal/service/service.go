package service

import (
	"context"

	"shelflife"
	"shelflife/internal/repository"
	"shelflife/internal/stability"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Evaluator runs one shelf-life evaluation: validate the submitted study,
// fit the trend, decide the extrapolation, persist and return the report.
type Evaluator interface {
	Evaluate(ctx context.Context, in EvaluationInput) (shelflife.ShelfLifeReport, error)
}

// Reports exposes read access to stored evaluation reports.
type Reports interface {
	Get(ctx context.Context, id string) (shelflife.ShelfLifeReport, error)
	Latest(ctx context.Context) (shelflife.ShelfLifeReport, error)
	List(ctx context.Context, f ReportFilter) ([]shelflife.ShelfLifeReport, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Evaluator
	Reports
	Authorization
}

// NewService wires the repository layer into concrete services. The policy
// table is injected here so regulatory caps stay configuration, not code.
func NewService(repos *repository.Repository, table stability.PolicyTable, signingKey string) *Service {
	return &Service{
		Evaluator:     NewEvaluationService(repos.Reports, table),
		Reports:       NewReportService(repos.Reports),
		Authorization: NewAuthService(repos.Auth, signingKey),
	}
}
