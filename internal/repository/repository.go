package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shelflife"
)

// ErrReportNotFound is returned when no report matches the requested ID,
// or when Latest is asked before any evaluation was stored.
var ErrReportNotFound = errors.New("report not found")

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*shelflife.User, error)
}

// ReportRepo persists completed evaluation reports. Reports are immutable:
// there is Save and read access, never update.
type ReportRepo interface {
	Save(ctx context.Context, r shelflife.ShelfLifeReport) error
	Get(ctx context.Context, id string) (shelflife.ShelfLifeReport, error)
	Latest(ctx context.Context) (shelflife.ShelfLifeReport, error)
	List(ctx context.Context, from, to time.Time, category string) ([]shelflife.ShelfLifeReport, error)
}

type Repository struct {
	Reports ReportRepo
	Auth    Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Reports: NewReportSQLite(db),
		Auth:    NewUserRepository(db),
	}
}
