package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"shelflife"
)

type ReportSQLite struct {
	db *sql.DB
}

func NewReportSQLite(db *sql.DB) *ReportSQLite { return &ReportSQLite{db: db} }

var _ ReportRepo = (*ReportSQLite)(nil)

const (
	insertReportSQL = `
		INSERT INTO shelf_life_reports
			(id, attribute, evaluated_at, slope, intercept, r_squared,
			 crossing_status, crossing_months, base_months, proposed_months,
			 category, rationale)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	reportColumns = `id, attribute, evaluated_at, slope, intercept, r_squared,
		crossing_status, crossing_months, base_months, proposed_months,
		category, rationale`

	// SQLite TIMESTAMP format
	reportTimeLayout = "2006-01-02 15:04:05"
)

// Save inserts a completed report. If ID or EvaluatedAt are empty they are
// set here, so a report always leaves the repository addressable.
func (r *ReportSQLite) Save(ctx context.Context, rep shelflife.ShelfLifeReport) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.EvaluatedAt.IsZero() {
		rep.EvaluatedAt = time.Now().UTC()
	} else {
		rep.EvaluatedAt = rep.EvaluatedAt.UTC()
	}

	var crossing sql.NullFloat64
	if rep.CrossingMonths != nil {
		crossing = sql.NullFloat64{Float64: *rep.CrossingMonths, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertReportSQL,
		rep.ID,
		rep.Attribute,
		rep.EvaluatedAt.Format(reportTimeLayout),
		rep.Slope,
		rep.Intercept,
		rep.RSquared,
		string(rep.CrossingStatus),
		crossing,
		rep.BaseDuration,
		rep.ProposedShelfLife,
		string(rep.Category),
		rep.Rationale,
	)
	return err
}

// Get fetches one report by ID. Returns ErrReportNotFound when absent.
func (r *ReportSQLite) Get(ctx context.Context, id string) (shelflife.ShelfLifeReport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM shelf_life_reports WHERE id = ?`, id)
	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return shelflife.ShelfLifeReport{}, ErrReportNotFound
	}
	return rep, err
}

// Latest fetches the most recently evaluated report; this is the value the
// display collaborators poll between submissions.
func (r *ReportSQLite) Latest(ctx context.Context) (shelflife.ShelfLifeReport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM shelf_life_reports ORDER BY evaluated_at DESC, id DESC LIMIT 1`)
	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return shelflife.ShelfLifeReport{}, ErrReportNotFound
	}
	return rep, err
}

// List returns reports filtered by [from, to] (inclusive) and/or decision
// category, newest first.
func (r *ReportSQLite) List(ctx context.Context, from, to time.Time, category string) ([]shelflife.ShelfLifeReport, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "evaluated_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "evaluated_at <= ?")
		args = append(args, to.UTC())
	}
	if category = strings.ToUpper(strings.TrimSpace(category)); category != "" {
		conds = append(conds, "category = ?")
		args = append(args, category)
	}

	q := `SELECT ` + reportColumns + ` FROM shelf_life_reports`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY evaluated_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]shelflife.ShelfLifeReport, 0, 16)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (shelflife.ShelfLifeReport, error) {
	var (
		rep      shelflife.ShelfLifeReport
		status   string
		category string
		crossing sql.NullFloat64
	)
	if err := row.Scan(
		&rep.ID,
		&rep.Attribute,
		&rep.EvaluatedAt,
		&rep.Slope,
		&rep.Intercept,
		&rep.RSquared,
		&status,
		&crossing,
		&rep.BaseDuration,
		&rep.ProposedShelfLife,
		&category,
		&rep.Rationale,
	); err != nil {
		return shelflife.ShelfLifeReport{}, err
	}
	rep.CrossingStatus = shelflife.CrossingStatus(status)
	rep.Category = shelflife.DecisionCategory(category)
	if crossing.Valid {
		v := crossing.Float64
		rep.CrossingMonths = &v
	}
	rep.EvaluatedAt = rep.EvaluatedAt.UTC()
	return rep, nil
}
