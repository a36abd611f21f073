package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shelflife"
	"shelflife/internal/repository"
)

type ReportService struct {
	reportRepo repository.ReportRepo
}

func NewReportService(reportRepo repository.ReportRepo) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	errEmptyReportID    = errors.New("report id must not be empty")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeCategory trims spaces and uppercases the category filter.
func normalizeCategory(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ReportFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	return from, to, normalizeCategory(f.Category), nil
}

func (s *ReportService) Get(ctx context.Context, id string) (shelflife.ShelfLifeReport, error) {
	if strings.TrimSpace(id) == "" {
		return shelflife.ShelfLifeReport{}, errEmptyReportID
	}
	return s.reportRepo.Get(ctx, id)
}

func (s *ReportService) Latest(ctx context.Context) (shelflife.ShelfLifeReport, error) {
	return s.reportRepo.Latest(ctx)
}

func (s *ReportService) List(ctx context.Context, f ReportFilter) ([]shelflife.ShelfLifeReport, error) {
	from, to, category, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.List(ctx, from, to, category)
}
