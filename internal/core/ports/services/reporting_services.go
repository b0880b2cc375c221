package services

import (
	"context"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating ledger reports
type ReportingSvcFacade interface {
	// Summarize totals every entry in the range, regardless of type.
	Summarize(ctx context.Context, rng domain.DateRange) (*domain.RangeSummary, error)

	// Daily summarizes a single date. A date without entries yields zeros.
	Daily(ctx context.Context, date time.Time) (*domain.DailySummary, error)

	// DailySeries returns one summary per calendar day in the range. Open bounds
	// default to the ledger's first and last dates.
	DailySeries(ctx context.Context, rng domain.DateRange) ([]domain.DailySummary, error)

	// Latest summarizes the most recent date in the ledger.
	Latest(ctx context.Context) (*domain.DailySummary, error)

	// DailyCharts returns the payment-method and transaction-type distributions of a date.
	DailyCharts(ctx context.Context, date time.Time) (*domain.DailyCharts, error)

	// RangeCharts returns per-day series for the range.
	RangeCharts(ctx context.Context, rng domain.DateRange) (*domain.RangeCharts, error)
}
