package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/platform/metrics"
	"github.com/SscSPs/credit_tracking_app/internal/utils/accounting"
)

// MaxSeriesDays is the longest range DailySeries and RangeCharts accept.
const MaxSeriesDays = 3660

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	ledger      portssvc.LedgerReaderSvc
	reportCache portsrepo.ReportCache
	metrics     *metrics.Metrics
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportCache enables caching of computed reports.
func WithReportCache(cache portsrepo.ReportCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.reportCache = cache
	}
}

// WithReportingMetrics records cache hits and misses.
func WithReportingMetrics(m *metrics.Metrics) ReportingServiceOption {
	return func(s *reportingService) {
		s.metrics = m
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(ledger portssvc.LedgerReaderSvc, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		ledger: ledger,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Summarize totals every entry in rng.
func (s *reportingService) Summarize(ctx context.Context, rng domain.DateRange) (*domain.RangeSummary, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	summary, err := cached(ctx, s, "summary:"+rangeKey(rng), func() (domain.RangeSummary, error) {
		entries, err := s.ledger.Query(ctx, domain.EntryFilter{DateFrom: rng.From, DateTo: rng.To})
		if err != nil {
			return domain.RangeSummary{}, err
		}
		return accounting.FoldRange(entries, rng), nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Daily summarizes one date; it is Summarize over [date, date].
func (s *reportingService) Daily(ctx context.Context, date time.Time) (*domain.DailySummary, error) {
	date = domain.NormalizeDate(date)
	summary, err := s.Summarize(ctx, domain.SingleDay(date))
	if err != nil {
		return nil, err
	}
	return &domain.DailySummary{Date: date, SummaryTotals: summary.SummaryTotals}, nil
}

// DailySeries returns one zero-filled summary per day. Open bounds take the ledger's bounds;
// with an empty ledger and an open bound the series is empty.
func (s *reportingService) DailySeries(ctx context.Context, rng domain.DateRange) ([]domain.DailySummary, error) {
	from, to, ok, err := s.resolveBounds(ctx, rng)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.DailySummary{}, nil
	}

	key := "series:" + domain.FormatDate(from) + ":" + domain.FormatDate(to)
	return cached(ctx, s, key, func() ([]domain.DailySummary, error) {
		entries, err := s.ledger.Query(ctx, domain.EntryFilter{DateFrom: &from, DateTo: &to})
		if err != nil {
			return nil, err
		}
		return accounting.FoldDailySeries(entries, from, to), nil
	})
}

// Latest summarizes the most recent ledger date.
func (s *reportingService) Latest(ctx context.Context) (*domain.DailySummary, error) {
	_, last, ok, err := s.ledger.DateBounds(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: the ledger has no entries", apperrors.ErrNotFound)
	}
	return s.Daily(ctx, last)
}

func (s *reportingService) DailyCharts(ctx context.Context, date time.Time) (*domain.DailyCharts, error) {
	date = domain.NormalizeDate(date)
	charts, err := cached(ctx, s, "charts:"+domain.FormatDate(date), func() (domain.DailyCharts, error) {
		entries, err := s.ledger.Query(ctx, domain.EntryFilter{DateFrom: &date, DateTo: &date})
		if err != nil {
			return domain.DailyCharts{}, err
		}
		return accounting.FoldDailyCharts(entries, date), nil
	})
	if err != nil {
		return nil, err
	}
	return &charts, nil
}

func (s *reportingService) RangeCharts(ctx context.Context, rng domain.DateRange) (*domain.RangeCharts, error) {
	series, err := s.DailySeries(ctx, rng)
	if err != nil {
		return nil, err
	}
	charts := accounting.RangeChartsFromSeries(series)
	return &charts, nil
}

// resolveBounds fills open bounds from the ledger and enforces MaxSeriesDays.
func (s *reportingService) resolveBounds(ctx context.Context, rng domain.DateRange) (time.Time, time.Time, bool, error) {
	if err := validateRange(rng); err != nil {
		return time.Time{}, time.Time{}, false, err
	}

	var from, to time.Time
	if rng.From != nil && rng.To != nil {
		from, to = *rng.From, *rng.To
	} else {
		first, last, ok, err := s.ledger.DateBounds(ctx)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		if !ok {
			return time.Time{}, time.Time{}, false, nil
		}
		from, to = first, last
		if rng.From != nil {
			from = *rng.From
		}
		if rng.To != nil {
			to = *rng.To
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, false, nil
		}
	}

	from, to = domain.NormalizeDate(from), domain.NormalizeDate(to)
	if days := domain.DaysBetween(from, to) + 1; days > MaxSeriesDays {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: range spans %d days, at most %d allowed", apperrors.ErrValidation, days, MaxSeriesDays)
	}
	return from, to, true, nil
}

func validateRange(rng domain.DateRange) error {
	if rng.From != nil && rng.To != nil && domain.NormalizeDate(*rng.To).Before(domain.NormalizeDate(*rng.From)) {
		return fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
	}
	return nil
}

func rangeKey(rng domain.DateRange) string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "*"
		}
		return domain.FormatDate(*t)
	}
	return bound(rng.From) + ":" + bound(rng.To)
}

// cached returns the value stored under key in the current cache generation, computing and
// storing it on a miss. Cache failures degrade to computing.
func cached[T any](ctx context.Context, s *reportingService, key string, compute func() (T, error)) (T, error) {
	if s.reportCache == nil {
		return compute()
	}

	gen, err := s.reportCache.Generation(ctx)
	if err != nil {
		s.LogError(ctx, err, "Report cache unavailable", slog.String("key", key))
		return compute()
	}
	key = fmt.Sprintf("g%d:%s", gen, key)

	var value T
	found, err := s.reportCache.Get(ctx, key, &value)
	if err != nil {
		s.LogError(ctx, err, "Report cache read failed", slog.String("key", key))
	}
	if found {
		s.metrics.CacheHit()
		return value, nil
	}
	s.metrics.CacheMiss()

	value, err = compute()
	if err != nil {
		return value, err
	}
	if err := s.reportCache.Set(ctx, key, value); err != nil {
		s.LogError(ctx, err, "Report cache write failed", slog.String("key", key))
	}
	return value, nil
}
