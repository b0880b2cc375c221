package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Query(ctx context.Context, filter domain.EntryFilter) ([]domain.TransactionEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionEntry), args.Error(1)
}
func (m *MockLedgerService) QueryPage(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var entries []domain.TransactionEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.TransactionEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}
func (m *MockLedgerService) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Get(1).(time.Time), args.Bool(2), args.Error(3)
}
func (m *MockLedgerService) Append(ctx context.Context, entries []domain.TransactionEntry) (int, error) {
	args := m.Called(ctx, entries)
	return args.Int(0), args.Error(1)
}
func (m *MockLedgerService) ReplaceDay(ctx context.Context, date time.Time, entries []domain.TransactionEntry) (int, error) {
	args := m.Called(ctx, date, entries)
	return args.Int(0), args.Error(1)
}

// --- Mock CreditService ---
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) AccountFor(ctx context.Context, customer string, asOf time.Time) (*domain.CustomerCreditAccount, error) {
	args := m.Called(ctx, customer, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerCreditAccount), args.Error(1)
}
func (m *MockCreditService) ListOutstanding(ctx context.Context, asOf time.Time) ([]domain.CustomerCreditAccount, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerCreditAccount), args.Error(1)
}
func (m *MockCreditService) Timeline(ctx context.Context, customer string) (*domain.CreditTimeline, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTimeline), args.Error(1)
}
func (m *MockCreditService) Thresholds() domain.AgingThresholds {
	return domain.DefaultAgingThresholds()
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Summarize(ctx context.Context, rng domain.DateRange) (*domain.RangeSummary, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RangeSummary), args.Error(1)
}
func (m *MockReportingService) Daily(ctx context.Context, date time.Time) (*domain.DailySummary, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySummary), args.Error(1)
}
func (m *MockReportingService) DailySeries(ctx context.Context, rng domain.DateRange) ([]domain.DailySummary, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailySummary), args.Error(1)
}
func (m *MockReportingService) Latest(ctx context.Context) (*domain.DailySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySummary), args.Error(1)
}
func (m *MockReportingService) DailyCharts(ctx context.Context, date time.Time) (*domain.DailyCharts, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyCharts), args.Error(1)
}
func (m *MockReportingService) RangeCharts(ctx context.Context, rng domain.DateRange) (*domain.RangeCharts, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RangeCharts), args.Error(1)
}

// --- Mock IngestionService ---
type MockIngestionService struct {
	mock.Mock
}

func (m *MockIngestionService) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestResult), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.LedgerSvcFacade    = (*MockLedgerService)(nil)
	_ portssvc.CreditSvcFacade    = (*MockCreditService)(nil)
	_ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)
	_ portssvc.IngestionSvcFacade = (*MockIngestionService)(nil)
)

// --- Health checker stub ---
type stubChecker struct {
	err error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
