package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TransactionEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.TransactionEntry), next, args.Error(2)
}

func (m *MockLedgerRepository) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Get(1).(time.Time), args.Bool(2), args.Error(3)
}

func (m *MockLedgerRepository) AppendEntries(ctx context.Context, entries []domain.TransactionEntry) ([]domain.TransactionEntry, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionEntry), args.Error(1)
}

func (m *MockLedgerRepository) ReplaceDay(ctx context.Context, date time.Time, entries []domain.TransactionEntry) ([]domain.TransactionEntry, int, error) {
	args := m.Called(ctx, date, entries)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TransactionEntry), args.Int(1), args.Error(2)
}

// --- Mock WorkbookParser ---
type MockWorkbookParser struct {
	mock.Mock
}

func (m *MockWorkbookParser) Parse(fileName string, content []byte) (*domain.ParsedWorkbook, error) {
	args := m.Called(fileName, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedWorkbook), args.Error(1)
}

// --- Fake report cache ---

// fakeReportCache is a map-backed ReportCache that counts calls.
type fakeReportCache struct {
	mu         sync.Mutex
	generation int64
	values     map[string][]byte
	gets, sets int
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{values: map[string][]byte{}}
}

func (c *fakeReportCache) Generation(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, nil
}

func (c *fakeReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeReportCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.values[key] = raw
	return nil
}

func (c *fakeReportCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.values = map[string][]byte{}
	return nil
}

// --- Helpers ---

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func amt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
