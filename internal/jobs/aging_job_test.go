package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/SscSPs/credit_tracking_app/internal/platform/metrics"
	"github.com/alicebob/miniredis/v2"
	"github.com/bsm/redislock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCreditService struct {
	mock.Mock
}

func (m *mockCreditService) AccountFor(ctx context.Context, customer string, asOf time.Time) (*domain.CustomerCreditAccount, error) {
	args := m.Called(ctx, customer, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerCreditAccount), args.Error(1)
}

func (m *mockCreditService) ListOutstanding(ctx context.Context, asOf time.Time) ([]domain.CustomerCreditAccount, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerCreditAccount), args.Error(1)
}

func (m *mockCreditService) Timeline(ctx context.Context, customer string) (*domain.CreditTimeline, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTimeline), args.Error(1)
}

func (m *mockCreditService) Thresholds() domain.AgingThresholds {
	return domain.DefaultAgingThresholds()
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func fixedDay() time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
}

func account(name string, amount int64, status domain.CreditStatus) domain.CustomerCreditAccount {
	return domain.CustomerCreditAccount{CustomerName: name, TotalOutstanding: decimal.NewFromInt(amount), Status: status}
}

func TestAgingJob_PublishesSnapshot(t *testing.T) {
	credit := new(mockCreditService)
	credit.On("ListOutstanding", mock.Anything, fixedDay()).Return([]domain.CustomerCreditAccount{
		account("Acme", 100, domain.StatusGood),
		account("Beta", 250, domain.StatusOverdue),
		account("Gamma", 50, domain.StatusOverdue),
	}, nil).Once()
	m := metrics.New()

	snapshot, err := NewAgingJob(credit, m, testLogger, WithClock(fixedDay)).Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, 1, snapshot.AccountsByStatus[domain.StatusGood])
	assert.Equal(t, 0, snapshot.AccountsByStatus[domain.StatusWarning])
	assert.Equal(t, 2, snapshot.AccountsByStatus[domain.StatusOverdue])
	assert.True(t, decimal.NewFromInt(400).Equal(snapshot.TotalOutstanding))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.OutstandingAccounts.WithLabelValues("Good")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.OutstandingAccounts.WithLabelValues("Warning")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.OutstandingAccounts.WithLabelValues("Overdue")))
	assert.Equal(t, float64(400), testutil.ToFloat64(m.OutstandingTotal))
	credit.AssertExpectations(t)
}

func TestAgingJob_ServiceError(t *testing.T) {
	credit := new(mockCreditService)
	credit.On("ListOutstanding", mock.Anything, mock.Anything).Return(nil, errors.New("ledger unavailable")).Once()

	snapshot, err := NewAgingJob(credit, nil, testLogger).Run(context.Background())

	assert.Nil(t, snapshot)
	assert.ErrorContains(t, err, "ledger unavailable")
}

func TestAgingJob_RedisLock(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	credit := new(mockCreditService)
	credit.On("ListOutstanding", mock.Anything, fixedDay()).Return([]domain.CustomerCreditAccount{}, nil).Once()
	job := NewAgingJob(credit, nil, testLogger, WithClock(fixedDay), WithRedisLock(rdb, "test:aging"))

	snapshot, err := job.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.False(t, mr.Exists("test:aging"), "lock released after the run")

	// Another replica holds the lock: the run is skipped.
	held, err := redislock.New(rdb).Obtain(context.Background(), "test:aging", time.Minute, nil)
	require.NoError(t, err)
	defer held.Release(context.Background())

	snapshot, err = job.Run(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, snapshot)
	credit.AssertExpectations(t)
}

func TestNewScheduler(t *testing.T) {
	job := NewAgingJob(new(mockCreditService), nil, testLogger)

	s, err := NewScheduler("@every 15m", job, testLogger)
	require.NoError(t, err)
	s.Start()
	s.Stop()

	_, err = NewScheduler("every quarter hour", job, testLogger)
	assert.Error(t, err)
}
