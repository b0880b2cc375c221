package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/platform/metrics"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	defaultAgingLockKey = "credit:jobs:aging"
	defaultAgingLockTTL = time.Minute
)

// AgingSnapshot is the result of one aging run.
type AgingSnapshot struct {
	AsOf             time.Time
	AccountsByStatus map[domain.CreditStatus]int
	TotalOutstanding decimal.Decimal
}

// AgingJob classifies every outstanding account and publishes the counts as gauges.
// It only reads the ledger.
type AgingJob struct {
	credit  portssvc.CreditSvcFacade
	metrics *metrics.Metrics
	logger  *slog.Logger
	locker  *redislock.Client
	lockKey string
	lockTTL time.Duration
	today   func() time.Time
}

// AgingJobOption is a function that configures an AgingJob
type AgingJobOption func(*AgingJob)

// WithRedisLock makes the job take a Redis lock per run, so only one replica publishes a snapshot.
func WithRedisLock(client *redis.Client, key string) AgingJobOption {
	return func(j *AgingJob) {
		j.locker = redislock.New(client)
		if key != "" {
			j.lockKey = key
		}
	}
}

// WithClock sets the function returning the as-of date of each run.
func WithClock(today func() time.Time) AgingJobOption {
	return func(j *AgingJob) {
		j.today = today
	}
}

// NewAgingJob creates an aging job. A nil metrics disables the gauges.
func NewAgingJob(credit portssvc.CreditSvcFacade, m *metrics.Metrics, logger *slog.Logger, opts ...AgingJobOption) *AgingJob {
	j := &AgingJob{
		credit:  credit,
		metrics: m,
		logger:  logger,
		lockKey: defaultAgingLockKey,
		lockTTL: defaultAgingLockTTL,
		today:   domain.Today,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run takes one snapshot. It returns (nil, nil) when another replica holds the lock.
func (j *AgingJob) Run(ctx context.Context) (*AgingSnapshot, error) {
	if j.locker != nil {
		lock, err := j.locker.Obtain(ctx, j.lockKey, j.lockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			j.logger.Info("Aging run skipped, lock held elsewhere", slog.String("lock_key", j.lockKey))
			return nil, nil
		} else if err != nil {
			return nil, fmt.Errorf("failed to obtain aging lock: %w", err)
		}
		defer func() {
			if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				j.logger.Warn("Failed to release aging lock", slog.String("error", err.Error()))
			}
		}()
	}

	asOf := j.today()
	accounts, err := j.credit.ListOutstanding(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding accounts: %w", err)
	}

	snapshot := &AgingSnapshot{
		AsOf: asOf,
		AccountsByStatus: map[domain.CreditStatus]int{
			domain.StatusGood:    0,
			domain.StatusWarning: 0,
			domain.StatusOverdue: 0,
		},
		TotalOutstanding: decimal.Zero,
	}
	for _, a := range accounts {
		snapshot.AccountsByStatus[a.Status]++
		snapshot.TotalOutstanding = snapshot.TotalOutstanding.Add(a.TotalOutstanding)
	}

	j.publish(snapshot)
	j.logger.Info("Aging snapshot taken",
		slog.String("as_of", domain.FormatDate(asOf)),
		slog.Int("good", snapshot.AccountsByStatus[domain.StatusGood]),
		slog.Int("warning", snapshot.AccountsByStatus[domain.StatusWarning]),
		slog.Int("overdue", snapshot.AccountsByStatus[domain.StatusOverdue]),
		slog.String("total_outstanding", snapshot.TotalOutstanding.StringFixed(2)))
	return snapshot, nil
}

func (j *AgingJob) publish(s *AgingSnapshot) {
	if j.metrics == nil {
		return
	}
	for status, count := range s.AccountsByStatus {
		j.metrics.OutstandingAccounts.WithLabelValues(string(status)).Set(float64(count))
	}
	total, _ := s.TotalOutstanding.Float64()
	j.metrics.OutstandingTotal.Set(total)
}
