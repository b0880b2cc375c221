package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
)

// MaxPageSize bounds the page size of QueryPage.
const MaxPageSize = 1000

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	reportCache portsrepo.ReportCache

	// writeMu serializes appends so ids are assigned in batch order.
	writeMu sync.Mutex
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerReportCache sets the cache invalidated after every write.
func WithLedgerReportCache(cache portsrepo.ReportCache) LedgerServiceOption {
	return func(s *ledgerService) {
		s.reportCache = cache
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Append validates every entry, then stores the batch in one transaction.
func (s *ledgerService) Append(ctx context.Context, entries []domain.TransactionEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	normalized, err := s.prepare(entries)
	if err != nil {
		s.LogDebug(ctx, "Rejected ledger append", slog.String("reason", err.Error()))
		return 0, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored, err := s.ledgerRepo.AppendEntries(ctx, normalized)
	if err != nil {
		s.LogError(ctx, err, "Failed to append ledger entries", slog.Int("count", len(normalized)))
		return 0, fmt.Errorf("failed to append ledger entries: %w", err)
	}
	s.invalidateReports(ctx)

	s.LogInfo(ctx, "Ledger entries appended", slog.Int("count", len(stored)))
	return len(stored), nil
}

// ReplaceDay removes every entry of date and stores entries in its place, atomically.
// Every entry must carry that date.
func (s *ledgerService) ReplaceDay(ctx context.Context, date time.Time, entries []domain.TransactionEntry) (int, error) {
	if date.IsZero() {
		return 0, apperrors.ErrInvalidDate
	}
	date = domain.NormalizeDate(date)

	normalized, err := s.prepare(entries)
	if err != nil {
		return 0, err
	}
	for i, e := range normalized {
		if !e.Date.Equal(date) {
			return 0, fmt.Errorf("%w: entry %d is dated %s, expected %s", apperrors.ErrValidation, i, domain.FormatDate(e.Date), domain.FormatDate(date))
		}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored, removed, err := s.ledgerRepo.ReplaceDay(ctx, date, normalized)
	if err != nil {
		s.LogError(ctx, err, "Failed to replace ledger day", slog.String("date", domain.FormatDate(date)))
		return 0, fmt.Errorf("failed to replace ledger day: %w", err)
	}
	s.invalidateReports(ctx)

	s.LogInfo(ctx, "Ledger day replaced",
		slog.String("date", domain.FormatDate(date)),
		slog.Int("removed", removed),
		slog.Int("stored", len(stored)))
	return len(stored), nil
}

// Query returns every matching entry, date then id ascending.
func (s *ledgerService) Query(ctx context.Context, filter domain.EntryFilter) ([]domain.TransactionEntry, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.FindEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to query ledger", slog.String("customer", filter.Customer))
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	return entries, nil
}

// QueryPage returns one page of matching entries.
func (s *ledgerService) QueryPage(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error) {
	if err := validateFilter(filter); err != nil {
		return nil, nil, err
	}
	if limit <= 0 || limit > MaxPageSize {
		return nil, nil, fmt.Errorf("%w: limit must be between 1 and %d", apperrors.ErrValidation, MaxPageSize)
	}
	entries, next, err := s.ledgerRepo.ListEntries(ctx, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger page", slog.Int("limit", limit))
		return nil, nil, fmt.Errorf("failed to list ledger page: %w", err)
	}
	return entries, next, nil
}

// DateBounds returns the first and last ledger dates.
func (s *ledgerService) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	first, last, ok, err := s.ledgerRepo.DateBounds(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read ledger date bounds")
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to read ledger date bounds: %w", err)
	}
	return first, last, ok, nil
}

// prepare validates entries and returns copies with normalized dates.
func (s *ledgerService) prepare(entries []domain.TransactionEntry) ([]domain.TransactionEntry, error) {
	normalized := make([]domain.TransactionEntry, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.CustomerName, err)
		}
		e.ID = 0
		e.Date = domain.NormalizeDate(e.Date)
		normalized[i] = e
	}
	return normalized, nil
}

// invalidateReports drops cached reports. Failures are only logged since the write is already committed.
func (s *ledgerService) invalidateReports(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.Invalidate(ctx); err != nil {
		s.LogError(ctx, err, "Failed to invalidate report cache")
	}
}

func validateFilter(filter domain.EntryFilter) error {
	if filter.Type != "" && !filter.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, filter.Type)
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
	}
	return nil
}
