package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/utils/accounting"
)

// creditService implements the CreditSvcFacade interface
type creditService struct {
	BaseService
	ledger     portssvc.LedgerReaderSvc
	thresholds domain.AgingThresholds
}

// CreditServiceOption is a functional option for configuring the credit service
type CreditServiceOption func(*creditService)

// WithAgingThresholds overrides the default 30/90 day thresholds.
func WithAgingThresholds(thresholds domain.AgingThresholds) CreditServiceOption {
	return func(s *creditService) {
		s.thresholds = thresholds
	}
}

// NewCreditService creates a new credit service with the provided options
func NewCreditService(ledger portssvc.LedgerReaderSvc, options ...CreditServiceOption) portssvc.CreditSvcFacade {
	svc := &creditService{
		ledger:     ledger,
		thresholds: domain.DefaultAgingThresholds(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

func (s *creditService) Thresholds() domain.AgingThresholds {
	return s.thresholds
}

// AccountFor folds the customer's entries dated on or before asOf.
func (s *creditService) AccountFor(ctx context.Context, customer string, asOf time.Time) (*domain.CustomerCreditAccount, error) {
	asOf = domain.NormalizeDate(asOf)
	entries, err := s.ledger.Query(ctx, domain.EntryFilter{Customer: customer, DateTo: &asOf})
	if err != nil {
		return nil, err
	}

	account, ok := accounting.FoldAccount(customer, entries, asOf, s.thresholds)
	if !ok {
		return nil, fmt.Errorf("%w: no entries for customer %q on or before %s", apperrors.ErrNotFound, customer, domain.FormatDate(asOf))
	}

	s.LogDebug(ctx, "Customer account computed",
		slog.String("customer", customer),
		slog.String("outstanding", account.TotalOutstanding.String()),
		slog.String("status", string(account.Status)))
	return &account, nil
}

// ListOutstanding returns the accounts with a positive balance as of asOf, by customer name.
func (s *creditService) ListOutstanding(ctx context.Context, asOf time.Time) ([]domain.CustomerCreditAccount, error) {
	asOf = domain.NormalizeDate(asOf)
	entries, err := s.ledger.Query(ctx, domain.EntryFilter{DateTo: &asOf})
	if err != nil {
		return nil, err
	}

	accounts := accounting.OutstandingOnly(accounting.FoldAccounts(entries, asOf, s.thresholds))
	s.LogInfo(ctx, "Outstanding accounts listed",
		slog.String("as_of", domain.FormatDate(asOf)),
		slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *creditService) Timeline(ctx context.Context, customer string) (*domain.CreditTimeline, error) {
	entries, err := s.ledger.Query(ctx, domain.EntryFilter{Customer: customer})
	if err != nil {
		return nil, err
	}

	// An unknown customer folds to an empty timeline.
	timeline := accounting.FoldTimeline(customer, entries)
	return &timeline, nil
}
