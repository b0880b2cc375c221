package services

import (
	"context"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
)

// CreditSvcFacade derives customer credit positions from the ledger
type CreditSvcFacade interface {
	// AccountFor returns the account of one customer as of a date.
	// apperrors.ErrNotFound is returned when the customer has no entries on or before asOf.
	AccountFor(ctx context.Context, customer string, asOf time.Time) (*domain.CustomerCreditAccount, error)

	// ListOutstanding returns every account with a positive balance, ordered by customer name.
	ListOutstanding(ctx context.Context, asOf time.Time) ([]domain.CustomerCreditAccount, error)

	// Timeline returns the running balance history of a customer.
	Timeline(ctx context.Context, customer string) (*domain.CreditTimeline, error)

	// Thresholds returns the aging thresholds in use.
	Thresholds() domain.AgingThresholds
}
