package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindEntries returns every entry matching the filter, ordered by date then id.
	FindEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TransactionEntry, error)

	// ListEntries retrieves a page of matching entries using token-based pagination.
	// It returns the entries, a token for the next page (nil on the last page), and an error.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error)

	// DateBounds returns the earliest and latest entry dates. ok is false for an empty ledger.
	DateBounds(ctx context.Context) (first, last time.Time, ok bool, err error)
}

// LedgerWriter defines write operations for ledger entries
type LedgerWriter interface {
	// AppendEntries stores the entries atomically and returns them with ids and createdAt assigned.
	AppendEntries(ctx context.Context, entries []domain.TransactionEntry) ([]domain.TransactionEntry, error)

	// ReplaceDay deletes every entry dated on date and stores the given ones, in one transaction.
	// It returns the stored entries and the number of entries removed.
	ReplaceDay(ctx context.Context, date time.Time, entries []domain.TransactionEntry) ([]domain.TransactionEntry, int, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// HealthChecker is implemented by repositories backed by an external store.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
