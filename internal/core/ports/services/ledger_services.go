package services

import (
	"context"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
)

// LedgerReaderSvc defines read operations on the transaction ledger
type LedgerReaderSvc interface {
	// Query returns every entry matching the filter, ordered by date then id.
	Query(ctx context.Context, filter domain.EntryFilter) ([]domain.TransactionEntry, error)

	// QueryPage returns one page of matching entries and the token of the next page.
	QueryPage(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error)

	// DateBounds returns the earliest and latest entry dates. ok is false for an empty ledger.
	DateBounds(ctx context.Context) (first, last time.Time, ok bool, err error)
}

// LedgerWriterSvc defines write operations on the transaction ledger
type LedgerWriterSvc interface {
	// Append validates and stores the entries all-or-nothing. It returns the number stored.
	Append(ctx context.Context, entries []domain.TransactionEntry) (int, error)

	// ReplaceDay swaps every entry of date for the given entries atomically.
	ReplaceDay(ctx context.Context, date time.Time, entries []domain.TransactionEntry) (int, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
