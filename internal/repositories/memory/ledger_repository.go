package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	"github.com/SscSPs/credit_tracking_app/internal/utils/accounting"
	"github.com/SscSPs/credit_tracking_app/internal/utils/pagination"
)

// LedgerRepository keeps the ledger in process memory. Entries are kept sorted by (date, id)
// and every read returns copies.
type LedgerRepository struct {
	mu      sync.RWMutex
	entries []domain.TransactionEntry
	nextID  int64
	now     func() time.Time
}

// NewLedgerRepository creates an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{nextID: 1, now: time.Now}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) AppendEntries(ctx context.Context, entries []domain.TransactionEntry) ([]domain.TransactionEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.appendLocked(entries), nil
}

func (r *LedgerRepository) ReplaceDay(ctx context.Context, date time.Time, entries []domain.TransactionEntry) ([]domain.TransactionEntry, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	date = domain.NormalizeDate(date)

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0:0]
	for _, e := range r.entries {
		if !e.Date.Equal(date) {
			kept = append(kept, e)
		}
	}
	removed := len(r.entries) - len(kept)
	r.entries = kept

	return r.appendLocked(entries), removed, nil
}

func (r *LedgerRepository) appendLocked(entries []domain.TransactionEntry) []domain.TransactionEntry {
	now := r.now().UTC()
	stored := make([]domain.TransactionEntry, len(entries))
	for i, e := range entries {
		e.ID = r.nextID
		e.Date = domain.NormalizeDate(e.Date)
		e.CreatedAt = now
		r.nextID++
		stored[i] = e
	}
	r.entries = append(r.entries, stored...)
	accounting.SortEntries(r.entries)
	return stored
}

func (r *LedgerRepository) FindEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TransactionEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.FilterEntries(r.entries, filter), nil
}

func (r *LedgerRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursor = &c
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	page := make([]domain.TransactionEntry, 0, limit)
	var next *string
	for _, e := range r.entries {
		if !filter.Match(e) || (cursor != nil && !cursor.After(e.Date, e.ID)) {
			continue
		}
		if len(page) == limit {
			last := page[len(page)-1]
			token := pagination.EncodeToken(last.Date, last.ID)
			next = &token
			break
		}
		page = append(page, e)
	}
	return page, next, nil
}

func (r *LedgerRepository) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return time.Time{}, time.Time{}, false, nil
	}
	return r.entries[0].Date, r.entries[len(r.entries)-1].Date, true, nil
}
