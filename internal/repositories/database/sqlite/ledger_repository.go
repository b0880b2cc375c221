package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	"github.com/SscSPs/credit_tracking_app/internal/models"
	"github.com/SscSPs/credit_tracking_app/internal/utils/mapping"
	"github.com/SscSPs/credit_tracking_app/internal/utils/pagination"
)

const ledgerColumns = `entry_id, entry_date, customer_name, entry_type, sales, cash, bank_transfer,
	mobile_wallet, other_payment, upload_id, created_at`

const insertLedgerEntryQuery = `
	INSERT INTO ledger_entries (
		entry_date, customer_name, entry_type, sales, cash, bank_transfer,
		mobile_wallet, other_payment, upload_id, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

// LedgerRepository stores the ledger in a SQLite database. Dates are kept as YYYY-MM-DD text
// and amounts as decimal text, so ordering and sums never go through floating point.
type LedgerRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewLedgerRepository creates a ledger repository on an open, migrated database.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db, now: time.Now}
}

// NewRepositoryProvider wires the SQLite ledger with the given report cache.
func NewRepositoryProvider(db *sql.DB, reportCache portsrepo.ReportCache) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:  NewLedgerRepository(db),
		ReportCache: reportCache,
	}
}

var (
	_ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)
	_ portsrepo.HealthChecker          = (*LedgerRepository)(nil)
)

func (r *LedgerRepository) AppendEntries(ctx context.Context, entries []domain.TransactionEntry) ([]domain.TransactionEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer rollback(tx)

	stored, err := r.insertEntries(ctx, tx, entries)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return stored, nil
}

func (r *LedgerRepository) ReplaceDay(ctx context.Context, date time.Time, entries []domain.TransactionEntry) ([]domain.TransactionEntry, int, error) {
	date = domain.NormalizeDate(date)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer rollback(tx)

	res, err := tx.ExecContext(ctx, `DELETE FROM ledger_entries WHERE entry_date = ?;`, domain.FormatDate(date))
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to delete ledger entries for "+domain.FormatDate(date), err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count deleted ledger entries", err)
	}

	stored, err := r.insertEntries(ctx, tx, entries)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return stored, int(removed), nil
}

func (r *LedgerRepository) insertEntries(ctx context.Context, tx *sql.Tx, entries []domain.TransactionEntry) ([]domain.TransactionEntry, error) {
	now := r.now().UTC()
	stored := make([]domain.TransactionEntry, len(entries))
	for i, e := range entries {
		m := mapping.ToModelLedgerEntry(e)
		res, err := tx.ExecContext(ctx, insertLedgerEntryQuery,
			domain.FormatDate(m.EntryDate),
			m.CustomerName,
			string(m.EntryType),
			m.Sales,
			m.Cash,
			m.BankTransfer,
			m.MobileWallet,
			m.OtherPayment,
			m.UploadID,
			now.Format(time.RFC3339Nano),
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert ledger entry for "+e.CustomerName, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to read ledger entry id", err)
		}
		e.ID = id
		e.Date = m.EntryDate
		e.CreatedAt = now
		stored[i] = e
	}
	return stored, nil
}

func (r *LedgerRepository) FindEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TransactionEntry, error) {
	where, args := buildLedgerFilter(filter)
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries` + where + ` ORDER BY entry_date, entry_id;`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

func (r *LedgerRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	where, args := buildLedgerFilter(filter)
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorDate := domain.FormatDate(cursor.Date)
		cursorClause := "(entry_date > ? OR (entry_date = ? AND entry_id > ?))"
		args = append(args, cursorDate, cursorDate, cursor.ID)
		if where == "" {
			where = " WHERE " + cursorClause
		} else {
			where += " AND " + cursorClause
		}
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries` + where + ` ORDER BY entry_date, entry_id LIMIT ?;`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list ledger entries", err)
	}
	defer rows.Close()

	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryID)
		nextTokenVal = &token
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nextTokenVal, nil
}

func (r *LedgerRepository) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	var first, last sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT MIN(entry_date), MAX(entry_date) FROM ledger_entries;`).Scan(&first, &last)
	if err != nil {
		return time.Time{}, time.Time{}, false, apperrors.NewAppError(500, "failed to read ledger date bounds", err)
	}
	if !first.Valid || !last.Valid {
		return time.Time{}, time.Time{}, false, nil
	}

	firstDate, err := domain.ParseDate(first.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, apperrors.NewAppError(500, "corrupt entry_date in ledger", err)
	}
	lastDate, err := domain.ParseDate(last.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, apperrors.NewAppError(500, "corrupt entry_date in ledger", err)
	}
	return firstDate, lastDate, true, nil
}

func (r *LedgerRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// rollback is deferred after BeginTx; it is a no-op once the transaction committed.
func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}

func buildLedgerFilter(filter domain.EntryFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Customer != "" {
		conditions = append(conditions, "customer_name = ?")
		args = append(args, filter.Customer)
	}
	if filter.Type != "" {
		conditions = append(conditions, "entry_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "entry_date >= ?")
		args = append(args, domain.FormatDate(domain.NormalizeDate(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "entry_date <= ?")
		args = append(args, domain.FormatDate(domain.NormalizeDate(*filter.DateTo)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanLedgerEntries(rows *sql.Rows) ([]models.LedgerEntry, error) {
	entries := make([]models.LedgerEntry, 0)
	for rows.Next() {
		var m models.LedgerEntry
		var entryDate, createdAt string
		err := rows.Scan(
			&m.EntryID,
			&entryDate,
			&m.CustomerName,
			&m.EntryType,
			&m.Sales,
			&m.Cash,
			&m.BankTransfer,
			&m.MobileWallet,
			&m.OtherPayment,
			&m.UploadID,
			&createdAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}

		if m.EntryDate, err = domain.ParseDate(entryDate); err != nil {
			return nil, apperrors.NewAppError(500, "corrupt entry_date for entry", err)
		}
		if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, apperrors.NewAppError(500, "corrupt created_at for entry", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}
