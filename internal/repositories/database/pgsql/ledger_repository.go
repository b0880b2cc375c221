package pgsql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	"github.com/SscSPs/credit_tracking_app/internal/models"
	"github.com/SscSPs/credit_tracking_app/internal/utils/mapping"
	"github.com/SscSPs/credit_tracking_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerColumns = `entry_id, entry_date, customer_name, entry_type, sales, cash, bank_transfer,
	mobile_wallet, other_payment, upload_id, created_at`

const insertLedgerEntryQuery = `
	INSERT INTO ledger_entries (
		entry_date, customer_name, entry_type, sales, cash, bank_transfer,
		mobile_wallet, other_payment, upload_id
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING entry_id, created_at;
`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var (
	_ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)
	_ portsrepo.HealthChecker          = (*PgxLedgerRepository)(nil)
)

// AppendEntries inserts the entries in one database transaction.
func (r *PgxLedgerRepository) AppendEntries(ctx context.Context, entries []domain.TransactionEntry) ([]domain.TransactionEntry, error) {
	var stored []domain.TransactionEntry
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		var insertErr error
		stored, insertErr = r.insertEntries(ctx, tx, entries)
		return insertErr
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// ReplaceDay deletes the day's entries and inserts the new ones in one database transaction.
func (r *PgxLedgerRepository) ReplaceDay(ctx context.Context, date time.Time, entries []domain.TransactionEntry) ([]domain.TransactionEntry, int, error) {
	date = domain.NormalizeDate(date)

	var stored []domain.TransactionEntry
	var removed int
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_date = $1;`, date)
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete ledger entries for "+domain.FormatDate(date), err)
		}
		removed = int(tag.RowsAffected())

		stored, err = r.insertEntries(ctx, tx, entries)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return stored, removed, nil
}

func (r *PgxLedgerRepository) insertEntries(ctx context.Context, tx pgx.Tx, entries []domain.TransactionEntry) ([]domain.TransactionEntry, error) {
	if len(entries) == 0 {
		return []domain.TransactionEntry{}, nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelLedgerEntry(e)
		batch.Queue(insertLedgerEntryQuery,
			m.EntryDate,
			m.CustomerName,
			m.EntryType,
			m.Sales,
			m.Cash,
			m.BankTransfer,
			m.MobileWallet,
			m.OtherPayment,
			m.UploadID,
		)
	}

	br := tx.SendBatch(ctx, batch)
	stored := make([]domain.TransactionEntry, len(entries))
	for i, e := range entries {
		var id int64
		var createdAt time.Time
		if err := br.QueryRow().Scan(&id, &createdAt); err != nil {
			_ = br.Close()
			return nil, apperrors.NewAppError(500, "failed to insert ledger entry for "+e.CustomerName, err)
		}
		e.ID = id
		e.Date = domain.NormalizeDate(e.Date)
		e.CreatedAt = createdAt.UTC()
		stored[i] = e
	}
	// Close surfaces errors from any queued command
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute ledger insert batch", err)
	}
	return stored, nil
}

// FindEntries returns all matching entries ordered by date, then id.
func (r *PgxLedgerRepository) FindEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TransactionEntry, error) {
	where, args := buildLedgerFilter(filter)
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries` + where + ` ORDER BY entry_date, entry_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
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

// ListEntries returns one page of matching entries using a (date, id) keyset cursor.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether there is a next page.
	fetchLimit := limit + 1

	where, args := buildLedgerFilter(filter)
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, cursor.Date, cursor.ID)
		cursorClause := "(entry_date, entry_id) > ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
		if where == "" {
			where = " WHERE " + cursorClause
		} else {
			where += " AND " + cursorClause
		}
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries` + where +
		` ORDER BY entry_date, entry_id LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
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

// DateBounds returns the earliest and latest entry_date.
func (r *PgxLedgerRepository) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	var first, last *time.Time
	err := r.Pool.QueryRow(ctx, `SELECT MIN(entry_date), MAX(entry_date) FROM ledger_entries;`).Scan(&first, &last)
	if err != nil {
		return time.Time{}, time.Time{}, false, apperrors.NewAppError(500, "failed to read ledger date bounds", err)
	}
	if first == nil || last == nil {
		return time.Time{}, time.Time{}, false, nil
	}
	return domain.NormalizeDate(*first), domain.NormalizeDate(*last), true, nil
}

func (r *PgxLedgerRepository) Ping(ctx context.Context) error {
	return r.Pool.Ping(ctx)
}

// buildLedgerFilter renders the filter as a WHERE clause with positional arguments.
func buildLedgerFilter(filter domain.EntryFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, cond+" $"+strconv.Itoa(len(args)))
	}

	if filter.Customer != "" {
		add("customer_name =", filter.Customer)
	}
	if filter.Type != "" {
		add("entry_type =", string(filter.Type))
	}
	if filter.DateFrom != nil {
		add("entry_date >=", domain.NormalizeDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		add("entry_date <=", domain.NormalizeDate(*filter.DateTo))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanLedgerEntries(rows pgx.Rows) ([]models.LedgerEntry, error) {
	entries := make([]models.LedgerEntry, 0)
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.EntryDate,
			&m.CustomerName,
			&m.EntryType,
			&m.Sales,
			&m.Cash,
			&m.BankTransfer,
			&m.MobileWallet,
			&m.OtherPayment,
			&m.UploadID,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}
