package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// txBeginner is the part of pgxpool.Pool that runs transactions.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BaseRepository holds the pool shared by the Postgres repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// WithTx runs fn inside one transaction on the repository pool.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return withTx(ctx, r.Pool, fn)
}

// withTx commits when fn succeeds and rolls back otherwise. Errors fn returns are passed
// through unchanged; begin and commit failures become AppErrors.
func withTx(ctx context.Context, db txBeginner, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, apperrors.NewAppError(500, "failed to rollback transaction", rbErr))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}
