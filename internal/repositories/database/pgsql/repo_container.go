package pgsql

import (
	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewLedgerRepository exposes the Postgres ledger store on its own, e.g. for health checks.
func NewLedgerRepository(dbPool *pgxpool.Pool) *PgxLedgerRepository {
	return newPgxLedgerRepository(dbPool)
}

func NewRepositoryProvider(dbPool *pgxpool.Pool, reportCache portsrepo.ReportCache) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:  newPgxLedgerRepository(dbPool),
		ReportCache: reportCache,
	}
}
