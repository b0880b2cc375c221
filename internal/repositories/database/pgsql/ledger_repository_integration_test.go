//go:build integration

package pgsql

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/SscSPs/credit_tracking_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// Run with: PGSQL_TEST_URL=postgres://... go test -tags integration ./internal/repositories/database/pgsql/
type PgxLedgerRepositoryTestSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxLedgerRepository
	ctx  context.Context
}

func (suite *PgxLedgerRepositoryTestSuite) SetupSuite() {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		suite.T().Skip("PGSQL_TEST_URL not set")
	}
	suite.ctx = context.Background()
	suite.Require().NoError(database.MigratePostgres(url, slog.New(slog.NewTextHandler(io.Discard, nil))))

	pool, err := database.NewPgxPool(suite.ctx, url, true)
	suite.Require().NoError(err)
	suite.pool = pool
	suite.repo = NewLedgerRepository(pool)
}

func (suite *PgxLedgerRepositoryTestSuite) TearDownSuite() {
	if suite.pool != nil {
		database.ClosePgxPool(suite.pool)
	}
}

func (suite *PgxLedgerRepositoryTestSuite) SetupTest() {
	_, err := suite.pool.Exec(suite.ctx, `TRUNCATE ledger_entries RESTART IDENTITY;`)
	suite.Require().NoError(err)
}

func (suite *PgxLedgerRepositoryTestSuite) day(s string) time.Time {
	d, err := domain.ParseDate(s)
	suite.Require().NoError(err)
	return d
}

func (suite *PgxLedgerRepositoryTestSuite) seed() {
	_, err := suite.repo.AppendEntries(suite.ctx, []domain.TransactionEntry{
		{Date: suite.day("2024-01-03"), CustomerName: "Acme", Type: domain.EntrySale, Sales: decimal.RequireFromString("1250.50")},
		{Date: suite.day("2024-01-01"), CustomerName: "Beta", Type: domain.EntrySale, Sales: decimal.NewFromInt(200)},
		{Date: suite.day("2024-01-03"), CustomerName: "Beta", Type: domain.EntryRepayment, Cash: decimal.NewFromInt(200)},
		{Date: suite.day("2024-01-02"), CustomerName: "Acme", Type: domain.EntryRepayment, Cash: decimal.RequireFromString("100.25")},
		{Date: suite.day("2024-01-05"), CustomerName: "Acme", Type: domain.EntrySale, Sales: decimal.NewFromInt(10)},
	})
	suite.Require().NoError(err)
}

func (suite *PgxLedgerRepositoryTestSuite) TestAppendEntries_KeepsPrecision() {
	amount := decimal.RequireFromString("0.123456789")
	stored, err := suite.repo.AppendEntries(suite.ctx, []domain.TransactionEntry{
		{Date: suite.day("2024-01-03"), CustomerName: "Acme", Type: domain.EntrySale, Sales: amount, UploadID: "01HUPLOAD"},
	})

	suite.Require().NoError(err)
	suite.Require().Len(stored, 1)
	suite.Equal(int64(1), stored[0].ID)

	all, err := suite.repo.FindEntries(suite.ctx, domain.EntryFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(all, 1)
	suite.True(amount.Equal(all[0].Sales), all[0].Sales.String())
	suite.Equal("01HUPLOAD", all[0].UploadID)
}

func (suite *PgxLedgerRepositoryTestSuite) TestListEntries_Pages() {
	suite.seed()

	var seen []int64
	var token *string
	pages := 0
	for {
		page, next, err := suite.repo.ListEntries(suite.ctx, domain.EntryFilter{}, 2, token)
		suite.Require().NoError(err)
		pages++
		for _, e := range page {
			seen = append(seen, e.ID)
		}
		if next == nil {
			break
		}
		token = next
	}

	suite.Equal(3, pages)
	suite.Equal([]int64{2, 4, 1, 3, 5}, seen)

	bad := "%%%"
	_, _, err := suite.repo.ListEntries(suite.ctx, domain.EntryFilter{}, 2, &bad)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PgxLedgerRepositoryTestSuite) TestReplaceDay() {
	suite.seed()

	stored, removed, err := suite.repo.ReplaceDay(suite.ctx, suite.day("2024-01-03"), []domain.TransactionEntry{
		{Date: suite.day("2024-01-03"), CustomerName: "Gamma", Type: domain.EntrySale, Sales: decimal.NewFromInt(7)},
	})

	suite.Require().NoError(err)
	suite.Equal(2, removed)
	suite.Require().Len(stored, 1)
	suite.Equal(int64(6), stored[0].ID)

	all, err := suite.repo.FindEntries(suite.ctx, domain.EntryFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 4)
}

func (suite *PgxLedgerRepositoryTestSuite) TestDateBounds() {
	_, _, ok, err := suite.repo.DateBounds(suite.ctx)
	suite.Require().NoError(err)
	suite.False(ok)

	suite.seed()
	first, last, ok, err := suite.repo.DateBounds(suite.ctx)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(suite.day("2024-01-01"), first)
	suite.Equal(suite.day("2024-01-05"), last)
}

func TestPgxLedgerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PgxLedgerRepositoryTestSuite))
}
