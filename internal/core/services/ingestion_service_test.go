package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/core/services"
	"github.com/SscSPs/credit_tracking_app/internal/platform/metrics"
	"github.com/SscSPs/credit_tracking_app/internal/repositories/memory"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type IngestionServiceTestSuite struct {
	suite.Suite
	parser  *MockWorkbookParser
	metrics *metrics.Metrics
	ledger  portssvc.LedgerSvcFacade
	service portssvc.IngestionSvcFacade
	today   time.Time
}

func (suite *IngestionServiceTestSuite) SetupTest() {
	suite.parser = new(MockWorkbookParser)
	suite.metrics = metrics.New()
	suite.ledger = services.NewLedgerService(memory.NewLedgerRepository())
	suite.today = day(suite.T(), "2024-03-15")
	suite.service = services.NewIngestionService(suite.parser, suite.ledger,
		services.WithIngestionMetrics(suite.metrics),
		services.WithIngestionClock(func() time.Time { return suite.today }),
		services.WithUploadIDGenerator(func() string { return "01HUPLOAD" }))
}

// workbook mirrors a sheet with rows (Acme, 1000, 0, 0, 0, 0) and (Acme, 0, 500, 0, 0, 0).
func (suite *IngestionServiceTestSuite) workbook() *domain.ParsedWorkbook {
	return &domain.ParsedWorkbook{
		Sheet: "Sheet1",
		Rows: []domain.WorkbookRow{
			{Row: 2, CustomerName: "Acme", Sales: amt(1000)},
			{Row: 3, CustomerName: "Acme", Cash: amt(500)},
			{Row: 4, CustomerName: "Ghost"},
			{Row: 5, CustomerName: "Shop rent", OtherPayment: amt(40)},
		},
		SkippedRows: 1,
	}
}

func (suite *IngestionServiceTestSuite) TestIngest_ExplicitDate() {
	ctx := context.Background()
	date := day(suite.T(), "2024-01-05")
	suite.parser.On("Parse", "day.xlsx", []byte("xlsx")).Return(suite.workbook(), nil).Once()

	result, err := suite.service.Ingest(ctx, domain.IngestRequest{FileName: "day.xlsx", Content: []byte("xlsx"), Date: &date})

	suite.Require().NoError(err)
	suite.Equal(3, result.RowsProcessed)
	suite.Equal(2, result.RowsSkipped, "one blank name from the parser plus one all-zero row")
	suite.Equal(date, result.Date)
	suite.Equal("01HUPLOAD", result.UploadID)

	entries, err := suite.ledger.Query(ctx, domain.EntryFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	suite.Equal(domain.EntrySale, entries[0].Type)
	suite.Equal(domain.EntryRepayment, entries[1].Type)
	suite.Equal(domain.EntryExpense, entries[2].Type)
	suite.Equal("01HUPLOAD", entries[0].UploadID)
	suite.Less(entries[0].ID, entries[1].ID, "file order is preserved")

	suite.Equal(float64(3), testutil.ToFloat64(suite.metrics.IngestedRows.WithLabelValues("processed")))
	suite.parser.AssertExpectations(suite.T())
}

func (suite *IngestionServiceTestSuite) TestIngest_RaisesCustomerBalance() {
	ctx := context.Background()
	credit := services.NewCreditService(suite.ledger)
	_, err := suite.ledger.Append(ctx, []domain.TransactionEntry{
		{Date: day(suite.T(), "2024-01-01"), CustomerName: "Acme", Type: domain.EntrySale, Sales: amt(200)},
	})
	suite.Require().NoError(err)

	before, err := credit.AccountFor(ctx, "Acme", day(suite.T(), "2024-01-10"))
	suite.Require().NoError(err)

	date := day(suite.T(), "2024-01-05")
	suite.parser.On("Parse", "acme.xlsx", []byte("xlsx")).Return(&domain.ParsedWorkbook{
		Sheet: "Sheet1",
		Rows:  []domain.WorkbookRow{{Row: 2, CustomerName: "Acme", Sales: amt(1000)}},
	}, nil).Once()

	_, err = suite.service.Ingest(ctx, domain.IngestRequest{FileName: "acme.xlsx", Content: []byte("xlsx"), Date: &date})
	suite.Require().NoError(err)

	for _, asOf := range []string{"2024-01-05", "2024-01-10"} {
		after, err := credit.AccountFor(ctx, "Acme", day(suite.T(), asOf))
		suite.Require().NoError(err)
		suite.True(before.TotalOutstanding.Add(amt(1000)).Equal(after.TotalOutstanding), asOf)
		suite.Equal(date, after.LastDate, asOf)
	}

	earlier, err := credit.AccountFor(ctx, "Acme", day(suite.T(), "2024-01-04"))
	suite.Require().NoError(err)
	suite.True(before.TotalOutstanding.Equal(earlier.TotalOutstanding), "the upload is not visible before its date")
}

func (suite *IngestionServiceTestSuite) TestIngest_NewCustomerInvisibleBeforeDate() {
	ctx := context.Background()
	credit := services.NewCreditService(suite.ledger)
	date := day(suite.T(), "2024-01-05")
	suite.parser.On("Parse", "acme.xlsx", []byte("xlsx")).Return(&domain.ParsedWorkbook{
		Sheet: "Sheet1",
		Rows:  []domain.WorkbookRow{{Row: 2, CustomerName: "Acme", Sales: amt(1000)}},
	}, nil).Once()

	_, err := suite.service.Ingest(ctx, domain.IngestRequest{FileName: "acme.xlsx", Content: []byte("xlsx"), Date: &date})
	suite.Require().NoError(err)

	account, err := credit.AccountFor(ctx, "Acme", date)
	suite.Require().NoError(err)
	suite.True(amt(1000).Equal(account.TotalOutstanding))

	_, err = credit.AccountFor(ctx, "Acme", day(suite.T(), "2024-01-04"))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *IngestionServiceTestSuite) TestIngest_DatePrecedence() {
	ctx := context.Background()
	headerDate := day(suite.T(), "2024-02-02")
	wb := suite.workbook()
	wb.HeaderDate = &headerDate
	suite.parser.On("Parse", mock.Anything, mock.Anything).Return(wb, nil).Once()

	result, err := suite.service.Ingest(ctx, domain.IngestRequest{FileName: "a.xlsx"})
	suite.Require().NoError(err)
	suite.Equal(headerDate, result.Date)

	suite.parser.On("Parse", mock.Anything, mock.Anything).Return(suite.workbook(), nil).Once()
	result, err = suite.service.Ingest(ctx, domain.IngestRequest{FileName: "b.xlsx"})
	suite.Require().NoError(err)
	suite.Equal(suite.today, result.Date)
}

func (suite *IngestionServiceTestSuite) TestIngest_ReplaceIsIdempotent() {
	ctx := context.Background()
	date := day(suite.T(), "2024-01-05")
	suite.parser.On("Parse", mock.Anything, mock.Anything).Return(suite.workbook(), nil).Times(3)

	_, err := suite.service.Ingest(ctx, domain.IngestRequest{FileName: "a.xlsx", Date: &date})
	suite.Require().NoError(err)
	for i := 0; i < 2; i++ {
		result, err := suite.service.Ingest(ctx, domain.IngestRequest{FileName: "a.xlsx", Date: &date, Replace: true})
		suite.Require().NoError(err)
		suite.True(result.Replaced)
	}

	entries, err := suite.ledger.Query(ctx, domain.EntryFilter{})
	suite.Require().NoError(err)
	suite.Len(entries, 3)
}

func (suite *IngestionServiceTestSuite) TestIngest_ParserErrorLeavesLedgerUntouched() {
	ctx := context.Background()
	parseErr := apperrors.NewIngestError(apperrors.ErrInvalidCell, 7, "CASH", `"abc" is not a number`)
	suite.parser.On("Parse", mock.Anything, mock.Anything).Return(nil, parseErr).Once()

	result, err := suite.service.Ingest(ctx, domain.IngestRequest{FileName: "bad.xlsx"})

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidCell)
	entries, qerr := suite.ledger.Query(ctx, domain.EntryFilter{})
	suite.Require().NoError(qerr)
	suite.Empty(entries)
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.IngestedUploads.WithLabelValues("rejected")))
}

func (suite *IngestionServiceTestSuite) TestIngest_EmptyWorkbook() {
	suite.parser.On("Parse", mock.Anything, mock.Anything).Return(&domain.ParsedWorkbook{Sheet: "Sheet1"}, nil).Once()

	result, err := suite.service.Ingest(context.Background(), domain.IngestRequest{FileName: "empty.xlsx"})

	suite.Require().NoError(err)
	suite.Equal(0, result.RowsProcessed)
	suite.Equal(0, result.RowsSkipped)
}

func TestIngestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IngestionServiceTestSuite))
}
