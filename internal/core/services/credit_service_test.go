package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/core/services"
	"github.com/SscSPs/credit_tracking_app/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

type CreditServiceTestSuite struct {
	suite.Suite
	ledger  portssvc.LedgerSvcFacade
	service portssvc.CreditSvcFacade
}

func (suite *CreditServiceTestSuite) SetupTest() {
	suite.ledger = services.NewLedgerService(memory.NewLedgerRepository())
	suite.service = services.NewCreditService(suite.ledger)

	t := suite.T()
	_, err := suite.ledger.Append(context.Background(), []domain.TransactionEntry{
		{Date: day(t, "2024-01-01"), CustomerName: "Acme", Type: domain.EntrySale, Sales: amt(1000)},
		{Date: day(t, "2024-01-10"), CustomerName: "Acme", Type: domain.EntryRepayment, Cash: amt(300), BankTransfer: amt(100)},
		{Date: day(t, "2024-01-02"), CustomerName: "Beta", Type: domain.EntrySale, Sales: amt(200)},
		{Date: day(t, "2024-01-03"), CustomerName: "Beta", Type: domain.EntryRepayment, MobileWallet: amt(200)},
		{Date: day(t, "2024-01-04"), CustomerName: "Zed", Type: domain.EntrySale, Sales: amt(50)},
	})
	suite.Require().NoError(err)
}

// Sale of 1000 then a 400 repayment nine days later, observed 50 days after that.
func (suite *CreditServiceTestSuite) TestAccountFor_Warning() {
	account, err := suite.service.AccountFor(context.Background(), "Acme", day(suite.T(), "2024-02-29"))

	suite.Require().NoError(err)
	suite.True(amt(600).Equal(account.TotalOutstanding))
	suite.Equal(50, account.DaysOutstanding)
	suite.Equal(domain.StatusWarning, account.Status)
	suite.Equal(day(suite.T(), "2024-01-01"), account.FirstDate)
	suite.Equal(day(suite.T(), "2024-01-10"), account.LastDate)
}

func (suite *CreditServiceTestSuite) TestAccountFor_RepeatedReadsAgree() {
	ctx := context.Background()
	asOf := day(suite.T(), "2024-02-29")

	first, err := suite.service.AccountFor(ctx, "Acme", asOf)
	suite.Require().NoError(err)
	second, err := suite.service.AccountFor(ctx, "Acme", asOf)
	suite.Require().NoError(err)

	suite.Equal(*first, *second)

	listed, err := suite.service.ListOutstanding(ctx, asOf)
	suite.Require().NoError(err)
	again, err := suite.service.ListOutstanding(ctx, asOf)
	suite.Require().NoError(err)
	suite.Equal(listed, again)
}

func (suite *CreditServiceTestSuite) TestAccountFor_NotFound() {
	_, err := suite.service.AccountFor(context.Background(), "Nobody", day(suite.T(), "2024-02-01"))
	suite.ErrorIs(err, apperrors.ErrNotFound)

	// Acme exists, but not yet.
	_, err = suite.service.AccountFor(context.Background(), "Acme", day(suite.T(), "2023-12-31"))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CreditServiceTestSuite) TestAccountFor_CustomThresholds() {
	svc := services.NewCreditService(suite.ledger, services.WithAgingThresholds(domain.AgingThresholds{WarningAfterDays: 1, OverdueAfterDays: 5}))

	account, err := svc.AccountFor(context.Background(), "Zed", day(suite.T(), "2024-01-10"))

	suite.Require().NoError(err)
	suite.Equal(6, account.DaysOutstanding)
	suite.Equal(domain.StatusOverdue, account.Status)
	suite.Equal(5, svc.Thresholds().OverdueAfterDays)
}

func (suite *CreditServiceTestSuite) TestListOutstanding() {
	accounts, err := suite.service.ListOutstanding(context.Background(), day(suite.T(), "2024-01-31"))

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 2, "settled Beta is excluded")
	suite.Equal("Acme", accounts[0].CustomerName)
	suite.Equal("Zed", accounts[1].CustomerName)
	for _, a := range accounts {
		suite.True(a.TotalOutstanding.IsPositive())
	}
}

func (suite *CreditServiceTestSuite) TestListOutstanding_AsOfExcludesLaterEntries() {
	accounts, err := suite.service.ListOutstanding(context.Background(), day(suite.T(), "2024-01-02"))

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 2)
	suite.Equal("Beta", accounts[1].CustomerName, "Beta has not repaid yet on the 2nd")
}

func (suite *CreditServiceTestSuite) TestTimeline() {
	timeline, err := suite.service.Timeline(context.Background(), "Acme")

	suite.Require().NoError(err)
	suite.Require().Len(timeline.Points, 2)
	suite.True(amt(600).Equal(timeline.Points[1].Balance))
	suite.Require().Len(timeline.PaymentMethods, 2)
	suite.Equal(75, timeline.PaymentMethods[0].Percentage)
	suite.Equal(25, timeline.PaymentMethods[1].Percentage)

}

func (suite *CreditServiceTestSuite) TestTimeline_UnknownCustomerIsEmpty() {
	timeline, err := suite.service.Timeline(context.Background(), "Nobody")

	suite.Require().NoError(err)
	suite.Require().NotNil(timeline)
	suite.Equal("Nobody", timeline.CustomerName)
	suite.NotNil(timeline.Points)
	suite.Empty(timeline.Points)
	suite.NotNil(timeline.PaymentMethods)
	suite.Empty(timeline.PaymentMethods)
}

func TestCreditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditServiceTestSuite))
}
