package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryTotals are column sums over a set of ledger entries.
type SummaryTotals struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalCash         decimal.Decimal `json:"totalCash"`
	TotalBankTransfer decimal.Decimal `json:"totalBankTransfer"`
	TotalMobileWallet decimal.Decimal `json:"totalMobileWallet"`
	TotalReceived     decimal.Decimal `json:"totalReceived"`    // Cash + bank transfer + mobile wallet
	TotalExpense      decimal.Decimal `json:"totalExpense"`     // Sum of other payments
	TotalOutstanding  decimal.Decimal `json:"totalOutstanding"` // Net new credit: sales minus received, may be negative
	NetCashFlow       decimal.Decimal `json:"netCashFlow"`      // Received minus expense
	EntryCount        int             `json:"entryCount"`
}

// ZeroTotals returns totals with every amount set to zero.
func ZeroTotals() SummaryTotals {
	return SummaryTotals{
		TotalSales:        decimal.Zero,
		TotalCash:         decimal.Zero,
		TotalBankTransfer: decimal.Zero,
		TotalMobileWallet: decimal.Zero,
		TotalReceived:     decimal.Zero,
		TotalExpense:      decimal.Zero,
		TotalOutstanding:  decimal.Zero,
		NetCashFlow:       decimal.Zero,
	}
}

// DailySummary aggregates one calendar date.
type DailySummary struct {
	Date time.Time `json:"date"`
	SummaryTotals
}

// RangeSummary aggregates an inclusive date range; nil bounds mean open.
type RangeSummary struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
	SummaryTotals
}

// TransactionTypeShare counts entries of one type within a day.
type TransactionTypeShare struct {
	Type       EntryType `json:"type"`
	Count      int       `json:"count"`
	Percentage int       `json:"percentage"`
}

// DailyCharts holds the distributions plotted for a single day.
type DailyCharts struct {
	Date             time.Time              `json:"date"`
	PaymentMethods   []PaymentMethodShare   `json:"paymentMethods"`
	TransactionTypes []TransactionTypeShare `json:"transactionTypes"`
}

// RangeCharts holds per-day series for a date range; all slices share an index.
type RangeCharts struct {
	Dates       []time.Time       `json:"dates"`
	Sales       []decimal.Decimal `json:"sales"`
	Received    []decimal.Decimal `json:"received"`
	Expenses    []decimal.Decimal `json:"expenses"`
	Outstanding []decimal.Decimal `json:"outstanding"`
	NetCashFlow []decimal.Decimal `json:"netCashFlow"`
}

// IngestResult reports the outcome of one upload.
type IngestResult struct {
	RowsProcessed int       `json:"rowsProcessed"`
	RowsSkipped   int       `json:"rowsSkipped"`
	Date          time.Time `json:"date"`
	UploadID      string    `json:"uploadID"`
	Replaced      bool      `json:"replaced"`
}
