package dto

import (
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryTotalsResponse are the column sums shared by every summary.
type SummaryTotalsResponse struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalCash         decimal.Decimal `json:"total_cash"`
	TotalBankTransfer decimal.Decimal `json:"total_bank_transfer"`
	TotalMobileWallet decimal.Decimal `json:"total_mobile_wallet"`
	TotalReceived     decimal.Decimal `json:"total_received"`
	TotalExpense      decimal.Decimal `json:"total_expense"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	NetCashFlow       decimal.Decimal `json:"net_cash_flow"`
	EntryCount        int             `json:"entry_count"`
}

// DailySummaryResponse represents the summary of a single date
type DailySummaryResponse struct {
	Date string `json:"date"`
	SummaryTotalsResponse
}

// RangeSummaryResponse represents the summary of a date range; open bounds read "all".
type RangeSummaryResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	SummaryTotalsResponse
}

type TransactionTypeResponse struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// DailyChartsResponse represents the charts of a single date
type DailyChartsResponse struct {
	Date             string                    `json:"date"`
	PaymentMethods   []PaymentMethodResponse   `json:"payment_methods"`
	TransactionTypes []TransactionTypeResponse `json:"transaction_types"`
}

// RangeChartsResponse holds parallel per-day series; all slices share an index.
type RangeChartsResponse struct {
	Dates       []string          `json:"dates"`
	Sales       []decimal.Decimal `json:"sales"`
	Received    []decimal.Decimal `json:"received"`
	Expenses    []decimal.Decimal `json:"expenses"`
	Outstanding []decimal.Decimal `json:"outstanding"`
	NetCashFlow []decimal.Decimal `json:"net_cash_flow"`
}

func toSummaryTotalsResponse(t domain.SummaryTotals) SummaryTotalsResponse {
	return SummaryTotalsResponse{
		TotalSales:        t.TotalSales,
		TotalCash:         t.TotalCash,
		TotalBankTransfer: t.TotalBankTransfer,
		TotalMobileWallet: t.TotalMobileWallet,
		TotalReceived:     t.TotalReceived,
		TotalExpense:      t.TotalExpense,
		TotalOutstanding:  t.TotalOutstanding,
		NetCashFlow:       t.NetCashFlow,
		EntryCount:        t.EntryCount,
	}
}

// ToDailySummaryResponse converts a domain daily summary to a DTO response
func ToDailySummaryResponse(s domain.DailySummary) DailySummaryResponse {
	return DailySummaryResponse{
		Date:                  domain.FormatDate(s.Date),
		SummaryTotalsResponse: toSummaryTotalsResponse(s.SummaryTotals),
	}
}

// ToDailySummaryResponses converts a daily series. The result is never nil.
func ToDailySummaryResponses(series []domain.DailySummary) []DailySummaryResponse {
	responses := make([]DailySummaryResponse, len(series))
	for i, s := range series {
		responses[i] = ToDailySummaryResponse(s)
	}
	return responses
}

// ToRangeSummaryResponse converts a domain range summary to a DTO response
func ToRangeSummaryResponse(s domain.RangeSummary) RangeSummaryResponse {
	from, to := "all", "all"
	if s.From != nil {
		from = domain.FormatDate(*s.From)
	}
	if s.To != nil {
		to = domain.FormatDate(*s.To)
	}
	return RangeSummaryResponse{
		From:                  from,
		To:                    to,
		SummaryTotalsResponse: toSummaryTotalsResponse(s.SummaryTotals),
	}
}

func ToDailyChartsResponse(c domain.DailyCharts) DailyChartsResponse {
	types := make([]TransactionTypeResponse, len(c.TransactionTypes))
	for i, t := range c.TransactionTypes {
		types[i] = TransactionTypeResponse{Type: string(t.Type), Count: t.Count, Percentage: t.Percentage}
	}
	return DailyChartsResponse{
		Date:             domain.FormatDate(c.Date),
		PaymentMethods:   ToPaymentMethodResponses(c.PaymentMethods),
		TransactionTypes: types,
	}
}

func ToRangeChartsResponse(c domain.RangeCharts) RangeChartsResponse {
	dates := make([]string, len(c.Dates))
	for i, d := range c.Dates {
		dates[i] = domain.FormatDate(d)
	}
	return RangeChartsResponse{
		Dates:       dates,
		Sales:       nonNil(c.Sales),
		Received:    nonNil(c.Received),
		Expenses:    nonNil(c.Expenses),
		Outstanding: nonNil(c.Outstanding),
		NetCashFlow: nonNil(c.NetCashFlow),
	}
}

func nonNil(s []decimal.Decimal) []decimal.Decimal {
	if s == nil {
		return []decimal.Decimal{}
	}
	return s
}
