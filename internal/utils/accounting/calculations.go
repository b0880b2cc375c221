package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SortEntries orders entries by date ascending, then by id. The sort is stable so entries
// without ids keep their insertion order within a date.
func SortEntries(entries []domain.TransactionEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
}

// FoldAccount computes the credit account of one customer from the entries dated on or before asOf.
// ok is false when the customer has no such entries.
func FoldAccount(customer string, entries []domain.TransactionEntry, asOf time.Time, thresholds domain.AgingThresholds) (domain.CustomerCreditAccount, bool) {
	asOf = domain.NormalizeDate(asOf)
	account := domain.CustomerCreditAccount{
		CustomerName:     customer,
		TotalOutstanding: decimal.Zero,
		AsOf:             asOf,
	}
	found := false

	for _, e := range entries {
		if e.CustomerName != customer || e.Date.After(asOf) {
			continue
		}
		account.TotalOutstanding = account.TotalOutstanding.Add(e.Sales).Sub(e.Received())
		if !found || e.Date.Before(account.FirstDate) {
			account.FirstDate = e.Date
		}
		if !found || e.Date.After(account.LastDate) {
			account.LastDate = e.Date
		}
		found = true
	}
	if !found {
		return domain.CustomerCreditAccount{}, false
	}

	account.DaysOutstanding = domain.DaysBetween(account.LastDate, asOf)
	if account.IsSettled() {
		account.Status = domain.StatusGood
	} else {
		account.Status = thresholds.Classify(account.DaysOutstanding)
	}
	return account, true
}

// FoldAccounts computes the account of every customer with entries on or before asOf,
// ordered by customer name.
func FoldAccounts(entries []domain.TransactionEntry, asOf time.Time, thresholds domain.AgingThresholds) []domain.CustomerCreditAccount {
	grouped := make(map[string][]domain.TransactionEntry)
	for _, e := range entries {
		grouped[e.CustomerName] = append(grouped[e.CustomerName], e)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	accounts := make([]domain.CustomerCreditAccount, 0, len(names))
	for _, name := range names {
		if account, ok := FoldAccount(name, grouped[name], asOf, thresholds); ok {
			accounts = append(accounts, account)
		}
	}
	return accounts
}

// OutstandingOnly keeps the accounts that still owe money.
func OutstandingOnly(accounts []domain.CustomerCreditAccount) []domain.CustomerCreditAccount {
	out := make([]domain.CustomerCreditAccount, 0, len(accounts))
	for _, a := range accounts {
		if !a.IsSettled() {
			out = append(out, a)
		}
	}
	return out
}

// FoldTotals sums every monetary column of the entries inside rng, regardless of entry type.
func FoldTotals(entries []domain.TransactionEntry, rng domain.DateRange) domain.SummaryTotals {
	totals := domain.ZeroTotals()
	for _, e := range entries {
		if !rng.Contains(e.Date) {
			continue
		}
		totals.TotalSales = totals.TotalSales.Add(e.Sales)
		totals.TotalCash = totals.TotalCash.Add(e.Cash)
		totals.TotalBankTransfer = totals.TotalBankTransfer.Add(e.BankTransfer)
		totals.TotalMobileWallet = totals.TotalMobileWallet.Add(e.MobileWallet)
		totals.TotalExpense = totals.TotalExpense.Add(e.OtherPayment)
		totals.EntryCount++
	}
	totals.TotalReceived = totals.TotalCash.Add(totals.TotalBankTransfer).Add(totals.TotalMobileWallet)
	totals.TotalOutstanding = totals.TotalSales.Sub(totals.TotalReceived)
	totals.NetCashFlow = totals.TotalReceived.Sub(totals.TotalExpense)
	return totals
}

// FoldRange produces the RangeSummary for rng.
func FoldRange(entries []domain.TransactionEntry, rng domain.DateRange) domain.RangeSummary {
	return domain.RangeSummary{
		From:          rng.From,
		To:            rng.To,
		SummaryTotals: FoldTotals(entries, rng),
	}
}

// FoldDaily produces the DailySummary for a single date.
func FoldDaily(entries []domain.TransactionEntry, date time.Time) domain.DailySummary {
	date = domain.NormalizeDate(date)
	return domain.DailySummary{
		Date:          date,
		SummaryTotals: FoldTotals(entries, domain.SingleDay(date)),
	}
}

// FoldDailySeries produces one DailySummary per calendar day in [from, to], zero-filled.
func FoldDailySeries(entries []domain.TransactionEntry, from, to time.Time) []domain.DailySummary {
	byDate := make(map[time.Time][]domain.TransactionEntry)
	for _, e := range entries {
		d := domain.NormalizeDate(e.Date)
		byDate[d] = append(byDate[d], e)
	}

	days := domain.DatesInRange(from, to)
	series := make([]domain.DailySummary, 0, len(days))
	for _, d := range days {
		series = append(series, FoldDaily(byDate[d], d))
	}
	return series
}

// FoldTimeline builds the running-balance history of a customer. Each point covers one entry date.
func FoldTimeline(customer string, entries []domain.TransactionEntry) domain.CreditTimeline {
	own := domain.FilterEntries(entries, domain.EntryFilter{Customer: customer})
	SortEntries(own)

	timeline := domain.CreditTimeline{
		CustomerName: customer,
		Points:       []domain.TimelinePoint{},
	}
	balance := decimal.Zero
	cash, bank, wallet := decimal.Zero, decimal.Zero, decimal.Zero

	for _, e := range own {
		balance = balance.Add(e.NetCredit())
		cash = cash.Add(e.Cash)
		bank = bank.Add(e.BankTransfer)
		wallet = wallet.Add(e.MobileWallet)

		n := len(timeline.Points)
		if n > 0 && timeline.Points[n-1].Date.Equal(e.Date) {
			timeline.Points[n-1].Delta = timeline.Points[n-1].Delta.Add(e.NetCredit())
			timeline.Points[n-1].Balance = balance
			continue
		}
		timeline.Points = append(timeline.Points, domain.TimelinePoint{
			Date:    e.Date,
			Delta:   e.NetCredit(),
			Balance: balance,
		})
	}

	timeline.PaymentMethods = PaymentMethodBreakdown(cash, bank, wallet)
	return timeline
}

// PaymentMethodBreakdown turns receipt totals into shares, omitting methods with no receipts.
func PaymentMethodBreakdown(cash, bankTransfer, mobileWallet decimal.Decimal) []domain.PaymentMethodShare {
	methods := []domain.PaymentMethodShare{
		{Method: domain.PaymentMethodCash, Amount: cash},
		{Method: domain.PaymentMethodBankTransfer, Amount: bankTransfer},
		{Method: domain.PaymentMethodMobileWallet, Amount: mobileWallet},
	}
	total := cash.Add(bankTransfer).Add(mobileWallet)

	shares := []domain.PaymentMethodShare{}
	if !total.IsPositive() {
		return shares
	}
	for _, m := range methods {
		if !m.Amount.IsPositive() {
			continue
		}
		m.Percentage = Percentage(m.Amount, total)
		shares = append(shares, m)
	}
	return shares
}

// FoldDailyCharts builds the payment-method and transaction-type distributions of one date.
func FoldDailyCharts(entries []domain.TransactionEntry, date time.Time) domain.DailyCharts {
	daily := FoldDaily(entries, date)
	charts := domain.DailyCharts{
		Date:             daily.Date,
		PaymentMethods:   PaymentMethodBreakdown(daily.TotalCash, daily.TotalBankTransfer, daily.TotalMobileWallet),
		TransactionTypes: []domain.TransactionTypeShare{},
	}

	counts := make(map[domain.EntryType]int)
	for _, e := range domain.FilterEntries(entries, domain.EntryFilter{DateFrom: &daily.Date, DateTo: &daily.Date}) {
		counts[e.Type]++
	}
	if daily.EntryCount == 0 {
		return charts
	}
	total := decimal.NewFromInt(int64(daily.EntryCount))
	for _, t := range domain.EntryTypes {
		if counts[t] == 0 {
			continue
		}
		charts.TransactionTypes = append(charts.TransactionTypes, domain.TransactionTypeShare{
			Type:       t,
			Count:      counts[t],
			Percentage: Percentage(decimal.NewFromInt(int64(counts[t])), total),
		})
	}
	return charts
}

// RangeChartsFromSeries reshapes a daily series into parallel chart series.
func RangeChartsFromSeries(series []domain.DailySummary) domain.RangeCharts {
	charts := domain.RangeCharts{
		Dates:       make([]time.Time, 0, len(series)),
		Sales:       make([]decimal.Decimal, 0, len(series)),
		Received:    make([]decimal.Decimal, 0, len(series)),
		Expenses:    make([]decimal.Decimal, 0, len(series)),
		Outstanding: make([]decimal.Decimal, 0, len(series)),
		NetCashFlow: make([]decimal.Decimal, 0, len(series)),
	}
	for _, d := range series {
		charts.Dates = append(charts.Dates, d.Date)
		charts.Sales = append(charts.Sales, d.TotalSales)
		charts.Received = append(charts.Received, d.TotalReceived)
		charts.Expenses = append(charts.Expenses, d.TotalExpense)
		charts.Outstanding = append(charts.Outstanding, d.TotalOutstanding)
		charts.NetCashFlow = append(charts.NetCashFlow, d.NetCashFlow)
	}
	return charts
}

// Percentage returns part/total*100 rounded half away from zero. total must be positive.
func Percentage(part, total decimal.Decimal) int {
	return int(part.Mul(decimal.NewFromInt(100)).Div(total).Round(0).IntPart())
}
