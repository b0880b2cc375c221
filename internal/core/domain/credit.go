package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditStatus is the aging classification of a customer's outstanding balance.
type CreditStatus string

const (
	StatusGood    CreditStatus = "Good"
	StatusWarning CreditStatus = "Warning"
	StatusOverdue CreditStatus = "Overdue"
)

// Default aging thresholds, in days.
const (
	DefaultWarningAfterDays = 30
	DefaultOverdueAfterDays = 90
)

// AgingThresholds are the day counts after which a balance becomes Warning or Overdue.
// Both comparisons are strict: exactly WarningAfterDays is still Good.
type AgingThresholds struct {
	WarningAfterDays int
	OverdueAfterDays int
}

// DefaultAgingThresholds returns the 30/90 day thresholds.
func DefaultAgingThresholds() AgingThresholds {
	return AgingThresholds{
		WarningAfterDays: DefaultWarningAfterDays,
		OverdueAfterDays: DefaultOverdueAfterDays,
	}
}

// Classify maps a days-outstanding count to a status.
func (t AgingThresholds) Classify(daysOutstanding int) CreditStatus {
	switch {
	case daysOutstanding > t.OverdueAfterDays:
		return StatusOverdue
	case daysOutstanding > t.WarningAfterDays:
		return StatusWarning
	default:
		return StatusGood
	}
}

// CustomerCreditAccount is the derived credit position of one customer as of a date.
type CustomerCreditAccount struct {
	CustomerName     string          `json:"customerName"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"` // Cumulative sales minus cumulative receipts
	FirstDate        time.Time       `json:"firstDate"`
	LastDate         time.Time       `json:"lastDate"`
	DaysOutstanding  int             `json:"daysOutstanding"`
	Status           CreditStatus    `json:"status"`
	AsOf             time.Time       `json:"asOf"`
}

// IsSettled reports whether nothing is owed.
func (a CustomerCreditAccount) IsSettled() bool {
	return !a.TotalOutstanding.IsPositive()
}

// Payment method labels used in breakdowns.
const (
	PaymentMethodCash         = "Cash"
	PaymentMethodBankTransfer = "Bank Transfer"
	PaymentMethodMobileWallet = "Mobile Wallet"
)

// PaymentMethodShare is one slice of a payment-method breakdown.
type PaymentMethodShare struct {
	Method     string          `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int             `json:"percentage"`
}

// TimelinePoint is the balance movement of one customer on one date.
type TimelinePoint struct {
	Date    time.Time       `json:"date"`
	Delta   decimal.Decimal `json:"delta"`   // Sales minus receipts on this date
	Balance decimal.Decimal `json:"balance"` // Running balance after this date
}

// CreditTimeline is the running balance history of a customer with a receipts breakdown.
type CreditTimeline struct {
	CustomerName   string               `json:"customerName"`
	Points         []TimelinePoint      `json:"points"`
	PaymentMethods []PaymentMethodShare `json:"paymentMethods"`
}
