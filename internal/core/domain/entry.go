package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntrySale      EntryType = "sale"
	EntryRepayment EntryType = "repayment"
	EntryExpense   EntryType = "expense"
)

// EntryTypes lists the known entry types in display order.
var EntryTypes = []EntryType{EntrySale, EntryRepayment, EntryExpense}

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	switch t {
	case EntrySale, EntryRepayment, EntryExpense:
		return true
	}
	return false
}

// ParseEntryType converts a string (case-insensitive) to an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, s)
	}
	return t, nil
}

// TransactionEntry is one dated ledger line for a customer. Entries are immutable once recorded.
type TransactionEntry struct {
	ID           int64           `json:"id"`           // Assigned by the ledger on append
	Date         time.Time       `json:"date"`         // Calendar date, no time component
	CustomerName string          `json:"customerName"` // Exact, case-sensitive identity
	Type         EntryType       `json:"type"`
	Sales        decimal.Decimal `json:"sales"`
	Cash         decimal.Decimal `json:"cash"`
	BankTransfer decimal.Decimal `json:"bankTransfer"`
	MobileWallet decimal.Decimal `json:"mobileWallet"`
	OtherPayment decimal.Decimal `json:"otherPayment"` // Expense / miscellaneous payment
	UploadID     string          `json:"uploadID"`     // Ingestion batch, empty for direct appends
	CreatedAt    time.Time       `json:"createdAt"`
}

// Received is the sum of the three receipt columns.
func (e TransactionEntry) Received() decimal.Decimal {
	return e.Cash.Add(e.BankTransfer).Add(e.MobileWallet)
}

// NetCredit is the change this entry makes to the customer's outstanding balance.
func (e TransactionEntry) NetCredit() decimal.Decimal {
	return e.Sales.Sub(e.Received())
}

// Validate checks the structural rules of an entry. Type/amount combinations that break
// business conventions (a sale with zero sales, say) are accepted.
func (e TransactionEntry) Validate() error {
	if e.Date.IsZero() {
		return apperrors.ErrInvalidDate
	}
	if strings.TrimSpace(e.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, e.Type)
	}

	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"sales", e.Sales},
		{"cash", e.Cash},
		{"bankTransfer", e.BankTransfer},
		{"mobileWallet", e.MobileWallet},
		{"otherPayment", e.OtherPayment},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%w: %s is %s", apperrors.ErrNegativeAmount, a.name, a.value.String())
		}
	}
	return nil
}

// InferEntryType applies the ingestion rules: sale if sales > 0, else repayment if anything
// was received, else expense if other payment > 0. ok is false for an all-zero row.
func InferEntryType(sales, cash, bankTransfer, mobileWallet, otherPayment decimal.Decimal) (EntryType, bool) {
	switch {
	case sales.IsPositive():
		return EntrySale, true
	case cash.IsPositive() || bankTransfer.IsPositive() || mobileWallet.IsPositive():
		return EntryRepayment, true
	case otherPayment.IsPositive():
		return EntryExpense, true
	}
	return "", false
}
