package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionEntry_Validate(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entry   domain.TransactionEntry
		wantErr error
	}{
		{
			name: "valid sale",
			entry: domain.TransactionEntry{
				Date:         day,
				CustomerName: "Acme",
				Type:         domain.EntrySale,
				Sales:        decimal.NewFromInt(1000),
			},
		},
		{
			name: "sale with zero sales is accepted",
			entry: domain.TransactionEntry{
				Date:         day,
				CustomerName: "Acme",
				Type:         domain.EntrySale,
			},
		},
		{
			name: "zero date",
			entry: domain.TransactionEntry{
				CustomerName: "Acme",
				Type:         domain.EntrySale,
			},
			wantErr: apperrors.ErrInvalidDate,
		},
		{
			name: "negative cash",
			entry: domain.TransactionEntry{
				Date:         day,
				CustomerName: "Acme",
				Type:         domain.EntryRepayment,
				Cash:         decimal.NewFromInt(-1),
			},
			wantErr: apperrors.ErrNegativeAmount,
		},
		{
			name: "negative other payment",
			entry: domain.TransactionEntry{
				Date:         day,
				CustomerName: "Shop rent",
				Type:         domain.EntryExpense,
				OtherPayment: decimal.RequireFromString("-0.01"),
			},
			wantErr: apperrors.ErrNegativeAmount,
		},
		{
			name: "blank customer",
			entry: domain.TransactionEntry{
				Date:         day,
				CustomerName: "   ",
				Type:         domain.EntrySale,
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "unknown type",
			entry: domain.TransactionEntry{
				Date:         day,
				CustomerName: "Acme",
				Type:         "refund",
			},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionEntry_Amounts(t *testing.T) {
	e := domain.TransactionEntry{
		Sales:        decimal.NewFromInt(1000),
		Cash:         decimal.NewFromInt(100),
		BankTransfer: decimal.NewFromInt(200),
		MobileWallet: decimal.NewFromInt(50),
		OtherPayment: decimal.NewFromInt(999),
	}

	assert.True(t, decimal.NewFromInt(350).Equal(e.Received()))
	assert.True(t, decimal.NewFromInt(650).Equal(e.NetCredit()))
}

func TestInferEntryType(t *testing.T) {
	zero := decimal.Zero
	ten := decimal.NewFromInt(10)

	tests := []struct {
		name                                 string
		sales, cash, bank, wallet, otherPaid decimal.Decimal
		want                                 domain.EntryType
		wantOK                               bool
	}{
		{"sales wins over receipts", ten, ten, zero, zero, ten, domain.EntrySale, true},
		{"cash only", zero, ten, zero, zero, zero, domain.EntryRepayment, true},
		{"bank transfer only", zero, zero, ten, zero, zero, domain.EntryRepayment, true},
		{"wallet beats payment", zero, zero, zero, ten, ten, domain.EntryRepayment, true},
		{"payment only", zero, zero, zero, zero, ten, domain.EntryExpense, true},
		{"all zero", zero, zero, zero, zero, zero, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.InferEntryType(tt.sales, tt.cash, tt.bank, tt.wallet, tt.otherPaid)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEntryType(t *testing.T) {
	got, err := domain.ParseEntryType(" Repayment ")
	assert.NoError(t, err)
	assert.Equal(t, domain.EntryRepayment, got)

	_, err = domain.ParseEntryType("loan")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
