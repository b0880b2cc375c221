package mapping

import (
	"database/sql"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/SscSPs/credit_tracking_app/internal/models"
)

// ToModelLedgerEntry converts a domain TransactionEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.TransactionEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:      d.ID,
		EntryDate:    domain.NormalizeDate(d.Date),
		CustomerName: d.CustomerName,
		EntryType:    models.EntryType(d.Type),
		Sales:        d.Sales,
		Cash:         d.Cash,
		BankTransfer: d.BankTransfer,
		MobileWallet: d.MobileWallet,
		OtherPayment: d.OtherPayment,
		UploadID:     sql.NullString{String: d.UploadID, Valid: d.UploadID != ""},
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain TransactionEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.TransactionEntry {
	return domain.TransactionEntry{
		ID:           m.EntryID,
		Date:         domain.NormalizeDate(m.EntryDate),
		CustomerName: m.CustomerName,
		Type:         domain.EntryType(m.EntryType),
		Sales:        m.Sales,
		Cash:         m.Cash,
		BankTransfer: m.BankTransfer,
		MobileWallet: m.MobileWallet,
		OtherPayment: m.OtherPayment,
		UploadID:     m.UploadID.String,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain TransactionEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.TransactionEntry {
	ds := make([]domain.TransactionEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
