package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType mirrors the entry_type column.
type EntryType string

// LedgerEntry is one row of the ledger_entries table.
type LedgerEntry struct {
	EntryID      int64           `db:"entry_id"`
	EntryDate    time.Time       `db:"entry_date"`
	CustomerName string          `db:"customer_name"`
	EntryType    EntryType       `db:"entry_type"`
	Sales        decimal.Decimal `db:"sales"`
	Cash         decimal.Decimal `db:"cash"`
	BankTransfer decimal.Decimal `db:"bank_transfer"`
	MobileWallet decimal.Decimal `db:"mobile_wallet"`
	OtherPayment decimal.Decimal `db:"other_payment"`
	UploadID     sql.NullString  `db:"upload_id"` // Nullable
	CreatedAt    time.Time       `db:"created_at"`
}
