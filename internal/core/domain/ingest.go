package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngestRequest is one uploaded daily workbook.
type IngestRequest struct {
	FileName string
	Content  []byte
	Date     *time.Time // Explicit entry date; wins over anything found in the file
	Replace  bool       // Replace every entry of the date instead of appending
}

// WorkbookRow is one data row read from a workbook, before type inference.
type WorkbookRow struct {
	Row          int // 1-based spreadsheet row
	CustomerName string
	Sales        decimal.Decimal
	Cash         decimal.Decimal
	BankTransfer decimal.Decimal
	MobileWallet decimal.Decimal
	OtherPayment decimal.Decimal
}

// ParsedWorkbook is the normalized content of a workbook.
type ParsedWorkbook struct {
	Sheet       string
	HeaderDate  *time.Time // Date found in a "DATE dd-mm-yy" cell above the header, if any
	Rows        []WorkbookRow
	SkippedRows int // Rows dropped by the parser, e.g. blank customer names
}

// ToEntry turns a row into a ledger entry. ok is false when every amount is zero.
func (r WorkbookRow) ToEntry(date time.Time, uploadID string) (TransactionEntry, bool) {
	t, ok := InferEntryType(r.Sales, r.Cash, r.BankTransfer, r.MobileWallet, r.OtherPayment)
	if !ok {
		return TransactionEntry{}, false
	}
	return TransactionEntry{
		Date:         NormalizeDate(date),
		CustomerName: r.CustomerName,
		Type:         t,
		Sales:        r.Sales,
		Cash:         r.Cash,
		BankTransfer: r.BankTransfer,
		MobileWallet: r.MobileWallet,
		OtherPayment: r.OtherPayment,
		UploadID:     uploadID,
	}, true
}
