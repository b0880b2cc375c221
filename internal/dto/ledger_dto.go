package dto

import (
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateRangeParams are the optional from_date/to_date query parameters.
type DateRangeParams struct {
	FromDate string `form:"from_date" binding:"omitempty,datestr"`
	ToDate   string `form:"to_date" binding:"omitempty,datestr"`
}

// ToRange converts the parameters to a domain range. Absent bounds stay open.
func (p DateRangeParams) ToRange() (domain.DateRange, error) {
	var rng domain.DateRange
	if p.FromDate != "" {
		from, err := domain.ParseDate(p.FromDate)
		if err != nil {
			return rng, err
		}
		rng.From = &from
	}
	if p.ToDate != "" {
		to, err := domain.ParseDate(p.ToDate)
		if err != nil {
			return rng, err
		}
		rng.To = &to
	}
	return rng, nil
}

// ListEntriesParams defines the query parameters of the transactions listing.
// Without limit every matching entry is returned; with limit the result is paged
// and the next page token is returned in the X-Next-Token header.
type ListEntriesParams struct {
	DateRangeParams
	CustomerName    string `form:"customer_name"`
	TransactionType string `form:"transaction_type" binding:"omitempty,entrytype"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	NextToken       string `form:"next_token"`
}

// ToFilter converts the parameters to a ledger filter.
func (p ListEntriesParams) ToFilter() (domain.EntryFilter, error) {
	rng, err := p.ToRange()
	if err != nil {
		return domain.EntryFilter{}, err
	}
	filter := domain.EntryFilter{
		Customer: p.CustomerName,
		DateFrom: rng.From,
		DateTo:   rng.To,
	}
	if p.TransactionType != "" {
		t, err := domain.ParseEntryType(p.TransactionType)
		if err != nil {
			return domain.EntryFilter{}, err
		}
		filter.Type = t
	}
	return filter, nil
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	ID              int64           `json:"id"`
	Date            string          `json:"date"`
	CustomerName    string          `json:"customer_name"`
	TransactionType string          `json:"transaction_type"`
	Sales           decimal.Decimal `json:"sales"`
	Cash            decimal.Decimal `json:"cash"`
	BankTransfer    decimal.Decimal `json:"bank_transfer"`
	MobileWallet    decimal.Decimal `json:"mobile_wallet"`
	OtherPayment    decimal.Decimal `json:"other_payment"`
	UploadID        string          `json:"upload_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToEntryResponse converts a domain.TransactionEntry to EntryResponse DTO.
func ToEntryResponse(e domain.TransactionEntry) EntryResponse {
	return EntryResponse{
		ID:              e.ID,
		Date:            domain.FormatDate(e.Date),
		CustomerName:    e.CustomerName,
		TransactionType: string(e.Type),
		Sales:           e.Sales,
		Cash:            e.Cash,
		BankTransfer:    e.BankTransfer,
		MobileWallet:    e.MobileWallet,
		OtherPayment:    e.OtherPayment,
		UploadID:        e.UploadID,
		CreatedAt:       e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries. The result is never nil.
func ToEntryResponses(entries []domain.TransactionEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(e)
	}
	return responses
}
