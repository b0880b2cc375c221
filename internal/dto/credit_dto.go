package dto

import (
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AsOfParams is the optional as_of query parameter; today when absent.
type AsOfParams struct {
	AsOf string `form:"as_of" binding:"omitempty,datestr"`
}

// Date returns the as-of date, defaulting to today.
func (p AsOfParams) Date() (time.Time, error) {
	if p.AsOf == "" {
		return domain.Today(), nil
	}
	return domain.ParseDate(p.AsOf)
}

// CreditAccountResponse defines the credit position of one customer.
type CreditAccountResponse struct {
	CustomerName     string          `json:"customer_name"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	FirstDate        string          `json:"first_date"`
	LastDate         string          `json:"last_date"`
	DaysOutstanding  int             `json:"days_outstanding"`
	Status           string          `json:"status"`
	AsOf             string          `json:"as_of"`
}

type PaymentMethodResponse struct {
	Method     string          `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int             `json:"percentage"`
}

type TimelinePointResponse struct {
	Date    string          `json:"date"`
	Delta   decimal.Decimal `json:"delta"`
	Balance decimal.Decimal `json:"balance"`
}

// CreditTimelineResponse mirrors the dashboard's timeline chart contract.
type CreditTimelineResponse struct {
	CustomerName   string                  `json:"customer_name"`
	Timeline       []TimelinePointResponse `json:"timeline"`
	PaymentMethods []PaymentMethodResponse `json:"payment_methods"`
}

// ToCreditAccountResponse converts a domain account to its DTO.
func ToCreditAccountResponse(a domain.CustomerCreditAccount) CreditAccountResponse {
	return CreditAccountResponse{
		CustomerName:     a.CustomerName,
		TotalOutstanding: a.TotalOutstanding,
		FirstDate:        domain.FormatDate(a.FirstDate),
		LastDate:         domain.FormatDate(a.LastDate),
		DaysOutstanding:  a.DaysOutstanding,
		Status:           string(a.Status),
		AsOf:             domain.FormatDate(a.AsOf),
	}
}

func ToCreditAccountResponses(accounts []domain.CustomerCreditAccount) []CreditAccountResponse {
	responses := make([]CreditAccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToCreditAccountResponse(a)
	}
	return responses
}

func ToPaymentMethodResponses(shares []domain.PaymentMethodShare) []PaymentMethodResponse {
	responses := make([]PaymentMethodResponse, len(shares))
	for i, s := range shares {
		responses[i] = PaymentMethodResponse{Method: s.Method, Amount: s.Amount, Percentage: s.Percentage}
	}
	return responses
}

func ToCreditTimelineResponse(t domain.CreditTimeline) CreditTimelineResponse {
	points := make([]TimelinePointResponse, len(t.Points))
	for i, p := range t.Points {
		points[i] = TimelinePointResponse{Date: domain.FormatDate(p.Date), Delta: p.Delta, Balance: p.Balance}
	}
	return CreditTimelineResponse{
		CustomerName:   t.CustomerName,
		Timeline:       points,
		PaymentMethods: ToPaymentMethodResponses(t.PaymentMethods),
	}
}
