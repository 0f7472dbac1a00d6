package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote statuses.
const (
	QuoteDraft     = "draft"
	QuoteSent      = "sent"
	QuoteApproved  = "approved"
	QuoteAccepted  = "accepted"
	QuoteRejected  = "rejected"
	QuoteExpired   = "expired"
	QuoteConverted = "converted"
)

// Quote is a pre-load proposal. Totals are always recomputed from the items:
// subtotal = sum(quantity * unit_price), tax = subtotal * rate/100, each
// rounded to cents before the next step. A quote converts to a load at most
// once; ConvertedLoadID records the link.
type Quote struct {
	ID              string
	CompanyID       string
	CustomerID      string
	QuoteNumber     string
	Status          string // see Quote* constants
	Currency        string
	TaxRate         decimal.Decimal // percentage
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	ValidUntil      *time.Time
	ConvertedLoadID *string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuoteItem is one line of a quote.
type QuoteItem struct {
	ID          string
	QuoteID     string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	CreatedAt   time.Time
}
