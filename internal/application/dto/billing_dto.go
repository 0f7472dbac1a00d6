package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest one quote/invoice line. Quantity must be > 0 and UnitPrice
// >= 0; decimal bounds are checked in the usecase, not by tags.
type LineItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateQuoteRequest new quote. Totals are computed server-side.
type CreateQuoteRequest struct {
	CustomerID string            `json:"customer_id" validate:"required,uuid4"`
	Currency   string            `json:"currency" validate:"omitempty,currency_code"`
	TaxRate    decimal.Decimal   `json:"tax_rate"`
	ValidUntil *time.Time        `json:"valid_until"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuoteStatusRequest lifecycle change short of conversion.
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent approved accepted rejected expired"`
}

// ConvertQuoteRequest quote -> load. Origin/destination come from the caller
// because a quote does not carry routing.
type ConvertQuoteRequest struct {
	Origin       string     `json:"origin" validate:"required"`
	Destination  string     `json:"destination" validate:"required"`
	Commodity    string     `json:"commodity"`
	PickupDate   *time.Time `json:"pickup_date"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

// LineItemResponse one line with its computed total.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// QuoteResponse public view of a quote.
type QuoteResponse struct {
	ID              string             `json:"id"`
	CompanyID       string             `json:"company_id"`
	CustomerID      string             `json:"customer_id"`
	QuoteNumber     string             `json:"quote_number"`
	Status          string             `json:"status"`
	Currency        string             `json:"currency"`
	TaxRate         decimal.Decimal    `json:"tax_rate"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Tax             decimal.Decimal    `json:"tax"`
	Total           decimal.Decimal    `json:"total"`
	ValidUntil      *time.Time         `json:"valid_until,omitempty"`
	ConvertedLoadID *string            `json:"converted_load_id,omitempty"`
	Items           []LineItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// CreateInvoiceRequest new invoice, optionally linked to a load.
type CreateInvoiceRequest struct {
	CustomerID string            `json:"customer_id" validate:"required,uuid4"`
	LoadID     string            `json:"load_id" validate:"omitempty,uuid4"`
	Currency   string            `json:"currency" validate:"omitempty,currency_code"`
	TaxRate    decimal.Decimal   `json:"tax_rate"`
	DueDate    *time.Time        `json:"due_date"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceStatusRequest explicit status transition.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid overdue cancelled"`
}

// InvoiceResponse public view of an invoice. Overdue is derived at read time.
type InvoiceResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	CustomerID    string             `json:"customer_id"`
	LoadID        *string            `json:"load_id,omitempty"`
	InvoiceNumber string             `json:"invoice_number"`
	Status        string             `json:"status"`
	Overdue       bool               `json:"overdue"`
	Currency      string             `json:"currency"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	IssueDate     time.Time          `json:"issue_date"`
	DueDate       time.Time          `json:"due_date"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	Items         []LineItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}
