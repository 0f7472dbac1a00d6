package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

// Invoice is the financial record for delivered work. Total = Subtotal + Tax,
// consistent at creation and not re-derived afterwards.
type Invoice struct {
	ID            string
	CompanyID     string
	CustomerID    string
	LoadID        *string
	InvoiceNumber string
	Status        string // see Invoice* constants
	Currency      string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	IssueDate     time.Time
	DueDate       time.Time
	PaidAt        *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOverdue is the derived overdue state: past due and not settled or voided.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status == InvoicePaid || i.Status == InvoiceCancelled {
		return false
	}
	return i.DueDate.Before(now)
}

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	CreatedAt   time.Time
}
