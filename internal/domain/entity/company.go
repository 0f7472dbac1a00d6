package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is the tenant boundary. Every driver, vehicle, load, quote,
// invoice, document and customer row carries a company reference.
type Company struct {
	ID        string
	Name      string
	RegNumber string // company registration number
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanySettings is the per-tenant settings row (one per company).
type CompanySettings struct {
	ID                 string
	CompanyID          string
	DefaultCurrency    string          // see validation currency set
	DefaultTaxRate     decimal.Decimal // percentage, e.g. 15
	InvoiceDueDays     int
	NotifyOnAssignment bool
	NotifyOnDelivery   bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
