package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a freight customer of the company.
type Customer struct {
	ID          string
	CompanyID   string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Currency    string
	CreditLimit decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
