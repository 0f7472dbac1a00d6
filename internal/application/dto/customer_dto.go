package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest new freight customer.
type CreateCustomerRequest struct {
	Name        string          `json:"name" validate:"required"`
	ContactName string          `json:"contact_name"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	Currency    string          `json:"currency" validate:"omitempty,currency_code"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// UpdateCustomerRequest mirrors CreateCustomerRequest for edits.
type UpdateCustomerRequest = CreateCustomerRequest

// CustomerResponse public view of a customer.
type CustomerResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Name        string          `json:"name"`
	ContactName string          `json:"contact_name,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	Currency    string          `json:"currency"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}
