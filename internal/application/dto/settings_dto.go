package dto

import "github.com/shopspring/decimal"

// UpdateSettingsRequest per-company defaults.
type UpdateSettingsRequest struct {
	DefaultCurrency    string          `json:"default_currency" validate:"required,currency_code"`
	DefaultTaxRate     decimal.Decimal `json:"default_tax_rate"`
	InvoiceDueDays     int             `json:"invoice_due_days" validate:"omitempty,gte=0,max=365"`
	NotifyOnAssignment bool            `json:"notify_on_assignment"`
	NotifyOnDelivery   bool            `json:"notify_on_delivery"`
}

// SettingsResponse per-company settings view.
type SettingsResponse struct {
	CompanyID          string          `json:"company_id"`
	DefaultCurrency    string          `json:"default_currency"`
	DefaultTaxRate     decimal.Decimal `json:"default_tax_rate"`
	InvoiceDueDays     int             `json:"invoice_due_days"`
	NotifyOnAssignment bool            `json:"notify_on_assignment"`
	NotifyOnDelivery   bool            `json:"notify_on_delivery"`
}
