package repository

import "github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"

// QuoteRepository is the persistence port for Quote and its items.
type QuoteRepository interface {
	Create(quote *entity.Quote, items []*entity.QuoteItem) error
	GetByID(companyID, id string) (*entity.Quote, error)
	GetItems(quoteID string) ([]*entity.QuoteItem, error)
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Quote, error)
	UpdateStatus(companyID, id, status string) error

	// MarkConverted flips the quote to converted and links the load, only
	// while it has never been converted. Returns rows affected.
	MarkConverted(companyID, id, loadID string) (int64, error)
}

// InvoiceRepository is the persistence port for Invoice and its items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice, items []*entity.InvoiceItem) error
	GetByID(companyID, id string) (*entity.Invoice, error)
	GetItems(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Invoice, error)
	UpdateStatus(companyID, id, status string) error
	MarkPaid(companyID, id string) error
}
